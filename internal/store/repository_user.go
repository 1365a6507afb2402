package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

var userColumns = []string{
	"u.id",
	"u.username",
	"u.email",
	"u.password",
	"u.first_name",
	"u.last_name",
	"u.is_active",
	"u.date_joined",
	"(SELECT COUNT(*) FROM projects p WHERE p.owner_id = u.id) AS projects_count",
}

// userRepository is the SQL implementation of [UserRepository]. It handles
// account creation, lookup and credential rotation against the "users" and
// "auth_tokens" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUserWithToken inserts the user row and its first token inside one
// transaction and returns the stored user.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists]
//   - unique violation on email → [ErrEmailAlreadyExists]
//   - any other driver-level error → wrapped operation error
func (r *userRepository) CreateUserWithToken(ctx context.Context, user models.User, tokenKey string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	insertUser, userArgs, err := r.db.builder.
		Insert("users").
		Columns("username", "email", "password", "first_name", "last_name", "is_active").
		Values(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, true).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.Token
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertUser, userArgs...).Scan(&user.ID); err != nil {
			return r.db.translate(err, ErrExecutingStatement)
		}

		token, err = insertToken(ctx, r.db, tx, user.ID, tokenKey)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUserWithToken").Str("username", user.Username).Msg("error creating user")
		return models.User{}, models.Token{}, err
	}

	created, err := r.FindUserByID(ctx, user.ID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}
	return created, token, nil
}

// FindUserByID returns the user with the given ID or [ErrNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"u.id": userID})
}

// FindUserByUsername returns the user with the given username or [ErrNotFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", sq.Eq{"u.username": username})
}

// FindUserByEmail returns the user with the given email or [ErrNotFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"u.email": email})
}

func (r *userRepository) findUser(ctx context.Context, fn string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From("users u").
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.translate(err, ErrScanningRow)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", fn).Msg("error finding user")
		}
		return models.User{}, err
	}

	return user, nil
}

// ExistsUsername reports whether any account uses username.
func (r *userRepository) ExistsUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "*userRepository.ExistsUsername", sq.Eq{"username": username})
}

// ExistsEmail reports whether any account other than excludeID uses email.
func (r *userRepository) ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	where := sq.And{sq.Eq{"email": email}}
	if excludeID != 0 {
		where = append(where, sq.NotEq{"id": excludeID})
	}
	return r.exists(ctx, "*userRepository.ExistsEmail", where)
}

func (r *userRepository) exists(ctx context.Context, fn string, where sq.Sqlizer) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", fn).Msg("error checking user existence")
		return false, r.db.translate(err, ErrExecutingQuery)
	}

	return count > 0, nil
}

// UpdateProfile stores email, first and last name of the user and returns
// the updated record.
func (r *userRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("users").
		Set("email", user.Email).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", user.ID).Msg("error updating profile")
		return models.User{}, r.db.translate(err, ErrExecutingStatement)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.User{}, ErrNotFound
	}

	return r.FindUserByID(ctx, user.ID)
}

// ChangePassword stores passwordHash, drops the user's token and issues a
// new one with tokenKey, all in one transaction.
func (r *userRepository) ChangePassword(ctx context.Context, userID int64, passwordHash, tokenKey string) (models.Token, error) {
	log := logger.FromContext(ctx)

	updateQuery, updateArgs, err := r.db.builder.
		Update("users").
		Set("password", passwordHash).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := r.db.builder.
		Delete("auth_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.Token
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return r.db.translate(err, ErrExecutingStatement)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return r.db.translate(err, ErrExecutingStatement)
		}

		token, err = insertToken(ctx, r.db, tx, userID, tokenKey)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ChangePassword").Int64("user_id", userID).Msg("error changing password")
		return models.Token{}, err
	}

	return token, nil
}

func scanUser(s rowScanner) (models.User, error) {
	var u models.User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.IsActive,
		&u.DateJoined,
		&u.ProjectsCount,
	)
	return u, err
}

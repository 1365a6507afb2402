package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

// tokenRepository is the SQL implementation of [TokenRepository].
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository].
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreateToken inserts a token for the user unless one exists and
// returns the live token. Concurrent logins of the same user converge on a
// single row through the user_id unique constraint.
func (r *tokenRepository) GetOrCreateToken(ctx context.Context, userID int64, tokenKey string) (models.Token, error) {
	log := logger.FromContext(ctx)

	insert, insertArgs, err := r.db.builder.
		Insert("auth_tokens").
		Columns("key", "user_id").
		Values(tokenKey, userID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, insert, insertArgs...); err != nil {
		log.Err(err).Str("func", "*tokenRepository.GetOrCreateToken").Int64("user_id", userID).Msg("error inserting token")
		return models.Token{}, r.db.translate(err, ErrExecutingStatement)
	}

	query, args, err := r.db.builder.
		Select("key", "user_id", "created").
		From("auth_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.Token
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&token.Key, &token.UserID, &token.Created); err != nil {
		log.Err(err).Str("func", "*tokenRepository.GetOrCreateToken").Int64("user_id", userID).Msg("error reading token")
		return models.Token{}, r.db.translate(err, ErrScanningRow)
	}

	return token, nil
}

// FindUserByToken resolves a token key to its user or [ErrNotFound].
func (r *tokenRepository) FindUserByToken(ctx context.Context, tokenKey string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From("auth_tokens t").
		Join("users u ON u.id = t.user_id").
		Where(sq.Eq{"t.key": tokenKey}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.translate(err, ErrScanningRow)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*tokenRepository.FindUserByToken").Msg("error resolving token")
		}
		return models.User{}, err
	}

	return user, nil
}

// DeleteToken removes the user's token and reports whether one existed.
func (r *tokenRepository) DeleteToken(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("auth_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.DeleteToken").Int64("user_id", userID).Msg("error deleting token")
		return false, r.db.translate(err, ErrExecutingStatement)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n > 0, nil
}

// insertToken issues a token for userID inside tx.
func insertToken(ctx context.Context, db *DB, tx queryer, userID int64, tokenKey string) (models.Token, error) {
	token := models.Token{Key: tokenKey, UserID: userID, Created: time.Now().UTC()}

	query, args, err := db.builder.
		Insert("auth_tokens").
		Columns("key", "user_id", "created").
		Values(token.Key, token.UserID, token.Created).
		ToSql()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return models.Token{}, db.translate(err, ErrExecutingStatement)
	}
	return token, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
)

// authService is the concrete implementation of AuthService.
// It registers and authenticates accounts, hashes passwords with bcrypt and
// issues opaque tokens, one live token per user.
type authService struct {
	users  store.UserRepository
	tokens store.TokenRepository

	// validator checks registration, login, password change and profile
	// payloads. Uniqueness is checked here against the repository.
	validator validators.Validator

	// bcryptCost is the work factor used for new password hashes.
	bcryptCost int

	// newTokenKey returns a fresh token key. Replaced in tests.
	newTokenKey func() (string, error)

	logger *logger.Logger
}

// NewAuthService constructs an AuthService backed by the given repositories.
// Password strength rules come from cfg.
func NewAuthService(users store.UserRepository, tokens store.TokenRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		users:       users,
		tokens:      tokens,
		validator:   validators.NewUserValidator(validators.NewPasswordPolicy(cfg.PasswordMinLength)),
		bcryptCost:  cfg.BcryptCost,
		newTokenKey: utils.GenerateTokenKey,
		logger:      logger,
	}
}

// Register validates the payload, checks username and email uniqueness and
// creates the user together with its first token.
//
// Every field failure is collected into one *validators.Errors. Duplicate
// usernames or emails make it match validators.ErrConflict. A uniqueness
// race lost at insert time is reported the same way and nothing is written.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	errs := validators.NewErrors()
	errs.Merge(a.validator.Validate(ctx, req))

	if !errs.Has(validators.FieldUsername) {
		exists, err := a.users.ExistsUsername(ctx, req.Username)
		if err != nil {
			log.Err(err).Str("func", "*authService.Register").Str("username", req.Username).Msg("username lookup failed")
			return models.User{}, models.Token{}, translate(err)
		}
		if exists {
			errs.Add(validators.FieldUsername, validators.ErrDuplicateUsername)
		}
	}
	if !errs.Has(validators.FieldEmail) {
		exists, err := a.users.ExistsEmail(ctx, req.Email, 0)
		if err != nil {
			log.Err(err).Str("func", "*authService.Register").Str("email", req.Email).Msg("email lookup failed")
			return models.User{}, models.Token{}, translate(err)
		}
		if exists {
			errs.Add(validators.FieldEmail, validators.ErrDuplicateEmail)
		}
	}
	if err := errs.Err(); err != nil {
		return models.User{}, models.Token{}, err
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	key, err := a.newTokenKey()
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("token generation failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrGeneratingToken, err)
	}

	user, token, err := a.users.CreateUserWithToken(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}, key)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", req.Username).Msg("user creation failed")
		return models.User{}, models.Token{}, translate(err)
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

// Login resolves the identifier as a username first and as an email second,
// checks the password and returns the user's live token, creating one when
// the user has none.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := a.findByCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return models.User{}, models.Token{}, err
	}
	if !user.IsActive {
		log.Warn().Int64("user_id", user.ID).Msg("login attempt on disabled account")
		return models.User{}, models.Token{}, validators.FieldError(validators.NonFieldErrors, validators.ErrAccountDisabled)
	}

	key, err := a.newTokenKey()
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("token generation failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrGeneratingToken, err)
	}
	token, err := a.tokens.GetOrCreateToken(ctx, user.ID, key)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Int64("user_id", user.ID).Msg("token lookup failed")
		return models.User{}, models.Token{}, translate(err)
	}

	return user, token, nil
}

func (a *authService) findByCredentials(ctx context.Context, identifier, password string) (models.User, error) {
	log := logger.FromContext(ctx)
	invalid := validators.FieldError(validators.NonFieldErrors, validators.ErrInvalidCredentials)

	user, err := a.users.FindUserByUsername(ctx, identifier)
	switch {
	case err == nil:
		if utils.CheckPassword(user.PasswordHash, password) {
			return user, nil
		}
	case !errors.Is(err, store.ErrNotFound):
		log.Err(err).Str("func", "*authService.findByCredentials").Msg("user lookup by username failed")
		return models.User{}, translate(err)
	}

	user, err = a.users.FindUserByEmail(ctx, identifier)
	switch {
	case err == nil:
		if utils.CheckPassword(user.PasswordHash, password) {
			return user, nil
		}
	case !errors.Is(err, store.ErrNotFound):
		log.Err(err).Str("func", "*authService.findByCredentials").Msg("user lookup by email failed")
		return models.User{}, translate(err)
	}

	return models.User{}, invalid
}

// ChangePassword verifies the old password, applies the password policy to
// the new one and rotates the caller's token. The hash update, old token
// removal and new token insert happen in one transaction.
func (a *authService) ChangePassword(ctx context.Context, callerID int64, req models.ChangePasswordRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.caller(ctx, callerID)
	if err != nil {
		return models.Token{}, err
	}

	errs := validators.NewErrors()
	errs.Merge(a.validator.Validate(ctx, validators.PasswordChange{Request: req, User: user}))
	if !errs.Has(validators.FieldOldPassword) && !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		errs.Add(validators.FieldOldPassword, validators.ErrWrongOldPassword)
	}
	if err = errs.Err(); err != nil {
		return models.Token{}, err
	}

	hash, err := utils.HashPassword(req.NewPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password hashing failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	key, err := a.newTokenKey()
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("token generation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrGeneratingToken, err)
	}

	token, err := a.users.ChangePassword(ctx, callerID, hash, key)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", callerID).Msg("password change failed")
		return models.Token{}, translate(err)
	}

	log.Info().Int64("user_id", callerID).Msg("password changed, token rotated")
	return token, nil
}

// Logout deletes the caller's token. ErrNoActiveSession is returned when
// there was none.
func (a *authService) Logout(ctx context.Context, callerID int64) error {
	deleted, err := a.tokens.DeleteToken(ctx, callerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Int64("user_id", callerID).Msg("token deletion failed")
		return translate(err)
	}
	if !deleted {
		return ErrNoActiveSession
	}
	return nil
}

// Authenticate returns the active owner of tokenKey. Unknown keys fail with
// ErrInvalidToken, disabled owners with ErrUserInactive; both match
// ErrUnauthorized.
func (a *authService) Authenticate(ctx context.Context, tokenKey string) (models.User, error) {
	if len(tokenKey) != models.TokenKeyLength {
		return models.User{}, ErrInvalidToken
	}

	user, err := a.tokens.FindUserByToken(ctx, tokenKey)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrInvalidToken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Authenticate").Msg("token lookup failed")
		return models.User{}, translate(err)
	}
	if !user.IsActive {
		return models.User{}, ErrUserInactive
	}

	return user, nil
}

func (a *authService) Profile(ctx context.Context, callerID int64) (models.User, error) {
	return a.caller(ctx, callerID)
}

// UpdateProfile applies email, first and last name changes. The email must
// stay unique among other users; username is read-only.
func (a *authService) UpdateProfile(ctx context.Context, callerID int64, req models.ProfileUpdateRequest, partial bool) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.caller(ctx, callerID)
	if err != nil {
		return models.User{}, err
	}

	var fields []string
	if partial {
		fields = presentFields(
			field{validators.FieldEmail, req.Email.Present},
			field{validators.FieldFirstName, req.FirstName.Present},
			field{validators.FieldLastName, req.LastName.Present},
		)
	}

	errs := validators.NewErrors()
	if !partial || len(fields) > 0 {
		errs.Merge(a.validator.Validate(ctx, req, fields...))
	}
	if req.Email.HasValue() && !errs.Has(validators.FieldEmail) {
		exists, err := a.users.ExistsEmail(ctx, req.Email.Value, callerID)
		if err != nil {
			log.Err(err).Str("func", "*authService.UpdateProfile").Int64("user_id", callerID).Msg("email lookup failed")
			return models.User{}, translate(err)
		}
		if exists {
			errs.Add(validators.FieldEmail, validators.ErrDuplicateEmail)
		}
	}
	if err = errs.Err(); err != nil {
		return models.User{}, err
	}

	if req.Email.HasValue() {
		user.Email = req.Email.Value
	}
	if req.FirstName.HasValue() {
		user.FirstName = req.FirstName.Value
	}
	if req.LastName.HasValue() {
		user.LastName = req.LastName.Value
	}

	updated, err := a.users.UpdateProfile(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.UpdateProfile").Int64("user_id", callerID).Msg("profile update failed")
		return models.User{}, translate(err)
	}

	return updated, nil
}

// caller loads the authenticated user. A caller that vanished after the
// token check is reported as unauthorized.
func (a *authService) caller(ctx context.Context, callerID int64) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserInactive
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.caller").Int64("user_id", callerID).Msg("user lookup failed")
		return models.User{}, translate(err)
	}
	return user, nil
}

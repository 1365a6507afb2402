package validators

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-project-board/models"
)

// Field name constants for account payloads.
const (
	FieldUsername           = "username"
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldPasswordConfirm    = "password_confirm"
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldOldPassword        = "old_password"
	FieldNewPassword        = "new_password"
	FieldNewPasswordConfirm = "new_password_confirm"
)

const (
	usernameMaxLength = 150
	emailMaxLength    = 254
	nameMaxLength     = 150
)

var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// PasswordChange pairs a change-password payload with the account it
// applies to, so the new password can be checked against the user's
// attributes.
type PasswordChange struct {
	Request models.ChangePasswordRequest
	User    models.User
}

// UserValidator validates account payloads: registration, login, password
// change and profile update. Uniqueness checks need storage access and are
// left to the service layer.
type UserValidator struct {
	policy *PasswordPolicy
}

// NewUserValidator constructs a UserValidator using policy for password
// strength and returns it as the Validator interface.
func NewUserValidator(policy *PasswordPolicy) Validator {
	return &UserValidator{policy: policy}
}

// Validate dispatches validation by the dynamic type of obj. Supported
// types are models.RegisterRequest, models.LoginRequest, PasswordChange and
// models.ProfileUpdateRequest (values or pointers). Optional fields restrict
// validation to the named subset.
//
// The returned error is an *Errors collecting every failure.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)
	case models.LoginRequest:
		return v.validateLogin(value)
	case *models.LoginRequest:
		return v.validateLogin(*value)
	case PasswordChange:
		return v.validatePasswordChange(value, fields...)
	case *PasswordChange:
		return v.validatePasswordChange(*value, fields...)
	case models.ProfileUpdateRequest:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdateRequest:
		return v.validateProfileUpdate(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword, FieldPasswordConfirm, FieldFirstName, FieldLastName}
	}

	errs := NewErrors()
	for _, f := range fields {
		switch f {
		case FieldUsername:
			errs.Add(f, validateUsername(req.Username))
		case FieldEmail:
			errs.Add(f, validateEmail(req.Email))
		case FieldPassword:
			if req.Password == "" {
				errs.Add(f, ErrRequired)
				continue
			}
			for _, err := range v.policy.Check(req.Password, userAttributes(req.Username, req.Email, req.FirstName, req.LastName)...) {
				errs.Add(f, err)
			}
		case FieldPasswordConfirm:
			if req.PasswordConfirm == "" {
				errs.Add(f, ErrRequired)
				continue
			}
			if req.Password != req.PasswordConfirm {
				errs.Add(f, ErrPasswordMismatch)
			}
		case FieldFirstName:
			errs.Add(f, validateName(req.FirstName))
		case FieldLastName:
			errs.Add(f, validateName(req.LastName))
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *UserValidator) validateLogin(req models.LoginRequest) error {
	if req.Username == "" || req.Password == "" {
		return FieldError(NonFieldErrors, ErrCredentialsRequired)
	}
	return nil
}

func (v *UserValidator) validatePasswordChange(change PasswordChange, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldNewPassword, FieldNewPasswordConfirm}
	}

	req, user := change.Request, change.User
	errs := NewErrors()
	for _, f := range fields {
		switch f {
		case FieldOldPassword:
			if req.OldPassword == "" {
				errs.Add(f, ErrRequired)
			}
		case FieldNewPassword:
			if req.NewPassword == "" {
				errs.Add(f, ErrRequired)
				continue
			}
			for _, err := range v.policy.Check(req.NewPassword, userAttributes(user.Username, user.Email, user.FirstName, user.LastName)...) {
				errs.Add(f, err)
			}
		case FieldNewPasswordConfirm:
			if req.NewPasswordConfirm == "" {
				errs.Add(f, ErrRequired)
				continue
			}
			if req.NewPassword != req.NewPasswordConfirm {
				errs.Add(f, ErrNewPasswordMismatch)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *UserValidator) validateProfileUpdate(req models.ProfileUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldFirstName, FieldLastName}
	}

	errs := NewErrors()
	for _, f := range fields {
		switch f {
		case FieldEmail:
			errs.Add(f, nullableString(req.Email, true, validateEmail))
		case FieldFirstName:
			errs.Add(f, nullableString(req.FirstName, false, validateName))
		case FieldLastName:
			errs.Add(f, nullableString(req.LastName, false, validateName))
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

// nullableString applies check to a present string field. Absent fields
// fail only when required.
func nullableString(n models.Nullable[string], required bool, check func(string) error) error {
	switch {
	case !n.Present:
		if required {
			return ErrRequired
		}
		return nil
	case n.Null:
		return ErrNull
	case n.Invalid:
		return ErrNotAString
	default:
		return check(n.Value)
	}
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return ErrRequired
	case utf8.RuneCountInString(username) > usernameMaxLength:
		return tooLong(usernameMaxLength)
	case !usernameRe.MatchString(username):
		return ErrInvalidUsername
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if utf8.RuneCountInString(email) > emailMaxLength {
		return tooLong(emailMaxLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ErrInvalidEmail
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > nameMaxLength {
		return tooLong(nameMaxLength)
	}
	return nil
}

func userAttributes(username, email, firstName, lastName string) []UserAttribute {
	return []UserAttribute{
		{Name: "username", Value: username},
		{Name: "email address", Value: email},
		{Name: "first name", Value: firstName},
		{Name: "last name", Value: lastName},
	}
}

package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation matches every [*Errors] value.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is the parent of uniqueness violations.
	ErrConflict = errors.New("conflict")

	ErrRequired   = errors.New("This field is required.")
	ErrBlank      = errors.New("This field may not be blank.")
	ErrNull       = errors.New("This field may not be null.")
	ErrTooLong    = errors.New("value is too long")
	ErrInvalidPK  = errors.New("object does not exist")
	ErrNotANumber = errors.New("A valid number is required.")
	ErrNotAString = errors.New("Not a valid string.")
	ErrNotABool   = errors.New("Must be a valid boolean.")
	ErrNotAnInt   = errors.New("A valid integer is required.")
	ErrNotADate   = errors.New("Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")

	ErrDuplicateUsername   = newRule("A user with this username already exists.", ErrConflict)
	ErrDuplicateEmail      = newRule("A user with this email already exists.", ErrConflict)
	ErrEmailRequired       = errors.New("Email field is required.")
	ErrInvalidEmail        = errors.New("Enter a valid email address.")
	ErrInvalidUsername     = errors.New("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	ErrCredentialsRequired = errors.New("Both username and password are required.")
	ErrInvalidCredentials  = errors.New("Invalid username/email or password.")
	ErrAccountDisabled     = errors.New("User account is disabled.")
	ErrWrongOldPassword    = errors.New("Old password is incorrect.")

	// ErrWeakPassword is the parent of every password policy violation.
	ErrWeakPassword            = errors.New("weak password")
	ErrPasswordTooShort        = newRule("This password is too short.", ErrWeakPassword)
	ErrPasswordTooSimilar      = newRule("The password is too similar to a user attribute.", ErrWeakPassword)
	ErrPasswordTooCommon       = newRule("This password is too common.", ErrWeakPassword)
	ErrPasswordEntirelyNumeric = newRule("This password is entirely numeric.", ErrWeakPassword)

	ErrPasswordMismatch    = errors.New("Password confirmation doesn't match password.")
	ErrNewPasswordMismatch = newRule("New password confirmation doesn't match new password.", ErrPasswordMismatch)

	ErrInvalidType         = errors.New("Technologies must be a list.")
	ErrInvalidElement      = errors.New("All technologies must be strings.")
	ErrNonPositiveBudget   = errors.New("Budget must be greater than 0.")
	ErrInvalidDecimal      = errors.New("invalid decimal")
	ErrPastDeadline        = errors.New("Deadline cannot be in the past.")
	ErrNonPositiveSalary   = errors.New("salary must be greater than 0")
	ErrNonPositiveMinimum  = newRule("Minimum salary must be greater than 0.", ErrNonPositiveSalary)
	ErrNonPositiveMaximum  = newRule("Maximum salary must be greater than 0.", ErrNonPositiveSalary)
	ErrSalaryRangeInverted = errors.New("Minimum salary cannot be greater than maximum salary.")
	ErrInvalidChoice       = errors.New("invalid choice")
)

// ruleError is a client-facing message that still matches a parent sentinel
// through [errors.Is].
type ruleError struct {
	msg    string
	parent error
}

func newRule(msg string, parent error) error {
	return &ruleError{msg: msg, parent: parent}
}

func (e *ruleError) Error() string { return e.msg }

func (e *ruleError) Unwrap() error { return e.parent }

func tooLong(limit int) error {
	return newRule(fmt.Sprintf("Ensure this field has no more than %d characters.", limit), ErrTooLong)
}

func tooShort(limit int) error {
	return newRule(fmt.Sprintf("This password is too short. It must contain at least %d characters.", limit), ErrPasswordTooShort)
}

func tooSimilar(attribute string) error {
	return newRule(fmt.Sprintf("The password is too similar to the %s.", attribute), ErrPasswordTooSimilar)
}

func invalidChoice(value string) error {
	return newRule(fmt.Sprintf("%q is not a valid choice.", value), ErrInvalidChoice)
}

// InvalidPK reports a reference to an object that does not exist or is not
// visible to the caller.
func InvalidPK(id int64) error {
	return newRule(fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id), ErrInvalidPK)
}

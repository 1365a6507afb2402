package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-project-board/models"
)

// Field name constants for project payloads.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldTechnologies = "technologies"
	FieldBudget       = "budget"
	FieldDeadline     = "deadline"
	FieldMetadata     = "metadata"
)

const (
	titleMaxLength = 200

	// amounts are stored as NUMERIC(10, 2)
	amountMaxDigits        = 10
	amountMaxDecimalPlaces = 2
)

// ProjectValidator validates models.ProjectRequest payloads.
//
// Title and description are required when listed in the validated fields;
// the other fields are checked only when present. Partial updates pass the
// names of the present fields, full updates pass nothing and get every
// field checked.
type ProjectValidator struct {
	now func() time.Time
}

// NewProjectValidator constructs a ProjectValidator. now supplies the
// current time for the deadline check.
func NewProjectValidator(now func() time.Time) Validator {
	if now == nil {
		now = time.Now
	}
	return &ProjectValidator{now: now}
}

// Validate validates a models.ProjectRequest (value or pointer).
func (v *ProjectValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProjectRequest:
		return v.validateProject(value, fields...)
	case *models.ProjectRequest:
		return v.validateProject(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ProjectValidator) validateProject(req models.ProjectRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldTechnologies, FieldBudget, FieldDeadline, FieldMetadata}
	}

	today := models.NewDate(v.now())
	errs := NewErrors()
	for _, f := range fields {
		switch f {
		case FieldTitle:
			errs.Add(f, requiredText(req.Title, titleMaxLength))
		case FieldDescription:
			errs.Add(f, requiredText(req.Description, 0))
		case FieldTechnologies:
			if !req.Technologies.Present {
				continue
			}
			if req.Technologies.Null {
				errs.Add(f, ErrNull)
				continue
			}
			if _, err := ValidateTechnologies(req.Technologies.Value); err != nil {
				errs.Add(f, err)
			}
		case FieldBudget:
			switch {
			case !req.Budget.Present, req.Budget.Null:
			case req.Budget.Invalid:
				errs.Add(f, ErrNotANumber)
			default:
				errs.Add(f, ValidateBudget(&req.Budget.Value))
			}
		case FieldDeadline:
			switch {
			case !req.Deadline.Present, req.Deadline.Null:
			case req.Deadline.Invalid:
				errs.Add(f, ErrNotADate)
			default:
				errs.Add(f, ValidateDeadline(&req.Deadline.Value, today))
			}
		case FieldMetadata:
			if req.Metadata.Present && req.Metadata.Null {
				errs.Add(f, ErrNull)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

// ValidateTechnologies checks that raw is a JSON array of strings and returns
// the entries trimmed, with empty-after-trim entries dropped. Applying it to
// its own output is a no-op.
func ValidateTechnologies(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidType
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, ErrInvalidType
	}

	technologies := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return nil, ErrInvalidElement
		}
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, ErrInvalidElement
		}
		if s = strings.TrimSpace(s); s != "" {
			technologies = append(technologies, s)
		}
	}

	return technologies, nil
}

// ValidateBudget fails with ErrNonPositiveBudget when budget is present and
// not greater than zero, and with ErrInvalidDecimal when it does not fit the
// stored precision.
func ValidateBudget(budget *models.Amount) error {
	if budget == nil {
		return nil
	}
	if !budget.Finite() {
		return ErrNotANumber
	}
	if *budget <= 0 {
		return ErrNonPositiveBudget
	}
	return validateDecimal(*budget)
}

// ValidateDeadline fails with ErrPastDeadline when deadline is present and
// earlier than today.
func ValidateDeadline(deadline *models.Date, today models.Date) error {
	if deadline == nil {
		return nil
	}
	if deadline.Before(today) {
		return ErrPastDeadline
	}
	return nil
}

func validateDecimal(a models.Amount) error {
	if !a.Finite() {
		return ErrNotANumber
	}
	s := strconv.FormatFloat(float64(a), 'f', -1, 64)
	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	whole = strings.TrimLeft(whole, "0")

	switch {
	case len(whole)+len(frac) > amountMaxDigits:
		return newRule(fmt.Sprintf("Ensure that there are no more than %d digits in total.", amountMaxDigits), ErrInvalidDecimal)
	case len(frac) > amountMaxDecimalPlaces:
		return newRule(fmt.Sprintf("Ensure that there are no more than %d decimal places.", amountMaxDecimalPlaces), ErrInvalidDecimal)
	case len(whole) > amountMaxDigits-amountMaxDecimalPlaces:
		return newRule(fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", amountMaxDigits-amountMaxDecimalPlaces), ErrInvalidDecimal)
	}
	return nil
}

// requiredText checks a required string field. maxLength <= 0 disables the
// length check.
func requiredText(n models.Nullable[string], maxLength int) error {
	switch {
	case !n.Present:
		return ErrRequired
	case n.Null:
		return ErrNull
	case n.Invalid:
		return ErrNotAString
	case strings.TrimSpace(n.Value) == "":
		return ErrBlank
	case maxLength > 0 && utf8.RuneCountInString(n.Value) > maxLength:
		return tooLong(maxLength)
	}
	return nil
}

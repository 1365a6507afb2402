package validators

import (
	"context"

	"github.com/MKhiriev/go-project-board/models"
)

// Field name constants for vacancy payloads. FieldTitle and FieldDescription
// are shared with projects.
const (
	FieldRequirements   = "requirements"
	FieldSalaryMin      = "salary_min"
	FieldSalaryMax      = "salary_max"
	FieldEmploymentType = "employment_type"
	FieldIsActive       = "is_active"
	FieldProject        = "project"
)

// VacancyValidator validates models.VacancyRequest payloads field by field.
// The salary ordering rule needs the merged record on partial updates and is
// exposed separately as CrossValidateSalary.
type VacancyValidator struct{}

// NewVacancyValidator constructs a VacancyValidator and returns it as the
// Validator interface.
func NewVacancyValidator() Validator {
	return &VacancyValidator{}
}

// Validate validates a models.VacancyRequest (value or pointer). With no
// fields given, title, description and requirements are required and every
// other present field is checked. FieldProject is validated only when named
// explicitly.
func (v *VacancyValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VacancyRequest:
		return v.validateVacancy(value, fields...)
	case *models.VacancyRequest:
		return v.validateVacancy(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *VacancyValidator) validateVacancy(req models.VacancyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldRequirements, FieldSalaryMin, FieldSalaryMax, FieldEmploymentType, FieldIsActive}
	}

	errs := NewErrors()
	for _, f := range fields {
		switch f {
		case FieldTitle:
			errs.Add(f, requiredText(req.Title, titleMaxLength))
		case FieldDescription:
			errs.Add(f, requiredText(req.Description, 0))
		case FieldRequirements:
			errs.Add(f, requiredText(req.Requirements, 0))
		case FieldSalaryMin:
			errs.Add(f, salaryField(req.SalaryMin, ErrNonPositiveMinimum))
		case FieldSalaryMax:
			errs.Add(f, salaryField(req.SalaryMax, ErrNonPositiveMaximum))
		case FieldEmploymentType:
			switch {
			case !req.EmploymentType.Present:
			case req.EmploymentType.Null:
				errs.Add(f, ErrNull)
			case req.EmploymentType.Invalid:
				errs.Add(f, ErrNotAString)
			default:
				errs.Add(f, ValidateEmploymentType(req.EmploymentType.Value))
			}
		case FieldIsActive:
			switch {
			case !req.IsActive.Present:
			case req.IsActive.Null:
				errs.Add(f, ErrNull)
			case req.IsActive.Invalid:
				errs.Add(f, ErrNotABool)
			}
		case FieldProject:
			switch {
			case !req.Project.Present:
				errs.Add(f, ErrRequired)
			case req.Project.Null:
				errs.Add(f, ErrNull)
			case req.Project.Invalid:
				errs.Add(f, ErrNotAnInt)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func salaryField(n models.Nullable[models.Amount], nonPositive error) error {
	switch {
	case !n.Present, n.Null:
		return nil
	case n.Invalid:
		return ErrNotANumber
	default:
		return ValidateSalary(&n.Value, nonPositive)
	}
}

// ValidateSalary fails with nonPositive (one of ErrNonPositiveMinimum and
// ErrNonPositiveMaximum, both matching ErrNonPositiveSalary) when salary is
// present and not greater than zero.
func ValidateSalary(salary *models.Amount, nonPositive error) error {
	if salary == nil {
		return nil
	}
	if !salary.Finite() {
		return ErrNotANumber
	}
	if *salary <= 0 {
		return nonPositive
	}
	return validateDecimal(*salary)
}

// CrossValidateSalary fails with ErrSalaryRangeInverted when both bounds are
// present and min is greater than max.
func CrossValidateSalary(salaryMin, salaryMax *models.Amount) error {
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return ErrSalaryRangeInverted
	}
	return nil
}

// ValidateEmploymentType fails with ErrInvalidChoice outside the enum.
func ValidateEmploymentType(t models.EmploymentType) error {
	if !t.Valid() {
		return invalidChoice(string(t))
	}
	return nil
}

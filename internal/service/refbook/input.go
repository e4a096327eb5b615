package refbook

import (
	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// CheckElementInput holds the parameters of an element existence check.
type CheckElementInput struct {
	RefbookID int64
	Code      string
	Value     string
	Version   string // empty = version current today
}

// Validate checks all fields and collects all errors.
func (i CheckElementInput) Validate() error {
	var errs []domain.FieldError

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}
	if i.Value == "" {
		errs = append(errs, domain.FieldError{Field: "value", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

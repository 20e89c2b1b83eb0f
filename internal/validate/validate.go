// Package validate checks raw submissions against the questionnaire
// contract before any processing starts. Failures are reported as a
// single domain.ErrValidation carrying one entry per offending field.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/legadokit/legado-agent-go/internal/domain"
)

// Validator wraps a configured validator instance. Safe for concurrent
// use; construct once at startup.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Submission validates a raw questionnaire submission. A nil return
// means the submission may enter the pipeline; otherwise the error is a
// *domain.ErrValidation listing every offending field.
func (va *Validator) Submission(raw *domain.RawSubmission) error {
	if raw == nil {
		return &domain.ErrValidation{Message: "empty request body"}
	}

	err := va.v.Struct(raw)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ErrValidation{Message: err.Error()}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: describe(fe),
		})
	}
	return &domain.ErrValidation{Fields: fields}
}

// fieldPath strips the struct name prefix and lowercases the first rune
// of each segment so errors reference the JSON shape, not Go names.
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	segments := strings.Split(path, ".")
	for i, s := range segments {
		if s == "" {
			continue
		}
		segments[i] = strings.ToLower(s[:1]) + s[1:]
	}
	return strings.Join(segments, ".")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

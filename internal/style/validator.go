package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/stylecfg/internal/validation"
	"github.com/bmatcuk/doublestar/v4"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate, trans, err := validation.New()
	if err != nil {
		return nil, nil, err
	}
	if err := validate.RegisterValidation("glob", isGlob); err != nil {
		return nil, nil, fmt.Errorf("failed to register glob validation: %w", err)
	}
	if err := validation.RegisterMessage(validate, trans, "glob", "{0} must be a valid glob pattern", fieldPath); err != nil {
		return nil, nil, err
	}
	return validate, trans, nil
}

func isGlob(fl validator.FieldLevel) bool {
	return doublestar.ValidatePattern(fl.Field().String())
}

// fieldPath converts a validator namespace such as "document.plugins[0].name" into
// document notation.
func fieldPath(fe validator.FieldError) string {
	namespace := fe.Namespace()
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// validateDocument checks value constraints and returns the first violation as a
// SchemaError.
func validateDocument(validate *validator.Validate, trans ut.Translator, doc document) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("validate.Struct() > %w", err)
	}
	fe := validationErrors[0]
	field := fieldPath(fe)
	reason := fe.Translate(trans)
	// Default translations name the leaf field only.
	if fe.Field() != field {
		reason = strings.Replace(reason, fe.Field(), field, 1)
	}
	return &SchemaError{
		Field:  field,
		Reason: reason,
	}
}

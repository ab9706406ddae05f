package config

import (
	"strings"

	"github.com/at-ishikawa/stylecfg/internal/validation"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate, trans, err := validation.New()
	if err != nil {
		return nil, nil, err
	}
	// Name nested settings by their full key, e.g. "output.format".
	if err := validation.RegisterMessage(validate, trans, "oneof", "{0} must be one of [{1}]", func(fe validator.FieldError) string {
		return strings.TrimPrefix(fe.Namespace(), "Config.")
	}); err != nil {
		return nil, nil, err
	}
	return validate, trans, nil
}

package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Path   string `mapstructure:"style_config" validate:"required"`
	Format string `mapstructure:"format,omitempty" validate:"oneof=a b"`
}

func TestNew(t *testing.T) {
	validate, trans, err := New()
	require.NoError(t, err)

	err = validate.Struct(settings{Format: "a"})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "style_config", validationErrors[0].Field())
	assert.Equal(t, "style_config is a required field", validationErrors[0].Translate(trans))
}

func TestRegisterMessage(t *testing.T) {
	validate, trans, err := New()
	require.NoError(t, err)
	require.NoError(t, RegisterMessage(validate, trans, "oneof", "{0} must be one of [{1}]", func(fe validator.FieldError) string {
		return "output." + fe.Field()
	}))

	err = validate.Struct(settings{Path: "style.json", Format: "c"})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "output.format must be one of [a b]", validationErrors[0].Translate(trans))
}

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,notblank,max=5"`
	Level string `json:"level" validate:"oneof=junior senior"`
	Years int    `json:"years" validate:"min=0,max=50"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := New()

	err := v.Struct(sample{Name: "   ", Level: "boss", Years: 99, Email: "nope"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "name: is required")
	assert.Contains(t, msgs, "level: must be one of: junior, senior")
	assert.Contains(t, msgs, "years: must be at most 50")
	assert.Contains(t, msgs, "email: must be a valid email address")
}

func TestFormatValidationErrorsStringLimits(t *testing.T) {
	err := New().Struct(sample{Name: "toolong", Level: "junior"})
	assert.Equal(t, []string{"name: must be at most 5 characters"}, FormatValidationErrors(err))
}

func TestFormatValidationErrorsPassThrough(t *testing.T) {
	assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
}

func TestValidStructPasses(t *testing.T) {
	assert.NoError(t, New().Struct(sample{Name: "Ada", Level: "senior", Years: 3}))
}

type secret struct {
	Password string `json:"password" validate:"required,max=72,maxbytes=72"`
}

func TestMaxBytes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(secret{Password: strings.Repeat("a", 72)}))

	err := v.Struct(secret{Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	assert.Equal(t, []string{"password: must be at most 72 bytes"}, FormatValidationErrors(err))
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Slug  string `json:"slug" validate:"required,slug"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidate_Slug(t *testing.T) {
	v := New()

	tests := []struct {
		slug  string
		valid bool
	}{
		{"panels", true},
		{"solar-panels-400w", true},
		{"Panels", false},
		{"solar--panels", false},
		{"-panels", false},
		{"panels ", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := v.Validate(&categoryRequest{Name: "Panels", Slug: tt.slug})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDescribe_UsesJSONNames(t *testing.T) {
	err := New().Validate(&categoryRequest{Slug: "ok", Email: "not-an-email"})
	require.Error(t, err)

	fields, ok := Describe(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Rule: "required"},
		{Field: "email", Rule: "email"},
	}, fields)
}

func TestDescribe_OtherErrors(t *testing.T) {
	_, ok := Describe(assert.AnError)
	assert.False(t, ok)
}

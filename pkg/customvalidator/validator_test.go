package customvalidator

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestSlugValidation(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Slug string `validate:"slug"`
	}

	valid := []string{"home", "about-us", "page-2", "a", "123"}
	for _, s := range valid {
		assert.NoError(t, v.Struct(payload{Slug: s}), "slug %q должен проходить", s)
	}

	invalid := []string{"", "Главная", "About Us", "UPPER", "-lead", "trail-", "double--dash", "под_черк"}
	for _, s := range invalid {
		assert.Error(t, v.Struct(payload{Slug: s}), "slug %q не должен проходить", s)
	}
}

func TestPageStatusValidation(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Status string `validate:"page_status"`
	}

	for _, s := range []string{"draft", "published", "archived"} {
		assert.NoError(t, v.Struct(payload{Status: s}))
	}
	for _, s := range []string{"", "deleted", "Draft", "live"} {
		assert.Error(t, v.Struct(payload{Status: s}))
	}
}

func TestBlockTypeValidation(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Type string `validate:"block_type"`
	}

	for _, s := range []string{"text", "html", "image", "gallery", "menu"} {
		assert.NoError(t, v.Struct(payload{Type: s}))
	}
	for _, s := range []string{"", "video", "TEXT"} {
		assert.Error(t, v.Struct(payload{Type: s}))
	}
}

// null-типы раскрываются до вложенного значения: невалидный null.String
// равносилен отсутствию поля и пропускается через omitempty.
func TestNullTypesUnwrap(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Slug   null.String `validate:"omitempty,slug"`
		Status null.String `validate:"omitempty,page_status"`
	}

	assert.NoError(t, v.Struct(payload{}))

	assert.NoError(t, v.Struct(payload{
		Slug:   null.StringFrom("about-us"),
		Status: null.StringFrom("published"),
	}))

	assert.Error(t, v.Struct(payload{Slug: null.StringFrom("Не слаг")}))
	assert.Error(t, v.Struct(payload{Status: null.StringFrom("live")}))
}

func TestEmailValidation(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Email string `validate:"email"`
	}

	assert.NoError(t, v.Struct(payload{Email: "editor@example.com"}))
	assert.Error(t, v.Struct(payload{Email: "editor@localhost"}))
	assert.Error(t, v.Struct(payload{Email: "not-an-email"}))
}

package validate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	valid := []string{"Jane Doe", "ABC College", "CS", "Hackathon 2024", "a"}
	for _, s := range valid {
		assert.True(t, PlainText(s), "expected valid: %q", s)
	}

	invalid := []string{"", "jane@doe", "O'Brien", "name!", "<script>", "semi;colon"}
	for _, s := range invalid {
		assert.False(t, PlainText(s), "expected invalid: %q", s)
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("jane@example.com"))
	assert.True(t, Email("a@x.com"))
	assert.False(t, Email(""))
	assert.False(t, Email("not-an-email"))
	assert.False(t, Email("jane@"))
	assert.False(t, Email("Jane Doe <jane@example.com>"))
}

func TestFieldErrorsAddKeepsFirstMessage(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "first")
	errs.Add("email", "second")
	assert.Equal(t, "first", errs["email"])
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{"email": "Please enter a valid email address."}
	assert.Equal(t, "email: Please enter a valid email address.", errs.Error())
}

func TestAsFieldErrors(t *testing.T) {
	errs := FieldErrors{"full_name": "bad"}

	got, ok := AsFieldErrors(error(errs))
	require.True(t, ok)
	assert.Equal(t, errs, got)

	_, ok = AsFieldErrors(errors.New("boom"))
	assert.False(t, ok)

	// Wrapped system errors are not field errors.
	_, ok = AsFieldErrors(fmt.Errorf("persist: %w", errors.New("db down")))
	assert.False(t, ok)
}

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `validate:"required"`
	Email string  `validate:"required,email"`
	Hours float64 `validate:"gt=0"`
	Items []item  `validate:"dive"`
}

type item struct {
	Priority int `validate:"gte=1,lte=5"`
}

func TestStruct_Valid(t *testing.T) {
	s := sample{Name: "a", Email: "a@example.com", Hours: 1, Items: []item{{Priority: 3}}}
	assert.NoError(t, Struct(&s))
}

func TestStruct_CollectsAllFields(t *testing.T) {
	s := sample{Email: "nope", Items: []item{{Priority: 9}}}
	err := Struct(&s)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)

	msg := err.Error()
	assert.Contains(t, msg, "Name is required")
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Hours must be greater than 0")
	assert.Contains(t, msg, "Items[0].Priority must be at most 5")
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}

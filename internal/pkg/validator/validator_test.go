package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"firstName" validate:"required,min=2"`
	Role  *string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
}

func TestStruct_Valid(t *testing.T) {
	assert.Nil(t, Struct(&sample{Email: "a@b.co", Name: "Ann"}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	role := "OWNER"
	errs := Struct(&sample{Email: "nope", Name: "A", Role: &role})
	require.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "firstName must be at least 2 characters", fields["firstName"])
	assert.Equal(t, "role must be one of [ADMIN MEMBER]", fields["role"])
}

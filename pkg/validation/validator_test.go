package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Role     string `json:"role" validate:"omitempty,role"`
	Seats    int    `json:"seats" validate:"gte=1"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetails_UsesJSONNamesAndAliases(t *testing.T) {
	err := newValidator().Struct(signupReq{
		Email:    "not-an-email",
		Password: "12345",
		Role:     "owner",
	})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be at least 6 characters", d["password"])
	assert.Equal(t, "must be one of: user, clubadmin, superadmin", d["role"])
	assert.Equal(t, "must be greater than or equal to 1", d["seats"])
}

func TestToDetails_ValidPayload(t *testing.T) {
	err := newValidator().Struct(signupReq{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Seats: 2,
	})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(err))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var out map[string]any
	err := json.Unmarshal([]byte(`{"name":`), &out)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Admin@123", true},
		{"Sup3r$ecret", true},
		{"admin@123", false},
		{"ADMIN@123", false},
		{"Admin@abc", false},
		{"Admin1234", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStrongPassword(tt.password), tt.password)
	}
}

type registerPayload struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,strongpassword"`
	FirstName string `json:"firstName" validate:"notblank,min=2"`
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(registerPayload{
		Email:     "not-an-email",
		Password:  "weakpass",
		FirstName: "  ",
	})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "email must be a valid email address")
	assert.Contains(t, appErr.Details, "password must contain uppercase, lowercase, number, and special character")
	assert.Contains(t, appErr.Details, "firstName is required")
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(registerPayload{
		Email:     "a@x.com",
		Password:  "Admin@123",
		FirstName: "Ada",
	})
	assert.NoError(t, err)
}

func TestBindingError_MalformedJSON(t *testing.T) {
	var v map[string]any
	jsonErr := json.Unmarshal([]byte("{bad"), &v)
	require.Error(t, jsonErr)

	err := BindingError(jsonErr)
	assert.True(t, errors.IsBadRequestError(err))
	assert.Nil(t, BindingError(nil))
}

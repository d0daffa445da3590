package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

func TestParseUUIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"valid", "3F2504E0-4F89-11D3-9A0C-0305E82C3301", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", false},
		{"missing", "", "", true},
		{"malformed", "ticket-1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			got, err := ParseUUIDParam(c, "id", "ticket")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetAuthIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, _, err := GetAuthIdentity(c)
	assert.True(t, errors.IsUnauthorizedError(err))

	c.Set(constants.ContextKeyUserID, "u-1")
	c.Set(constants.ContextKeyUserRole, "ADMIN")
	id, role, err := GetAuthIdentity(c)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, "ADMIN", role)
}

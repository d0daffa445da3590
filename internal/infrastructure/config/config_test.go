package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/cloudcare/helpdesk/internal/shared/config"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "/api/v1", cfg.Server.APIPrefix)
	assert.Equal(t, sharedConfig.DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 15, cfg.Auth.JWT.AccessExpMinutes)
	assert.Equal(t, 7, cfg.Auth.JWT.RefreshExpDays)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 20, cfg.RateLimit.AuthMax)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	require.NoError(t, err)

	bad := *cfg
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Auth.JWT.RefreshSecret = bad.Auth.JWT.AccessSecret
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Auth.JWT.AccessSecret = ""
	assert.Error(t, bad.Validate())
}

func TestDecode_EnvOverride(t *testing.T) {
	t.Setenv("HELPDESK_DATABASE_DRIVER", "sqlite")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()
	setDefaults(v)

	cfg, err := decode(v)
	require.NoError(t, err)
	assert.Equal(t, sharedConfig.DriverSQLite, cfg.Database.Driver)
}

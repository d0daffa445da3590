package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddConfigFlags(t *testing.T) {
	var env, configPath string
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddConfigFlags(fs, &env, &configPath)

	assert.Equal(t, "development", env)

	require.NoError(t, fs.Parse([]string{"-e", "production", "--config", "/etc/helpdesk.yaml"}))
	assert.Equal(t, "production", env)
	assert.Equal(t, "/etc/helpdesk.yaml", configPath)
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "test", ResolveEnv("test"))

	t.Setenv("ENV", "production")
	assert.Equal(t, "production", ResolveEnv("test"))
}

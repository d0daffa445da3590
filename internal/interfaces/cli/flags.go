// Package cli holds what the helpdesk subcommands share.
package cli

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
)

// AddConfigFlags registers --env/-e and --config/-c on fs.
func AddConfigFlags(fs *pflag.FlagSet, env, configPath *string) {
	fs.StringVarP(env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	fs.StringVarP(configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// ResolveEnv returns the ENV variable when set, otherwise the flag value.
func ResolveEnv(flagValue string) string {
	if v := os.Getenv("ENV"); v != "" {
		return v
	}
	return flagValue
}

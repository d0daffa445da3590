package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/cloudcare/helpdesk/internal/shared/config"
)

// EnvPrefix namespaces environment overrides, e.g. HELPDESK_DATABASE_HOST.
const EnvPrefix = "HELPDESK"

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"rate_limit"`
	Metrics   sharedConfig.MetricsConfig   `mapstructure:"metrics"`
}

var replacer = strings.NewReplacer(".", "_")

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads .env (if present), the config file and HELPDESK_* variables.
// An empty configPath searches configs/config.yaml; a missing file there is
// not an error since defaults and env cover every key.
func Load(env, configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("../configs")
		viper.AddConfigPath("../../configs")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override the environment if provided
	if env != "" && env != "default" {
		viper.Set("server.environment", env)
	}

	config, err := decode(viper.GetViper())
	if err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = config
	appConfigMu.Unlock()

	return config, nil
}

// Watch reloads the configuration when the file changes and hands the new
// value to onChange. Only settings that are safe to change at runtime should
// be applied by the callback.
func Watch(onChange func(*Config)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		config, err := decode(viper.GetViper())
		if err != nil {
			return
		}
		appConfigMu.Lock()
		appConfig = config
		appConfigMu.Unlock()
		if onChange != nil {
			onChange(config)
		}
	})
	viper.WatchConfig()
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Auth.JWT.AccessSecret == "" || c.Auth.JWT.RefreshSecret == "" {
		return fmt.Errorf("auth.jwt.access_secret and auth.jwt.refresh_secret are required")
	}
	if c.Auth.JWT.AccessSecret == c.Auth.JWT.RefreshSecret {
		return fmt.Errorf("access and refresh tokens must use different secrets")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.api_prefix", "/api/v1")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.request_timeout_seconds", 30)

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "helpdesk")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "helpdesk.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.access_secret", "change-me-access-secret")
	v.SetDefault("auth.jwt.refresh_secret", "change-me-refresh-secret")
	v.SetDefault("auth.jwt.access_exp_minutes", 15)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)

	// Email defaults
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "support@cloudcare.local")
	v.SetDefault("email.from_name", "CloudCare Support")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.window_minutes", 15)
	v.SetDefault("rate_limit.max_requests", 100)
	v.SetDefault("rate_limit.auth_max_requests", 20)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

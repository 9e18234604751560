package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xxxsen/common/logger"

	"github.com/xxxsen/markbook/internal/pkg/jwt"
)

const envPrefix = "MARKBOOK"

type Config struct {
	Port      int              `json:"port"`
	JWTSecret string           `json:"jwt_secret"`
	Database  DatabaseConfig   `json:"database"`
	LogConfig logger.LogConfig `json:"log_config"`
	CORS      CORSConfig       `json:"cors"`
	Gzip      bool             `json:"gzip"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins"`
}

// keys that may come from the environment alone, without a config file
var envKeys = []string{
	"port",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.dbname",
	"database.sslmode",
	"log_config.file",
	"log_config.level",
	"log_config.file_count",
	"log_config.file_size",
	"log_config.keep_days",
	"log_config.console",
	"cors.allow_origins",
	"gzip",
}

// Load reads the optional config file at path and overlays environment
// variables (MARKBOOK_PORT, MARKBOOK_DATABASE_HOST, ...). JWT_SECRET and
// DATABASE_URL are honoured as well.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("gzip", true)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("log_config.level", "info")
	v.SetDefault("log_config.console", true)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	if err := v.BindEnv("jwt_secret", envPrefix+"_JWT_SECRET", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("bind env jwt_secret: %w", err)
	}
	if err := v.BindEnv("database.dsn", envPrefix+"_DATABASE_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind env database.dsn: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	// json tags, so logger.LogConfig decodes under the same keys as the rest
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if len(c.JWTSecret) < jwt.MinSecretLength {
		return fmt.Errorf("jwt_secret must be at least %d bytes", jwt.MinSecretLength)
	}
	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("database.dsn or database.host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

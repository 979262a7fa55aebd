// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Competitors []string     `yaml:"competitors" mapstructure:"competitors"`
	Fetch       FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Batch       BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Output      OutputConfig `yaml:"output" mapstructure:"output"`
	Store       StoreConfig  `yaml:"store" mapstructure:"store"`
	Server      ServerConfig `yaml:"server" mapstructure:"server"`
	Log         LogConfig    `yaml:"log" mapstructure:"log"`
}

// FetchConfig configures the document fetcher.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// BatchConfig configures scan pacing.
type BatchConfig struct {
	PaceEvery     int `yaml:"pace_every" mapstructure:"pace_every"`
	PaceDelaySecs int `yaml:"pace_delay_secs" mapstructure:"pace_delay_secs"`
}

// OutputConfig configures where result artifacts are written.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	BaseName string `yaml:"base_name" mapstructure:"base_name"`
}

// StoreConfig configures the scan-run ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the read-only results server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// defaultCompetitors is the vendor set scanned for when none is configured.
var defaultCompetitors = []string{
	"Dentalqore",
	"Roya.com",
	"ekwa.com",
	"Tebra",
	"iMatrix",
	"GrowthPlug",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("competitors", defaultCompetitors)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("batch.pace_every", 5)
	v.SetDefault("batch.pace_delay_secs", 1)
	v.SetDefault("output.dir", "filtered_results")
	v.SetDefault("output.base_name", "competitor_clinics")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "prospect.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

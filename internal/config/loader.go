package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jittakal/logdiag/internal/config/dto"
	"github.com/spf13/viper"
)

// Loader handles configuration loading and validation
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LOGDIAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Load loads configuration from file and environment variables
func (l *Loader) Load(path string) (*dto.ApplicationConfig, error) {
	// Set defaults
	l.setDefaults()

	// Load from file if provided
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Expand environment variables in config values
	for _, key := range l.v.AllKeys() {
		value := l.v.GetString(key)
		if strings.Contains(value, "${") {
			l.v.Set(key, os.ExpandEnv(value))
		}
	}

	// Unmarshal configuration
	var config dto.ApplicationConfig
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func (l *Loader) setDefaults() {
	// Application defaults
	l.v.SetDefault("application.name", "logdiag")
	l.v.SetDefault("application.version", "1.0.0")
	l.v.SetDefault("application.environment", "development")

	// Input defaults
	l.v.SetDefault("input.data_dir", "")
	l.v.SetDefault("input.log_files", []string{})

	// Analysis defaults
	l.v.SetDefault("analysis.significant_diff_ms", 100)
	l.v.SetDefault("analysis.first_select_window_ms", 100)
	l.v.SetDefault("analysis.timeline_message_len", 60)
	l.v.SetDefault("analysis.first_select_list_max", 5)

	// Report destination defaults
	l.v.SetDefault("reports.backend", "file")
	l.v.SetDefault("reports.file.base_path", ".")
	l.v.SetDefault("reports.s3.use_path_style", false)
	l.v.SetDefault("reports.s3.sse_enabled", true)

	// Export defaults
	l.v.SetDefault("export.enabled", false)
	l.v.SetDefault("export.format", "parquet")
	l.v.SetDefault("export.compression", "snappy")

	// Observability defaults
	l.v.SetDefault("observability.logging.level", "info")
	l.v.SetDefault("observability.logging.format", "text")
	l.v.SetDefault("observability.logging.output", "stderr")
	l.v.SetDefault("observability.server.enabled", false)
	l.v.SetDefault("observability.server.port", 9090)
	l.v.SetDefault("observability.server.metrics_path", "/metrics")
}

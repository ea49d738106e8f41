package dto

import "fmt"

// ApplicationConfig is the root configuration structure
type ApplicationConfig struct {
	Application   ApplicationInfo     `mapstructure:"application"`
	Input         InputConfig         `mapstructure:"input"`
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Reports       ReportsConfig       `mapstructure:"reports"`
	Export        ExportConfig        `mapstructure:"export"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ApplicationInfo contains application metadata
type ApplicationInfo struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// InputConfig contains log discovery and ingestion settings
type InputConfig struct {
	// DataDir is the Playnite data directory scanned for well-known log
	// files when no explicit log files are given.
	DataDir string `mapstructure:"data_dir"`

	// LogFiles lists explicit log files to analyze; when non-empty,
	// discovery is skipped.
	LogFiles []string `mapstructure:"log_files"`
}

// AnalysisConfig contains report tuning parameters
type AnalysisConfig struct {
	SignificantDiffMS   int `mapstructure:"significant_diff_ms"`
	FirstSelectWindowMS int `mapstructure:"first_select_window_ms"`
	TimelineMessageLen  int `mapstructure:"timeline_message_len"`
	FirstSelectListMax  int `mapstructure:"first_select_list_max"`
}

// ReportsConfig contains report artifact destination configuration
type ReportsConfig struct {
	Backend string      `mapstructure:"backend"`
	File    FileConfig  `mapstructure:"file"`
	S3      S3Config    `mapstructure:"s3"`
	Azure   AzureConfig `mapstructure:"azure"`
	GCS     GCSConfig   `mapstructure:"gcs"`
}

// S3Config contains AWS S3 configuration
type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Region       string `mapstructure:"region"`
	BasePath     string `mapstructure:"base_path"`
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
	SSEEnabled   bool   `mapstructure:"sse_enabled"`
	SSEKMSKeyID  string `mapstructure:"sse_kms_key_id"`
}

// AzureConfig contains Azure Blob Storage configuration
type AzureConfig struct {
	AccountName string `mapstructure:"account_name"`
	AccountKey  string `mapstructure:"account_key"`
	Container   string `mapstructure:"container"`
	Endpoint    string `mapstructure:"endpoint"`
}

// GCSConfig contains Google Cloud Storage configuration
type GCSConfig struct {
	Bucket               string `mapstructure:"bucket"`
	ProjectID            string `mapstructure:"project_id"`
	BasePath             string `mapstructure:"base_path"`
	CredentialsFile      string `mapstructure:"credentials_file"`
	UseDefaultCredential bool   `mapstructure:"use_default_credential"`
}

// FileConfig contains local filesystem configuration
type FileConfig struct {
	BasePath string `mapstructure:"base_path"`
}

// ExportConfig contains event export settings
type ExportConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Format      string `mapstructure:"format"`
	Compression string `mapstructure:"compression"`
}

// ObservabilityConfig contains observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ServerConfig contains the optional metrics/health endpoint settings
type ServerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Port        int    `mapstructure:"port"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.Application.Name == "" {
		return fmt.Errorf("application name is required")
	}
	if err := c.Analysis.Validate(); err != nil {
		return err
	}
	if err := c.Reports.Validate(); err != nil {
		return err
	}
	if err := c.Export.Validate(); err != nil {
		return err
	}
	if c.Observability.Server.Enabled {
		if c.Observability.Server.Port < 1 || c.Observability.Server.Port > 65535 {
			return fmt.Errorf("invalid server port: %d", c.Observability.Server.Port)
		}
	}
	return nil
}

// Validate validates the analysis tuning parameters.
func (c *AnalysisConfig) Validate() error {
	if c.SignificantDiffMS < 0 {
		return fmt.Errorf("analysis significant_diff_ms must not be negative")
	}
	if c.FirstSelectWindowMS < 0 {
		return fmt.Errorf("analysis first_select_window_ms must not be negative")
	}
	if c.TimelineMessageLen < 1 {
		return fmt.Errorf("analysis timeline_message_len must be positive")
	}
	if c.FirstSelectListMax < 1 {
		return fmt.Errorf("analysis first_select_list_max must be positive")
	}
	return nil
}

// Validate validates the report destination configuration.
func (c *ReportsConfig) Validate() error {
	switch c.Backend {
	case "file":
		if c.File.BasePath == "" {
			return fmt.Errorf("reports file base_path is required for file backend")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("reports s3 bucket is required for S3 backend")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("reports s3 region is required for S3 backend")
		}
	case "azure":
		if c.Azure.AccountName == "" {
			return fmt.Errorf("reports azure account_name is required for Azure backend")
		}
		if c.Azure.Container == "" {
			return fmt.Errorf("reports azure container is required for Azure backend")
		}
	case "gcs":
		if c.GCS.Bucket == "" {
			return fmt.Errorf("reports gcs bucket is required for GCS backend")
		}
	default:
		return fmt.Errorf("unsupported reports backend: %s", c.Backend)
	}
	return nil
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Format != "parquet" && c.Format != "avro" {
		return fmt.Errorf("unsupported export format: %s", c.Format)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader()

	config, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Application.Name != "logdiag" {
		t.Errorf("application name = %q, want logdiag", config.Application.Name)
	}
	if config.Analysis.SignificantDiffMS != 100 {
		t.Errorf("significant_diff_ms = %d, want 100", config.Analysis.SignificantDiffMS)
	}
	if config.Analysis.TimelineMessageLen != 60 {
		t.Errorf("timeline_message_len = %d, want 60", config.Analysis.TimelineMessageLen)
	}
	if config.Reports.Backend != "file" {
		t.Errorf("reports backend = %q, want file", config.Reports.Backend)
	}
	if config.Export.Enabled {
		t.Error("export should be disabled by default")
	}
	if config.Observability.Server.Enabled {
		t.Error("server should be disabled by default")
	}
	if config.Observability.Logging.Level != "info" {
		t.Errorf("logging level = %q, want info", config.Observability.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
application:
  name: logdiag-test
input:
  data_dir: /data/playnite
analysis:
  significant_diff_ms: 250
reports:
  backend: s3
  s3:
    bucket: diag-reports
    region: eu-west-1
export:
  enabled: true
  format: avro
observability:
  logging:
    level: debug
  server:
    enabled: true
    port: 9091
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Application.Name != "logdiag-test" {
		t.Errorf("application name = %q, want logdiag-test", config.Application.Name)
	}
	if config.Input.DataDir != "/data/playnite" {
		t.Errorf("data_dir = %q, want /data/playnite", config.Input.DataDir)
	}
	if config.Analysis.SignificantDiffMS != 250 {
		t.Errorf("significant_diff_ms = %d, want 250", config.Analysis.SignificantDiffMS)
	}
	if config.Reports.Backend != "s3" || config.Reports.S3.Bucket != "diag-reports" {
		t.Errorf("reports = %+v, want s3/diag-reports", config.Reports)
	}
	if config.Export.Format != "avro" {
		t.Errorf("export format = %q, want avro", config.Export.Format)
	}
	if !config.Observability.Server.Enabled || config.Observability.Server.Port != 9091 {
		t.Errorf("server = %+v, want enabled on 9091", config.Observability.Server)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LOGDIAG_ANALYSIS_SIGNIFICANT_DIFF_MS", "500")
	t.Setenv("LOGDIAG_REPORTS_FILE_BASE_PATH", "/tmp/reports")

	config, err := NewLoader().Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Analysis.SignificantDiffMS != 500 {
		t.Errorf("significant_diff_ms = %d, want env override 500", config.Analysis.SignificantDiffMS)
	}
	if config.Reports.File.BasePath != "/tmp/reports" {
		t.Errorf("file base_path = %q, want env override /tmp/reports", config.Reports.File.BasePath)
	}
}

func TestLoadValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown backend",
			content: `
reports:
  backend: ftp
`,
		},
		{
			name: "s3 without bucket",
			content: `
reports:
  backend: s3
`,
		},
		{
			name: "azure without container",
			content: `
reports:
  backend: azure
  azure:
    account_name: diag
`,
		},
		{
			name: "gcs without bucket",
			content: `
reports:
  backend: gcs
`,
		},
		{
			name: "bad export format",
			content: `
export:
  enabled: true
  format: csv
`,
		},
		{
			name: "negative threshold",
			content: `
analysis:
  significant_diff_ms: -1
`,
		},
		{
			name: "bad server port",
			content: `
observability:
  server:
    enabled: true
    port: 70000
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := NewLoader().Load(path); err == nil {
				t.Error("Load() should fail validation")
			}
		})
	}
}

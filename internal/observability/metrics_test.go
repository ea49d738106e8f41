package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	if metrics == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestMetrics_IngestionCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	// Should not panic
	metrics.IncLinesRead("extensions.log")
	metrics.IncLinesRead("playnite.log")
	metrics.IncLinesSkipped("extensions.log", "format")
	metrics.IncLinesSkipped("extensions.log", "timestamp")
	metrics.IncEventsStored("UniPlaySong", "OnGameSelected")
	metrics.IncEventsDropped("extensions.log")
	metrics.IncInputFailures("missing.log")
	metrics.ObserveAnalyzeDuration("extensions.log", 0.02)
}

func TestMetrics_ArtifactCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.IncReportsGenerated("timeline")
	metrics.IncArtifactsWritten("file", "success")
	metrics.IncArtifactsWritten("s3", "failure")
	metrics.ObserveArtifactSize("file", 4096.0)
	metrics.ObserveSinkWriteDuration("s3", 0.3)
	metrics.IncSinkErrors("s3", "upload")
}

func TestMetrics_AllOperations(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	// A complete run touches ingestion, report and sink metrics.
	metrics.IncLinesRead("extensions.log")
	metrics.IncEventsStored("UniPlaySong", "VideoIsPlaying")
	metrics.ObserveAnalyzeDuration("extensions.log", 0.01)
	metrics.IncReportsGenerated("summary")
	metrics.IncArtifactsWritten("file", "success")
	metrics.ObserveArtifactSize("file", 2048.0)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Error("No metrics were registered")
	}
}

func TestMetrics_SinkErrorsRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	backends := []string{"s3", "azure", "gcs", "file"}
	operations := []string{"upload", "create", "put"}

	for _, backend := range backends {
		for _, operation := range operations {
			metrics.IncSinkErrors(backend, operation)
		}
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metricFamilies {
		if *mf.Name == "sink_errors_total" {
			found = true
			if len(mf.Metric) == 0 {
				t.Error("Expected error metrics to be recorded")
			}
			break
		}
	}
	if !found {
		t.Error("Expected sink errors metric to be registered")
	}
}

func TestMetrics_HighVolume(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	for i := 0; i < 1000; i++ {
		metrics.IncLinesRead("extensions.log")
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Error("Metrics should be recorded")
	}
}

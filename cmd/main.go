package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jittakal/logdiag/internal/analyzer"
	"github.com/jittakal/logdiag/internal/config"
	"github.com/jittakal/logdiag/internal/export"
	"github.com/jittakal/logdiag/internal/observability"
	"github.com/jittakal/logdiag/internal/report"
	"github.com/jittakal/logdiag/internal/server"
	"github.com/jittakal/logdiag/internal/sink"
	"github.com/jittakal/logdiag/internal/source"
	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
	pkgexport "github.com/jittakal/logdiag/pkg/export"
	pkgsink "github.com/jittakal/logdiag/pkg/sink"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func run() error {
	// Parse command-line flags
	configPath := flag.String("config", "", "path to configuration file")
	dataDir := flag.String("data-dir", "", "Playnite data directory to scan for log files")
	outDir := flag.String("out", "", "report output directory (file backend)")
	flag.Parse()

	// Load configuration
	// Priority: CLI flag > CONFIG_PATH env var > default path
	var cfgPath string
	if *configPath != "" {
		cfgPath = *configPath
	} else if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		cfgPath = envPath
	} else {
		cfgPath = "config/application.yaml"
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *dataDir != "" {
		cfg.Input.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Reports.Backend = "file"
		cfg.Reports.File.BasePath = *outDir
	}

	// Initialize observability
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
		Output: cfg.Observability.Logging.Output,
	})
	logger.Info("starting log analysis",
		"version", cfg.Application.Version,
		"environment", cfg.Application.Environment,
	)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New()
	status := &runStatus{store: st}

	// Optional metrics/health endpoint
	if cfg.Observability.Server.Enabled {
		httpServer := server.NewServer(
			cfg.Observability.Server.Port,
			cfg.Observability.Server.MetricsPath,
			status,
			registry,
			logger,
		)
		if err := httpServer.Start(); err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown failed", "error", err)
			}
		}()
	}

	// Resolve log files.
	// Priority: positional arguments > configured log files > discovery.
	paths := flag.Args()
	if len(paths) == 0 {
		paths = cfg.Input.LogFiles
	}
	if len(paths) == 0 {
		paths = source.Discover(cfg.Input.DataDir)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no log files found (data_dir=%q)", cfg.Input.DataDir)
	}

	// Read inputs. A failing file is a warning, not a fatal error.
	var inputs []analyzer.Input
	for _, path := range paths {
		input, err := source.Read(path)
		if err != nil {
			logger.Warn("skipping unreadable log file", "path", path, "error", err)
			metrics.IncInputFailures(path)
			continue
		}
		logger.Info("loaded log file", "path", path, "lines", len(input.Lines))
		inputs = append(inputs, input)
	}

	a := analyzer.New(st, logger, metrics)
	if err := a.Run(ctx, inputs); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	status.ready.Store(true)

	// Generate reports and persist them.
	gen := report.NewGenerator(st, report.Config{
		SignificantDiff:    time.Duration(cfg.Analysis.SignificantDiffMS) * time.Millisecond,
		FirstSelectWindow:  time.Duration(cfg.Analysis.FirstSelectWindowMS) * time.Millisecond,
		TimelineMessageLen: cfg.Analysis.TimelineMessageLen,
		FirstSelectListMax: cfg.Analysis.FirstSelectListMax,
	})

	writer, err := sink.NewWriter(ctx, cfg.Reports, logger, metrics)
	if err != nil {
		return fmt.Errorf("failed to create artifact writer: %w", err)
	}
	defer writer.Close()

	var firstSinkErr error
	for _, r := range gen.All() {
		metrics.IncReportsGenerated(r.Name)
		if _, err := writer.Put(ctx, r.FileName, []byte(r.Text)); err != nil {
			logger.Error("failed to write report", "report", r.Name, "error", err)
			if firstSinkErr == nil {
				firstSinkErr = err
			}
			continue
		}
		fmt.Printf("Written %s report to: %s\n", r.Name, r.FileName)
	}

	// Optional event export for downstream analysis.
	if cfg.Export.Enabled {
		if err := exportEvents(ctx, cfg.Export.Format, cfg.Export.Compression, st, writer); err != nil {
			logger.Error("event export failed", "error", err)
			if firstSinkErr == nil {
				firstSinkErr = err
			}
		}
	}

	printSummary(st)
	logger.Info("analysis complete", "events", st.Len())

	return firstSinkErr
}

// exportEvents encodes the stored events and writes them through the
// artifact writer.
func exportEvents(ctx context.Context, format, compression string, st *store.Store, writer pkgsink.Writer) error {
	exportFormat := pkgexport.Format(format)
	if compression == "" {
		compression = export.DefaultCompression(exportFormat)
	}

	encoder, err := export.NewFactory(exportFormat, compression).CreateEncoder()
	if err != nil {
		return fmt.Errorf("failed to create export encoder: %w", err)
	}

	data, err := encoder.Encode(store.Sorted(st.Events()))
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	name := "log_analysis_events" + encoder.FileExtension()
	if _, err := writer.Put(ctx, name, data); err != nil {
		return err
	}

	fmt.Printf("Written event export to: %s\n", name)
	return nil
}

// printSummary echoes the headline numbers to stdout.
func printSummary(st *store.Store) {
	fmt.Printf("\nAnalyzed %d events\n", st.Len())
	for _, src := range event.KnownSources {
		fmt.Printf("  %s: %d events\n", src, len(st.BySource(src)))
	}
}

// runStatus implements server.StatusProvider over the current run.
type runStatus struct {
	store *store.Store
	ready atomic.Bool
}

func (s *runStatus) Liveness() bool {
	return true
}

func (s *runStatus) Readiness(ctx context.Context) bool {
	return s.ready.Load()
}

func (s *runStatus) GetStatus() map[string]string {
	return map[string]string{
		"events": fmt.Sprintf("%d", s.store.Len()),
	}
}

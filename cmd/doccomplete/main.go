package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"doccomplete/internal/config"
	"doccomplete/internal/report"
	"doccomplete/internal/shared/observability"
	"doccomplete/internal/shared/version"
)

var (
	configPath = flag.String("config", "./doccomplete.toml", "Path to config file")
	watch      = flag.Bool("watch", false, "Re-check files as they change")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode (implies -watch)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("doccomplete v%s\n", version.Version)
		os.Exit(0)
	}

	if *ui {
		*watch = true
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	if *ui {
		// In UI mode, avoid terminal logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			output = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; a missing default config file is not an error.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && *configPath == "./doccomplete.toml" {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.Paths = flag.Args()
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.InitialScan(ctx); err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		files := app.CurrentFindings()
		if err := report.WriteText(os.Stdout, files); err != nil {
			slog.Error("failed to write findings", "error", err)
			os.Exit(1)
		}
		if report.Total(files) > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Watch mode
	if cfg.Observability.MetricsAddr != "" {
		server := observability.NewServer(cfg.Observability.MetricsAddr, app.Health)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer server.Stop(ctx)
	}

	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	report.WriteText(os.Stdout, app.CurrentFindings())
	slog.Info("watching for changes", "paths", cfg.Paths)
	select {}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "doccomplete", "doccomplete.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "doccomplete", "doccomplete.log")
	}

	return "doccomplete.log"
}

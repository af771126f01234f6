package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"doccomplete/internal/check"
	"doccomplete/internal/config"
	"doccomplete/internal/history"
	"doccomplete/internal/parser"
	"doccomplete/internal/report"
	"doccomplete/internal/shared/observability"
	"doccomplete/internal/shared/util"
	"doccomplete/internal/shared/version"
	"doccomplete/internal/watcher"
)

type App struct {
	Config   *config.Config
	Parser   *parser.Parser
	Patterns *check.Patterns

	history    *history.Store
	limiter    *util.Limiter
	teaProgram *tea.Program

	mu       sync.Mutex
	problems map[string][]check.Problem
}

func NewApp(cfg *config.Config) (*App, error) {
	patterns, err := check.Settings{
		TestFilenamePattern:     cfg.Checks.TestFilenamePattern,
		TestFunctionPattern:     cfg.Checks.TestFunctionPattern,
		FixtureFilenamePattern:  cfg.Checks.FixtureFilenamePattern,
		FixtureDecoratorPattern: cfg.Checks.FixtureDecoratorPattern,
	}.Compile()
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Parser:   parser.NewParser(parser.NewGrammarLoader()),
		Patterns: patterns,
		// Bulk checkouts can touch thousands of files at once; cap the
		// rate at which re-check batches are accepted.
		limiter:  util.NewLimiter(10, 20),
		problems: make(map[string][]check.Problem),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		app.history = store
	}

	return app, nil
}

func (a *App) Close() {
	if a.history != nil {
		a.history.Close()
	}
}

// ScanDirectories walks the configured paths and returns every Python
// file that is not excluded.
func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)

			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if filepath.Ext(path) != ".py" {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// CheckFile parses and checks a single file, replacing its stored
// findings.
func (a *App) CheckFile(ctx context.Context, path string) error {
	_, span := observability.Tracer.Start(ctx, "app.CheckFile",
		trace.WithAttributes(attribute.String("file.path", path)))
	defer span.End()

	parseStart := time.Now()
	file, err := a.Parser.ParseFile(path)
	if err != nil {
		return err
	}
	defer file.Close()
	observability.ParsingDuration.Observe(time.Since(parseStart).Seconds())

	checkStart := time.Now()
	problems := check.Run(file.Root(), file.Source, path, a.Patterns)
	observability.CheckDuration.Observe(time.Since(checkStart).Seconds())

	observability.FilesChecked.Inc()
	for _, problem := range problems {
		observability.ProblemsFound.WithLabelValues(problem.Code).Inc()
	}

	a.mu.Lock()
	a.problems[path] = problems
	a.mu.Unlock()
	return nil
}

func (a *App) InitialScan(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "app.InitialScan")
	defer span.End()

	start := time.Now()
	files, err := a.ScanDirectories(a.Config.Paths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := a.CheckFile(ctx, path); err != nil {
			slog.Warn("failed to check file", "path", path, "error", err)
		}
	}

	findings := a.CurrentFindings()
	a.finishRun(findings)
	slog.Info("scan complete",
		"files", len(files),
		"problems", report.Total(findings),
		"duration", time.Since(start))
	return nil
}

// CurrentFindings returns the per-file findings sorted by path.
func (a *App) CurrentFindings() []report.FileProblems {
	a.mu.Lock()
	defer a.mu.Unlock()

	paths := make([]string, 0, len(a.problems))
	for path := range a.problems {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	files := make([]report.FileProblems, 0, len(paths))
	for _, path := range paths {
		files = append(files, report.FileProblems{Path: path, Problems: a.problems[path]})
	}
	return files
}

func (a *App) HandleChanges(paths []string) {
	if !a.limiter.Allow(1) {
		slog.Debug("change batch rate limited", "count", len(paths))
		return
	}

	slog.Info("detected changes", "count", len(paths))
	ctx := context.Background()

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			a.mu.Lock()
			delete(a.problems, path)
			a.mu.Unlock()
			continue
		}

		if err := a.CheckFile(ctx, path); err != nil {
			slog.Warn("failed to re-check file", "path", path, "error", err)
		}
	}

	findings := a.CurrentFindings()
	a.finishRun(findings)

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{files: findings})
	}
}

// finishRun updates gauges, writes the configured outputs and records
// the run in the history store.
func (a *App) finishRun(findings []report.FileProblems) {
	observability.CurrentProblems.Set(float64(report.Total(findings)))

	if a.Config.Output.SARIF != "" {
		root, err := os.Getwd()
		if err != nil {
			root = ""
		}
		data, err := report.GenerateSARIF(root, findings)
		if err != nil {
			slog.Error("failed to generate sarif", "error", err)
		} else if err := os.WriteFile(a.Config.Output.SARIF, data, 0o644); err != nil {
			slog.Error("failed to write sarif", "path", a.Config.Output.SARIF, "error", err)
		}
	}

	if a.history != nil {
		if err := a.history.RecordRun(history.Summarize(findings)); err != nil {
			slog.Error("failed to record run", "error", err)
		}
	}
}

func (a *App) Health(ctx context.Context) observability.HealthStatus {
	return observability.HealthStatus{Status: "up", Version: version.Version}
}

func (a *App) RunUI() error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	// Trigger initial UI update
	go func() {
		a.teaProgram.Send(updateMsg{files: a.CurrentFindings()})
	}()

	_, err := p.Run()
	return err
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	// Note: We don't close here, it should run forever
	return w.Watch(a.Config.Paths)
}

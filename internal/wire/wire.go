// Package wire provides dependency injection for express-ts-gen.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	cliadapter "github.com/gelo7212/express-ts-backend-generator/internal/adapters/cli"
	"github.com/gelo7212/express-ts-backend-generator/internal/adapters/filesystem"
	"github.com/gelo7212/express-ts-backend-generator/internal/adapters/sqlite"
	"github.com/gelo7212/express-ts-backend-generator/internal/app"
	"github.com/gelo7212/express-ts-backend-generator/internal/config"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/generation"
	"github.com/gelo7212/express-ts-backend-generator/internal/db"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
	"github.com/gelo7212/express-ts-backend-generator/internal/templates"
)

// Options are the global command line settings applied before services are built.
type Options struct {
	ProjectDir   string
	SettingsFile string
	Verbose      bool
}

var (
	opts              Options
	settings          *config.Settings
	logger            *log.Logger
	generationService primary.GenerationService
	historyService    primary.HistoryService // nil when history is disabled
	once              sync.Once
)

// Configure records the global options. It must be called before the first service
// is requested; later calls have no effect on already built services.
func Configure(o Options) {
	opts = o
}

// Settings returns the loaded tool settings.
func Settings() *config.Settings {
	once.Do(initServices)
	return settings
}

// Logger returns the shared logger.
func Logger() *log.Logger {
	once.Do(initServices)
	return logger
}

// GenerationService returns the singleton GenerationService instance.
func GenerationService() primary.GenerationService {
	once.Do(initServices)
	return generationService
}

// HistoryService returns the singleton HistoryService, or nil when history is disabled.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: config.AppName})
	log.SetDefault(logger)

	loaded, file, err := config.LoadSettings(context.Background(), config.LoadOptions{
		SettingsFile: opts.SettingsFile,
		ProjectDir:   opts.ProjectDir,
	})
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}
	settings = loaded

	level, err := log.ParseLevel(settings.Log.Level)
	if err != nil {
		level = log.WarnLevel
	}
	if opts.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	if file != "" {
		logger.Debug("settings loaded", "file", file)
	}

	files := filesystem.NewProjectFS(nil)

	source, err := templates.Source(files.Fs(), resolve(settings.Templates.Dir))
	if err != nil {
		logger.Fatal("failed to load templates", "err", err)
	}
	raw, err := templates.Generators()
	if err != nil {
		logger.Fatal("failed to load generator registry", "err", err)
	}
	configs, err := generation.ParseConfigs(raw)
	if err != nil {
		logger.Fatal("invalid generator registry", "err", err)
	}

	// A journal that cannot be opened disables history for this run.
	var runRepo secondary.GenerationRunRepository
	if settings.History.Enabled {
		if settings.History.Path != "" {
			db.SetPath(resolve(settings.History.Path))
		}
		database, err := db.GetDB()
		if err != nil {
			logger.Warn("generation history disabled", "err", err)
		} else {
			repo := sqlite.NewGenerationRunRepository(database)
			runRepo = repo
			historyService = app.NewHistoryService(repo)
		}
	}

	executor := app.NewEffectExecutor(files, runRepo, logger)
	generationService = app.NewGenerationService(configs, files, templates.NewRenderer(source), executor, logger)
}

// resolve expands ~ and makes relative paths relative to the project directory.
func resolve(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) && opts.ProjectDir != "" {
		path = filepath.Join(opts.ProjectDir, path)
	}
	return path
}

// GenerationAdapter returns a new GenerationAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func GenerationAdapter() *cliadapter.GenerationAdapter {
	return GenerationAdapterWithOutput(os.Stdout)
}

// GenerationAdapterWithOutput returns a new GenerationAdapter writing to the given output.
func GenerationAdapterWithOutput(out io.Writer) *cliadapter.GenerationAdapter {
	once.Do(initServices)
	return cliadapter.NewGenerationAdapter(generationService, out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout, or nil when history
// is disabled.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	once.Do(initServices)
	if historyService == nil {
		return nil
	}
	return cliadapter.NewHistoryAdapter(historyService, os.Stdout)
}

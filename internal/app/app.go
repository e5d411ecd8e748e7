package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyrig/chassis/internal/atom"
	"github.com/skyrig/chassis/internal/conf"
	"github.com/skyrig/chassis/internal/confhcl"
	"github.com/skyrig/chassis/internal/conftree"
	"github.com/skyrig/chassis/internal/container"
	"github.com/skyrig/chassis/internal/ctxlog"
)

// Container keys pre-populated during initialization.
const (
	KeyConfig = "config"      // *conf.ResolvedConfig
	KeyTree   = "config.tree" // *conftree.Section
	KeyLogger = "logger"      // *slog.Logger
)

// App is the application context. It is immutable once initialization
// completes, except for registrations on its container.
type App struct {
	appID       atom.Atom
	instanceID  string
	instanceTag string
	environment string
	startedAt   time.Time

	resolved  *conf.ResolvedConfig
	tree      *conftree.Section
	container *container.Container
	logger    *slog.Logger
}

// newApp assembles the configuration and builds a fully-populated App.
// It is driven by Init; nothing else constructs an App.
func newApp(ctx context.Context, outW io.Writer, cfg *Config) (*App, error) {
	instanceID := strings.ReplaceAll(uuid.NewString(), "-", "")
	a := &App{
		appID:       atom.MustEncode(cfg.AppID), // validated by NewConfig
		instanceID:  instanceID,
		instanceTag: instanceID[:8],
		environment: resolveEnvironment(cfg.Environment),
		startedAt:   time.Now().UTC(),
		container:   container.New(),
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW).With(
		"app", cfg.AppID,
		"instance", a.instanceTag,
		"env", a.environment,
	)
	a.logger = logger
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	scope := conf.NewScope(cfg.Vars)
	if cfg.AllowMissingVars {
		scope = scope.WithPolicy(conf.EmptyOnMissing)
	}

	assembler := conf.NewAssembler()
	resolved, err := assembler.AssembleFile(ctx, cfg.RootPath, cfg.Entry, scope)
	if err != nil {
		return nil, err
	}
	a.resolved = resolved
	logger.Debug("Configuration assembled.", "entry", cfg.Entry, "bytes", len(resolved.Text))

	tree, err := confhcl.Read(cfg.Entry, resolved.Text)
	if err != nil {
		return nil, err
	}
	a.tree = tree
	logger.Debug("Configuration tree built.",
		"sections", len(tree.Children()), "attributes", len(tree.Attrs()))

	a.container.RegisterInstance(KeyConfig, resolved)
	a.container.RegisterInstance(KeyTree, tree)
	a.container.RegisterInstance(KeyLogger, logger)
	logger.Debug("Container pre-populated.", "keys", a.container.Keys())

	return a, nil
}

// resolveEnvironment returns the explicit name when given, otherwise the
// CHASSIS_ENVIRONMENT process variable, otherwise "local". The result is
// always lowercase.
func resolveEnvironment(explicit string) string {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = os.Getenv(EnvironmentVar)
	}
	if name == "" {
		name = DefaultEnvironment
	}
	return strings.ToLower(name)
}

// AppID returns the short application identifier.
func (a *App) AppID() atom.Atom { return a.appID }

// InstanceID returns the unique identifier of this process run.
func (a *App) InstanceID() string { return a.instanceID }

// InstanceTag returns the shortened instance identifier used in logs.
func (a *App) InstanceTag() string { return a.instanceTag }

// Environment returns the environment name, always lowercase.
func (a *App) Environment() string { return a.environment }

// StartedAt returns the UTC time initialization began.
func (a *App) StartedAt() time.Time { return a.startedAt }

// Resolved returns the resolved configuration artifact.
func (a *App) Resolved() *conf.ResolvedConfig { return a.resolved }

// Tree returns the root of the structured configuration tree.
func (a *App) Tree() *conftree.Section { return a.tree }

// Container returns the application's dependency container.
func (a *App) Container() *container.Container { return a.container }

// Logger returns the application logger, pre-seeded with identity
// attributes for structured log records.
func (a *App) Logger() *slog.Logger { return a.logger }

// Close releases container-held resources. The context itself remains
// Ready; only container resolution is shut down.
func (a *App) Close() error {
	a.logger.Debug("Closing application container.")
	return a.container.Close()
}

// Package cli wires the retouch use cases and adapters for the CLI commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/application/usecase"
	"github.com/bnema/retouch/internal/cli/model"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/build"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/domain/repository"
	"github.com/bnema/retouch/internal/infrastructure/config"
	"github.com/bnema/retouch/internal/infrastructure/desktop"
	"github.com/bnema/retouch/internal/infrastructure/filesystem"
	"github.com/bnema/retouch/internal/infrastructure/localauth"
	"github.com/bnema/retouch/internal/infrastructure/persistence/file"
	"github.com/bnema/retouch/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/retouch/internal/infrastructure/portal"
	"github.com/bnema/retouch/internal/logging"
)

const busProbeTimeout = 3 * time.Second

// AppOptions selects how the app is wired for a command.
type AppOptions struct {
	// Interactive keeps log output off the terminal so it does not tear the
	// TUI.
	Interactive bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	ConfigMgr *config.Manager
	ConfigErr error
	Theme     *styles.Theme
	BuildInfo build.Info

	// Use cases
	Gate    *usecase.PermissionGateUseCase
	Prompts *usecase.ManagePromptsUseCase
	Submit  *usecase.SubmitPromptUseCase
	Attach  *usecase.AttachImageUseCase

	// Adapters the commands use directly
	Files    *filesystem.Adapter
	Desktop  port.DesktopIntegration
	Settings port.SettingsLauncher
	// Local is set when the local authorization backend is active.
	Local *localauth.Authorizer
	// PermissionsBackend is the backend actually in use: portal or local.
	PermissionsBackend config.PermissionsBackend

	localPresenter func(port.SystemPromptPresenter)
	transformer    *swappableTransformer
	db             *sqlite.LazyDB
	closers        []func() error

	// Context with logger
	ctx        context.Context
	cancel     context.CancelFunc
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts AppOptions) (*App, error) {
	mgr, cfg, cfgErr := loadConfig()
	theme := styles.NewTheme(cfg)

	logger, logCleanup, logErr := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(cfg.Logging.Level), Format: cfg.Logging.Format, TimeFormat: "15:04:05"},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			Dir:           cfg.Logging.LogDir,
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxBackups:    cfg.Logging.MaxBackups,
			MaxAgeDays:    cfg.Logging.MaxAgeDays,
			Compress:      cfg.Logging.Compress,
			WriteToStderr: !opts.Interactive,
		},
	)
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	if logErr != nil {
		logger.Warn().Err(logErr).Msg("file logging disabled")
	}
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("using default configuration")
	}

	a := &App{
		Config:     cfg,
		ConfigMgr:  mgr,
		ConfigErr:  cfgErr,
		Theme:      theme,
		ctx:        ctx,
		cancel:     cancel,
		logCleanup: logCleanup,
	}

	if err := a.wire(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context, cfg *config.Config) error {
	log := logging.FromContext(ctx)
	osFs := afero.NewOsFs()

	a.db = sqlite.NewLazyDB(cfg.Storage.DatabasePath)
	a.closers = append(a.closers, a.db.Close)

	docs, err := a.documentRepository(osFs, cfg)
	if err != nil {
		return err
	}

	launcher := desktop.NewSettingsLauncher()
	a.Settings = launcher

	authorizer, notifier, err := a.probeBus(ctx, cfg, osFs, launcher.Open)
	if err != nil {
		return err
	}

	a.Gate = usecase.NewPermissionGateUseCase(authorizer, nil)
	a.Prompts = usecase.NewManagePromptsUseCase(docs)

	home, _ := os.UserHomeDir()
	a.Files = filesystem.New(osFs, home)

	camera := desktop.NewCameraCapture(osFs, cfg.Camera.Device, cfg.Camera.FFmpegPath, cfg.Output.Dir)
	a.Attach = usecase.NewAttachImageUseCase(a.Gate, a.Files, camera)

	a.transformer = newSwappableTransformer(ctx, osFs, cfg)
	a.Submit = usecase.NewSubmitPromptUseCase(a.Prompts, a.Gate, a.transformer, notifier)

	if entry, entryErr := desktop.NewEntry(cfg.Permissions.AppID); entryErr == nil {
		a.Desktop = entry
	} else {
		log.Debug().Err(entryErr).Msg("desktop integration unavailable")
	}

	log.Debug().
		Str("storage", string(cfg.Storage.Backend)).
		Str("permissions", string(a.PermissionsBackend)).
		Bool("notifications", notifier != nil).
		Msg("app wired")
	return nil
}

func (a *App) documentRepository(fs afero.Fs, cfg *config.Config) (repository.DocumentRepository, error) {
	if cfg.Storage.Backend == config.StorageFile {
		store, err := file.NewDocumentStore(fs, cfg.Storage.DocumentsDir)
		if err != nil {
			return nil, fmt.Errorf("open document store: %w", err)
		}
		return store, nil
	}
	return sqlite.NewLazyDocumentRepository(a.db), nil
}

// probeBus connects the portal authorizer and notifier in parallel. The
// local backend is used when permissions.backend is local, or when it is
// auto and no portal answers.
func (a *App) probeBus(
	ctx context.Context,
	cfg *config.Config,
	fs afero.Fs,
	settings func(context.Context) error,
) (port.Authorizer, port.Notifier, error) {
	log := logging.FromContext(ctx)

	probeCtx, cancel := context.WithTimeout(logging.WithComponent(ctx, "portal"), busProbeTimeout)
	defer cancel()

	var (
		portalAuth *portal.Authorizer
		portalErr  error
		notifier   *portal.Notifier
	)

	g, gctx := errgroup.WithContext(probeCtx)
	if cfg.Permissions.Backend != config.PermissionsLocal {
		g.Go(func() error {
			portalAuth, portalErr = portal.NewAuthorizer(gctx, cfg.Permissions.AppID, fs, settings)
			return nil
		})
	}
	g.Go(func() error {
		n, err := portal.NewNotifier(gctx, "retouch")
		if err != nil {
			log.Debug().Err(err).Msg("notifications unavailable")
			return nil
		}
		notifier = n
		return nil
	})
	_ = g.Wait()

	var notify port.Notifier
	if notifier != nil {
		a.closers = append(a.closers, notifier.Close)
		notify = notifier
	}

	if portalAuth != nil {
		a.closers = append(a.closers, portalAuth.Close)
		a.PermissionsBackend = config.PermissionsPortal
		return portalAuth, notify, nil
	}

	if cfg.Permissions.Backend == config.PermissionsPortal {
		return nil, nil, fmt.Errorf("permissions.backend is portal: %w", portalErr)
	}
	if portalErr != nil {
		if !errors.Is(portalErr, entity.ErrCapabilityUnavailable) {
			log.Warn().Err(portalErr).Msg("portal probe failed")
		}
		log.Info().Msg("no desktop portal, using local permission store")
	}

	local := localauth.NewAuthorizer(sqlite.NewLazyPlatformPermissionRepository(a.db), nil)
	local.SetSettingsHandler(settings)
	a.Local = local
	a.localPresenter = local.SetPresenter
	a.PermissionsBackend = config.PermissionsLocal
	return local, notify, nil
}

// UsePresenter routes in-app and local system prompts to p.
func (a *App) UsePresenter(p interface {
	port.PermissionPromptPresenter
	port.SystemPromptPresenter
}) {
	a.Gate.SetPromptPresenter(p)
	if a.localPresenter != nil {
		a.localPresenter(p)
	}
}

// WatchConfig reloads the transformation client when the config file
// changes and reports the new theme to onTheme.
func (a *App) WatchConfig(onTheme func(*styles.Theme)) {
	if a.ConfigMgr == nil {
		return
	}
	log := logging.FromContext(a.ctx)

	a.ConfigMgr.OnConfigChange(func(cfg *config.Config) {
		log.Info().Msg("configuration reloaded")
		a.transformer.Reload(a.ctx, cfg)
		theme := styles.NewTheme(cfg)
		a.Theme = theme
		if onTheme != nil {
			onTheme(theme)
		}
	})
	if err := a.ConfigMgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("failed to watch config file")
	}
}

// ChatDeps returns the dependencies of the chat screen.
func (a *App) ChatDeps(initialImage string) model.ChatDeps {
	deps := model.ChatDeps{
		Gate:         a.Gate,
		Prompts:      a.Prompts,
		Submit:       a.Submit,
		Attach:       a.Attach,
		ResolvePath:  a.Files.Resolve,
		Backend:      string(a.PermissionsBackend),
		InitialImage: initialImage,
	}
	if a.Local != nil {
		deps.Local = a.Local
	}
	return deps
}

// Close releases all resources.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return errors.Join(errs...)
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations. On failure the
// defaults are returned with the error so the caller can report it.
func loadConfig() (*config.Manager, *config.Config, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, defaultConfig(), err
	}
	if err := mgr.Load(); err != nil {
		return nil, defaultConfig(), err
	}
	return mgr, mgr.Get(), nil
}

func defaultConfig() *config.Config {
	cfg := config.DefaultConfig()
	if db, err := config.GetDatabaseFile(); err == nil {
		cfg.Storage.DatabasePath = db
	}
	if dir, err := config.GetDocumentsDir(); err == nil {
		cfg.Storage.DocumentsDir = dir
	}
	if dir, err := config.GetOutputDir(); err == nil {
		cfg.Output.Dir = dir
	}
	return cfg
}

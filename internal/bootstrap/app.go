package bootstrap

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/deskapps/internal/config"
	"github.com/fastygo/deskapps/internal/console"
	"github.com/fastygo/deskapps/internal/infrastructure/journal"
	"github.com/fastygo/deskapps/internal/infrastructure/monitor"
	"github.com/fastygo/deskapps/internal/services"
	"github.com/fastygo/deskapps/internal/services/lifecycle"
	"github.com/fastygo/deskapps/pkg/logger"
	"github.com/fastygo/deskapps/usecase"
)

// App carries what every console program needs besides its repository.
type App struct {
	Name    string
	Config  *config.Config
	Logger  *zap.Logger
	Prompt  *console.Prompter
	Out     io.Writer
	Manager *lifecycle.Manager

	journal *services.JournalBridge
	store   *journal.Store
}

// New wires config, logging and the change journal for the named app. A
// journal that cannot be opened is logged and the app runs without history.
func New(name string, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   cfg.Logger.Output,
	})
	if err != nil {
		return nil, err
	}
	zapLogger = zapLogger.With(zap.String("app", name), zap.String("env", cfg.Environment))

	app := &App{
		Name:    name,
		Config:  cfg,
		Logger:  zapLogger,
		Prompt:  console.NewPrompter(in, out),
		Out:     out,
		Manager: lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger),
	}
	app.Manager.Register("logger", func(context.Context) error {
		_ = zapLogger.Sync()
		return nil
	})

	if cfg.Journal.Enabled {
		app.openJournal()
	}
	return app, nil
}

func (a *App) openJournal() {
	store, err := journal.Open(a.Config.Journal.Path, "changes")
	if err != nil {
		a.Logger.Warn("journal unavailable, history disabled", zap.String("path", a.Config.Journal.Path), zap.Error(err))
		return
	}
	a.Manager.Register("journal", func(context.Context) error {
		return store.Close()
	})
	a.store = store
	a.journal = services.NewJournalBridge(store, a.Logger)
	if _, err := a.journal.Prune(a.Config.Journal.Retention()); err != nil {
		a.Logger.Warn("journal prune failed", zap.Error(err))
	}
}

// Recorder returns the change recorder for repositories, or nil when the journal is off.
func (a *App) Recorder() usecase.ChangeRecorder {
	if a.journal == nil {
		return nil
	}
	return a.journal
}

// History returns the journal as a history source, or nil when the journal is off.
func (a *App) History() console.HistorySource {
	if a.journal == nil {
		return nil
	}
	return a.journal
}

// CheckStorage probes the app's data files and the journal and logs the result.
func (a *App) CheckStorage(paths ...string) monitor.Status {
	var sizer monitor.JournalSizer
	if a.store != nil {
		sizer = a.store
	}
	status := monitor.Check(paths, sizer)
	for _, f := range status.Files {
		if f.Err != "" {
			a.Logger.Warn("data file unreadable", zap.String("path", f.Path), zap.String("error", f.Err))
			continue
		}
		a.Logger.Debug("data file", zap.String("path", f.Path), zap.Bool("exists", f.Exists), zap.Int64("size", f.Size))
	}
	a.Logger.Info("storage checked",
		zap.Int("files", len(status.Files)),
		zap.Bool("journal", status.Journal),
		zap.Int("journal_entries", status.JournalSize))
	return status
}

// Run builds the menu and drives it until exit, end of input or a termination
// signal, then closes every registered resource.
func (a *App) Run(ctx context.Context, build func(ctx context.Context) (*console.Menu, error)) error {
	ctx, stop := a.Manager.Listen(ctx)
	defer stop()
	ctx = logger.ContextWithSessionID(ctx, uuid.NewString())
	log := logger.WithSessionID(ctx, a.Logger)

	runErr := func() error {
		menu, err := build(ctx)
		if err != nil {
			return err
		}
		log.Info("session started")
		defer log.Info("session ended")
		return menu.Run(ctx)
	}()

	if err := a.Manager.Close(ctx); err != nil {
		log.Error("close error", zap.Error(err))
	}
	return runErr
}

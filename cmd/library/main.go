package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/deskapps/internal/bootstrap"
	"github.com/fastygo/deskapps/internal/config"
	"github.com/fastygo/deskapps/internal/console"
	"github.com/fastygo/deskapps/repository/jsonfile"
	"github.com/fastygo/deskapps/usecase"
	"github.com/fastygo/deskapps/usecase/library"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := bootstrap.New(usecase.AppLibrary, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	err = app.Run(context.Background(), func(ctx context.Context) (*console.Menu, error) {
		app.CheckStorage(cfg.Library.Books, cfg.Library.Users)
		store := jsonfile.NewLibraryStore(cfg.Library.Books, cfg.Library.Users)
		l, err := library.New(ctx, store, app.Recorder(), app.Logger)
		if err != nil {
			return nil, err
		}
		return buildMenu(l, menuDeps{
			prompt:       app.Prompt,
			out:          app.Out,
			history:      app.History(),
			historyLimit: cfg.Journal.HistoryLimit,
			logger:       app.Logger,
		}), nil
	})
	if err != nil {
		app.Logger.Error("library exited with error", zap.Error(err))
		os.Exit(1)
	}
}

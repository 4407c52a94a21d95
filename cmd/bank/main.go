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
	"github.com/fastygo/deskapps/usecase/bank"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := bootstrap.New(usecase.AppBank, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	err = app.Run(context.Background(), func(ctx context.Context) (*console.Menu, error) {
		app.CheckStorage(cfg.Bank.Customers, cfg.Bank.Accounts)
		store := jsonfile.NewBankStore(cfg.Bank.Customers, cfg.Bank.Accounts)
		b, err := bank.New(ctx, store, app.Recorder(), app.Logger)
		if err != nil {
			return nil, err
		}
		return buildMenu(b, menuDeps{
			prompt:       app.Prompt,
			out:          app.Out,
			history:      app.History(),
			historyLimit: cfg.Journal.HistoryLimit,
			logger:       app.Logger,
		}), nil
	})
	if err != nil {
		app.Logger.Error("bank exited with error", zap.Error(err))
		os.Exit(1)
	}
}

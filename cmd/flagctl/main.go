package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fluttering/flagctl/internal/cli"
	"github.com/fluttering/flagctl/internal/config"
	"github.com/fluttering/flagctl/internal/db"
	"github.com/fluttering/flagctl/internal/repository"
	"github.com/fluttering/flagctl/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	uow := db.NewSQLiteUnitOfWork(database)
	sessionRepo := repository.NewSQLiteAuthSessionRepo(database)

	app := &cli.App{
		Workspace: service.NewWorkspaceService(uow, service.WorkspaceConfig{SeedPath: cfg.SeedPath}, observers...),
		Auth:      service.NewAuthService(sessionRepo, cfg.SessionTTL, time.Now, observers...),
		Now:       time.Now,
	}

	// Prompts and confirmations need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

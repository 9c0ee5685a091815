package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/coursenav/internal/cli"
	"github.com/alexanderramin/coursenav/internal/config"
	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/logging"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/alexanderramin/coursenav/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	linkRepo := repository.NewSQLiteLinkRepo(database)
	productRepo := repository.NewSQLiteProductRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database, db.WithBusyRetry(3, 25*time.Millisecond))

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	// Wire services
	navSvc := service.NewNavigationService(resourceRepo, linkRepo, productRepo, cfg.MaxDepth, logger.Named("navigation"), observers...)
	opts := navigation.AdjacencyOptions{SkipSolutions: cfg.SkipSolutions}

	app := &cli.App{
		Resources:  service.NewResourceService(resourceRepo, linkRepo, uow),
		Products:   service.NewProductService(productRepo, resourceRepo),
		Navigation: navSvc,
		Import:     service.NewImportService(uow, observers...),
		Progress:   service.NewProgressService(progressRepo, resourceRepo, navSvc, opts, observers...),

		UserID:        cfg.UserID,
		SkipSolutions: cfg.SkipSolutions,
	}

	// Forms and the browse player need a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

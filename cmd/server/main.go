package main

import (
	"fmt"
	"os"

	"github.com/board-game-reviews-api/internal/config"
	"github.com/board-game-reviews-api/internal/database"
	"github.com/board-game-reviews-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd serves the API when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "board-game-reviews-api",
	Short: "REST API for board game reviews, comments, users and categories",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (env vars still override it)")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, builds the logger and opens the migrated database
func bootstrap() (*config.Config, zerolog.Logger, *database.DB, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, log, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, log, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return cfg, log, db, nil
}

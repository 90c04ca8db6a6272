package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/faculdade-api/pkg/config"
	"github.com/noah-isme/faculdade-api/pkg/database"
	"github.com/noah-isme/faculdade-api/pkg/logger"
)

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.RunMigrations(db.DB, args[0], logr)
}

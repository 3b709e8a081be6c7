// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/gachapoint/gachapoint/internal/config"
	"github.com/gachapoint/gachapoint/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending registry migrations against the PostgreSQL database.`,
		RunE:  runMigrate,
	}
	cmd.Flags().Bool("down", false, "roll back all migrations (drops the gacha table)")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").Wrap(err)
	}
	defer func() { _ = migrator.Close() }()

	down, _ := cmd.Flags().GetBool("down")
	if down {
		cmd.Println("Rolling back migrations...")
		if err := migrator.Down(); err != nil {
			return oops.Code("MIGRATION_FAILED").Wrap(err)
		}
		cmd.Println("Rollback completed")
		return nil
	}

	cmd.Println("Running migrations...")
	if err := migrator.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	cmd.Println("Migrations completed successfully")
	return nil
}

// resolveDatabaseURL reads the database URL from the config file or, when
// absent, the DATABASE_URL environment variable.
func resolveDatabaseURL() (string, error) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return "", oops.Code("CONFIG_INVALID").Wrap(err)
	}
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return "", oops.Code("CONFIG_INVALID").Errorf("database URL is required (config file or DATABASE_URL)")
	}
	return databaseURL, nil
}

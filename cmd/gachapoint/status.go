// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/gachapoint/gachapoint/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the registry schema version",
		Long:  `Show the current migration version and dirty state of the registry database.`,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").Wrap(err)
	}
	defer func() { _ = migrator.Close() }()

	version, dirty, err := migrator.Version()
	if err != nil {
		return oops.Code("MIGRATION_VERSION_FAILED").Wrap(err)
	}

	if version == 0 {
		cmd.Println("No migrations applied")
		return nil
	}
	cmd.Printf("Schema version: %d (dirty: %t)\n", version, dirty)
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/gachapoint/gachapoint/internal/config"
)

// NewInitConfigCmd creates the init-config subcommand.
func NewInitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config <path>",
		Short: "Write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(args[0]); err != nil {
				return err
			}
			cmd.Println("Wrote default configuration to " + args[0])
			return nil
		},
	}
	return cmd
}

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the GachaPoint CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gachapoint",
		Short: "GachaPoint - location-keyed randomized reward dispensers",
		Long: `GachaPoint manages draw-points in a multiplayer world: marker signs
registered against a persistent registry, reward containers bound to them,
and priced random draws when players interact with a marker.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewInitConfigCmd())

	return cmd
}

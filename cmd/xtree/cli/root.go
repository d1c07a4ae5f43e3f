package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// New returns the xtree root command with its subcommands.
func New() *cobra.Command {
	cfg := &Config{}
	rootCmd := &cobra.Command{
		Use:           "xtree",
		Short:         "Binary tree toolbox",
		Long:          `xtree builds minimum height binary trees and drives a self balancing AVL map from the command line.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.initializeConfig(cmd); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	cfg.addConfigurationFlags(rootCmd)

	rootCmd.AddCommand(newBuildCmd(cfg))
	rootCmd.AddCommand(newAVLCmd(cfg))
	return rootCmd
}

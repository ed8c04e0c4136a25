package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "content-normalizer",
		Short:         "Batch tools that audit and canonicalize stored assessment answers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewAuditCmd(&configPath))
	cmd.AddCommand(NewFixCmd(&configPath))
	cmd.AddCommand(NewNormalizeCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	envPath    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "sonar",
		Short:         "Political pluralism monitoring for Caledonian radio and TV",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// a missing .env is fine, keys may come from the environment or config
			if _, err := os.Stat(flags.envPath); err == nil {
				if err := godotenv.Load(flags.envPath); err != nil {
					return fmt.Errorf("load %s: %w", flags.envPath, err)
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&flags.envPath, "env", ".env", "dotenv file with GEMINI_API_KEY(S)")

	root.AddCommand(
		newServeCmd(flags),
		newCollectCmd(flags),
		newStatusCmd(flags),
		newResetCmd(flags),
		newExtractCmd(flags),
		newExportCmd(flags),
		newMCPCmd(flags),
	)
	return root
}

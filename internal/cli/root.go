// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eodatahub/hazcube/internal/config"
	"github.com/eodatahub/hazcube/internal/indicators"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Resolved at startup
	cfg      *config.Config
	registry *indicators.Registry
	log      = logrus.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hazcube",
	Short: "Data cube and STAC metadata tooling for OS-Climate hazard indicators",
	Long: `Hazcube restructures OS-Climate hazard indicator Zarr stores into
multidimensional yearly data cubes and derives STAC Collection and Item
metadata from them.

The source stores keep one array per temperature threshold, model,
scenario, and year; cubify merges them into one cube per year with
temperature, gcm, scenario, and time axes alongside the native spatial
axes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log.SetFormatter(&logrus.TextFormatter{})
		level := logrus.InfoLevel
		if cfg.LogLevel != "" {
			level, err = logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log_level %q in config", cfg.LogLevel)
			}
		}
		if verbose {
			level = logrus.DebugLevel
		}
		log.SetLevel(level)

		registry = indicators.Builtin()
		for _, path := range cfg.RegistryFiles {
			if err := registry.LoadFile(path); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: $XDG_CONFIG_HOME/hazcube/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

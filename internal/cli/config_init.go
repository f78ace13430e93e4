package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/wattfocus/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates $WATTFOCUS_HOME/config.yaml (default ~/.wattfocus/config.yaml)
with the built-in defaults.`,
		Example: `  # Create configuration
  wattfocus config init

  # Create configuration, overwriting existing
  wattfocus config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Defaults()
			path, err := configFilePath()
			if err != nil {
				return err
			}
			cfg.SetConfigPath(path)

			if !force {
				if _, statErr := os.Stat(path); statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/wattfocus/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file and environment overrides for syntax and
semantic correctness: output format, log format, catalog timeout, cache TTL
bounds and the simulation profile.`,
		Example: `  # Validate current configuration
  wattfocus config validate

  # Validate and show detailed information
  wattfocus config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := fileConfig()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Locale: %s (%s)\n", cfg.Output.Locale, cfg.Output.Currency)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)

	switch {
	case cfg.Catalog.Path != "":
		cmd.Printf("  Catalog: %s\n", cfg.Catalog.Path)
	case cfg.Catalog.URL != "":
		cmd.Printf("  Catalog: %s (timeout %ds)\n", cfg.Catalog.URL, cfg.Catalog.TimeoutSeconds)
	default:
		cmd.Printf("  Catalog: not configured\n")
	}

	if cfg.Cache.Enabled {
		dir, _ := cfg.CacheDir()
		cmd.Printf("  Cache: %s (ttl %ds, max %d MB)\n", dir, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
	} else {
		cmd.Printf("  Cache: disabled\n")
	}
	cmd.Printf("  Simulation: %g kWh/month, %g off-peak\n", cfg.Simulation.MonthlyKwh, cfg.Simulation.OffPeakShare)
}

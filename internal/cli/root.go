// Package cli wires the wattfocus cobra commands.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/wattfocus/internal/cache"
	"github.com/rshade/wattfocus/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Global flag names.
const (
	flagDebug      = "debug"
	flagCatalog    = "catalog"
	flagCatalogURL = "catalog-url"
	flagLocale     = "locale"
	flagCacheTTL   = "cache-ttl"
)

// NewRootCmd creates the root command for the wattfocus CLI. It sets up
// logging before any subcommand runs and registers the offer and config
// command groups.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "wattfocus",
		Short:   "Compare electricity tariff offers",
		Long:    "wattfocus: Render electricity offer prices and compare them side by side",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt(flagCacheTTL)
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}
			if cacheTTL > 0 {
				if err := cache.ValidateTTL(cacheTTL); err != nil {
					return err
				}
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagCatalog, "", "catalog file (YAML or JSON), overrides catalog.path")
	cmd.PersistentFlags().String(flagCatalogURL, "", "catalog REST base URL, overrides catalog.url")
	cmd.PersistentFlags().String(flagLocale, "", "display locale, e.g. fr-FR (overrides output.locale)")
	cmd.PersistentFlags().
		Int(flagCacheTTL, 0, "catalog cache TTL in seconds (0 = use config default, overrides config file and env var)")
	cmd.AddCommand(newOfferCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Show an offer's prices
  wattfocus offer show edf-tempo --catalog offers.yaml

  # Compare it with another offer on a red day at 18:00
  wattfocus offer show edf-tempo --compare engie-hchp --day-color red --at 18:00

  # List comparison candidates by provider
  wattfocus offer groups edf-tempo --output json

  # Browse and compare interactively, reloading when the file changes
  wattfocus offer browse edf-tempo --catalog offers.yaml --watch

  # Initialize configuration
  wattfocus config init

  # Set configuration values
  wattfocus config set output.default_format json`

// newOfferCmd creates the offer command group.
func newOfferCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "offer", Short: "Offer pricing commands"}
	cmd.AddCommand(NewOfferShowCmd(), NewOfferGroupsCmd(), NewOfferBrowseCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

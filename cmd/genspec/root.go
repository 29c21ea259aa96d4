package main

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	format   string
	logLevel string

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "genspec",
	Short: "Build and serve OpenAPI 3.0.3 documents",
	Long: `genspec assembles OpenAPI 3.0.3 documents with a fluent builder,
validates every entity and writes the result as YAML or JSON.

Examples:
  genspec demo
  genspec demo --format json --check
  genspec serve --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("genspec failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, _ []string) error {
	err := validation.Errors{
		"format":    validation.Validate(format, validation.In("yaml", "json")),
		"log-level": validation.Validate(logLevel, validation.In("trace", "debug", "info", "warn", "error", "disabled")),
	}.Filter()
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger = logger.Level(level).Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	return nil
}

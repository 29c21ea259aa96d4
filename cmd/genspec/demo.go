package main

import (
	"github.com/spf13/cobra"
)

var demoCheck bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print the sample Discovery App document",
	Long: `Build the sample Discovery App document and print it to stdout.

With --check the document is also loaded and validated by kin-openapi.

Examples:
  genspec demo
  genspec demo --format json`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoCheck, "check", false, "validate the document with kin-openapi")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	b := discovery()
	if demoCheck {
		if _, err := b.Spec(cmd.Context()); err != nil {
			return err
		}
		logger.Debug().Msg("document conforms to OpenAPI 3.0.3")
	}

	encode := b.YAML
	if format == "json" {
		encode = b.JSON
	}
	out, err := encode()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is the optional YAML config path; CONFIG_FILE is used when empty
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pdfextract",
	Short: "Extract and correct invoice fields from PDF documents",
	Long: `pdfextract reads the text layer of the first pages of an invoice PDF,
extracts the SAP, contract, amount and discount fields, and serves an HTTP API
for correcting the extraction by selecting tokens of the source text.

Example Usage:
  pdfextract serve --config ./config.yaml
  pdfextract extract --file factura.pdf --format values`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML configuration file")
}

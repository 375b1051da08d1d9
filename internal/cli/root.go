package cli

import (
	"github.com/spf13/cobra"

	"github.com/local/pdftools/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "pdftools",
	Short:         "Split PDFs into page-balanced parts and reduce PDF file size",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the given configuration. Errors bubble up to
// main for single-line reporting and a non-zero exit.
func Execute(c config.Config) error {
	cfg = c
	return rootCmd.Execute()
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/local/pdftools/internal/fetch"
	"github.com/local/pdftools/internal/pdfcheck"
	"github.com/local/pdftools/internal/split"
)

var (
	splitParts     int
	splitOutputDir string
	splitPrefix    string
	splitOverwrite bool
	splitVerify    bool
)

var splitCmd = &cobra.Command{
	Use:   "split <input.pdf>",
	Short: "Split a PDF into N page-balanced parts",
	Long: `Pages are distributed as evenly as possible across parts, preserving
original page order. Outputs are named '<name>_part_<i>of<N>.pdf'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSplit(cmd.Context(), args[0])
	},
}

func init() {
	splitCmd.Flags().IntVarP(&splitParts, "parts", "n", 0, "Number of parts to split into (>=1)")
	splitCmd.Flags().StringVarP(&splitOutputDir, "output-dir", "o", "", "Directory to place output PDFs")
	splitCmd.Flags().StringVar(&splitPrefix, "output-prefix", "", "Prefix (base name) for output files")
	splitCmd.Flags().BoolVar(&splitOverwrite, "overwrite", false, "Overwrite existing output files if present")
	splitCmd.Flags().BoolVar(&splitVerify, "verify", false, "Re-open each written part to verify it")
	_ = splitCmd.MarkFlagRequired("parts")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(ctx context.Context, input string) error {
	local, cleanup, err := resolveInput(ctx, input)
	defer cleanup()
	if err != nil {
		return err
	}
	if err := ensurePDF(local); err != nil {
		return err
	}

	outDir := splitOutputDir
	prefix := splitPrefix
	if fetch.IsRemote(input) {
		if outDir == "" {
			// the temp download dir is no place for results
			outDir = "."
		}
		if prefix == "" {
			// name parts after the remote ref, not the temp download
			prefix = remoteStem(input)
		}
	}

	written, err := split.Split(local, split.Options{
		Parts:        splitParts,
		OutputDir:    outDir,
		OutputPrefix: prefix,
		Overwrite:    splitOverwrite,
	})
	if err != nil {
		return err
	}

	if splitVerify {
		for _, p := range written {
			if err := pdfcheck.VerifyFile(p, 0); err != nil {
				return err
			}
		}
	}

	fmt.Println("Created:")
	for _, p := range written {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/local/pdftools/internal/errs"
	"github.com/local/pdftools/internal/fetch"
	"github.com/local/pdftools/internal/ghostscript"
	"github.com/local/pdftools/internal/pagesel"
	"github.com/local/pdftools/internal/pdfcheck"
	"github.com/local/pdftools/internal/reduce"
)

var (
	reducePercent   int
	reduceMethod    string
	reducePages     string
	reduceGSDPI     int
	reduceGSJPEGQ   int
	reduceGSPreset  string
	reduceRecompJPG bool
	reduceVerify    bool
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <input.pdf> <output.pdf>",
	Short: "Reduce PDF file size by a given percent",
	Long: `Methods:
  auto        - choose Ghostscript if available and percent is high enough
  ghostscript - force Ghostscript (whole file)
  native      - in-process per-image recompression

Pages format: '1,3,5-8' (1-indexed). If omitted, compresses all pages.
Selective pages always use the native method.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReduce(cmd.Context(), args[0], args[1])
	},
}

func init() {
	reduceCmd.Flags().IntVarP(&reducePercent, "percent", "p", 0, "Reduction percent (0-100)")
	reduceCmd.Flags().StringVarP(&reduceMethod, "method", "m", "auto", "Compression method: auto|ghostscript|native")
	reduceCmd.Flags().StringVar(&reducePages, "pages", "", "Pages to compress, e.g. '3,5,7-10'")
	reduceCmd.Flags().IntVar(&reduceGSDPI, "gs-dpi", 0, "Override Ghostscript target DPI (e.g. 150)")
	reduceCmd.Flags().IntVar(&reduceGSJPEGQ, "gs-jpegq", 0, "Override Ghostscript JPEG quality 1-95")
	reduceCmd.Flags().StringVar(&reduceGSPreset, "gs-preset", "", "Override Ghostscript preset: /screen|/ebook|/printer|/prepress")
	reduceCmd.Flags().BoolVar(&reduceRecompJPG, "recompress-jpeg", false, "Also recompress images already encoded as JPEG")
	reduceCmd.Flags().BoolVar(&reduceVerify, "verify", false, "Re-open the output and check the page count")
	_ = reduceCmd.MarkFlagRequired("percent")
	rootCmd.AddCommand(reduceCmd)
}

func runReduce(ctx context.Context, input, output string) error {
	method, err := parseMethod(reduceMethod)
	if err != nil {
		return err
	}
	pages, err := pagesel.Parse(reducePages)
	if err != nil {
		return err
	}
	if reduceGSPreset != "" {
		switch reduceGSPreset {
		case "/screen", "/ebook", "/printer", "/prepress":
		default:
			return errs.InvalidArgumentf("unknown preset %q", reduceGSPreset)
		}
	}

	local, cleanup, err := resolveInput(ctx, input)
	defer cleanup()
	if err != nil {
		return err
	}
	if err := ensurePDF(local); err != nil {
		return err
	}

	// s3:// outputs are built locally and uploaded once complete.
	outputLocal := output
	uploadRef := ""
	if strings.HasPrefix(output, "s3://") {
		uploadRef = output
		outputLocal = filepath.Join(os.TempDir(), fmt.Sprintf("pdfreduce-%s.pdf", uuid.New().String()))
		defer os.Remove(outputLocal)
	}

	reducer := reduce.New(ghostscript.New(cfg.Ghostscript.Binary), cfg.Reducer.AutoGSMinPercent)
	report, err := reducer.Reduce(reduce.Request{
		InputPath:  local,
		OutputPath: outputLocal,
		Percent:    reducePercent,
		Method:     method,
		Pages:      pages,
		GS: ghostscript.Overrides{
			DPI:         reduceGSDPI,
			JPEGQuality: reduceGSJPEGQ,
			Preset:      reduceGSPreset,
		},
		RecompressJPEG: reduceRecompJPG,
	})
	if err != nil {
		return err
	}

	if reduceVerify {
		wantPages, err := api.PageCountFile(local)
		if err != nil {
			return err
		}
		if err := pdfcheck.VerifyFile(outputLocal, wantPages); err != nil {
			return err
		}
	}

	if uploadRef != "" {
		if err := fetch.Store(ctx, outputLocal, uploadRef); err != nil {
			return err
		}
	}

	fmt.Printf("Original size: %.2f KB (%.2f MB)\n",
		float64(report.OriginalSize)/1024, float64(report.OriginalSize)/(1024*1024))
	fmt.Printf("New size:      %.2f KB (%.2f MB)\n",
		float64(report.NewSize)/1024, float64(report.NewSize)/(1024*1024))
	fmt.Printf("Actual reduction: %.2f%%\n", report.ReductionPct)
	if report.Strategy == "native" {
		fmt.Printf("Native: compressed pages=%d, kept original pages=%d\n",
			report.PagesCompressed, report.PagesKept)
	} else {
		fmt.Printf("Strategy: %s\n", report.Strategy)
	}
	return nil
}

func parseMethod(s string) (reduce.Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return reduce.MethodAuto, nil
	case "ghostscript", "gs":
		return reduce.MethodGhostscript, nil
	case "native":
		return reduce.MethodNative, nil
	default:
		return "", errs.InvalidArgumentf("unknown method %q (want auto, ghostscript or native)", s)
	}
}

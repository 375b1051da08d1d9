package reduce

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/local/pdftools/internal/errs"
	"github.com/local/pdftools/internal/ghostscript"
	"github.com/local/pdftools/internal/pagesel"
)

// Method names a size-reduction strategy.
type Method string

const (
	// MethodAuto picks Ghostscript when available and the requested
	// reduction is aggressive enough, otherwise the native strategy.
	MethodAuto Method = "auto"
	// MethodGhostscript requests whole-file external compression.
	MethodGhostscript Method = "ghostscript"
	// MethodNative requests in-process per-image recompression.
	MethodNative Method = "native"
)

// Compressor is the external whole-file compression capability. Availability
// is probed before use so strategy selection stays testable with fakes.
type Compressor interface {
	IsAvailable() bool
	Compress(job ghostscript.Job) ghostscript.Result
}

// Request describes one size-reduction operation.
type Request struct {
	InputPath  string
	OutputPath string
	Percent    int
	Method     Method
	// Pages restricts recompression to the given 1-based pages.
	// A selection always forces the native strategy since the external
	// tool cannot target individual pages.
	Pages          pagesel.Set
	GS             ghostscript.Overrides
	RecompressJPEG bool
}

// Report summarizes a completed reduction.
type Report struct {
	Strategy        string
	OriginalSize    int64
	NewSize         int64
	ReductionPct    float64
	PagesCompressed int
	PagesKept       int
}

// Reducer chooses and executes exactly one reduction strategy per request.
type Reducer struct {
	GS               Compressor
	AutoGSMinPercent int
}

// New builds a Reducer around the given external compressor capability.
func New(gs Compressor, autoGSMinPercent int) *Reducer {
	if autoGSMinPercent <= 0 {
		autoGSMinPercent = 35
	}
	return &Reducer{GS: gs, AutoGSMinPercent: autoGSMinPercent}
}

// Reduce validates the request, picks a strategy per the decision policy and
// runs it, returning a before/after size report.
func (r *Reducer) Reduce(req Request) (*Report, error) {
	if req.Percent < 0 || req.Percent > 100 {
		return nil, errs.InvalidArgumentf("reduction percent must be between 0 and 100, got %d", req.Percent)
	}
	switch req.Method {
	case MethodAuto, MethodGhostscript, MethodNative, "":
	default:
		return nil, errs.InvalidArgumentf("unknown method %q", req.Method)
	}

	fi, err := os.Stat(req.InputPath)
	if err != nil {
		return nil, &errs.NotFoundError{Path: req.InputPath}
	}
	originalSize := fi.Size()

	useGS := false
	switch {
	case len(req.Pages) > 0:
		// Selective pages requested -> native strategy regardless of method.
		log.Info().Ints("pages", req.Pages.Sorted()).Msg("selective pages requested, using native strategy")
	case req.Method == MethodGhostscript:
		useGS = r.GS.IsAvailable()
		if !useGS {
			log.Warn().Msg("ghostscript not found, falling back to native strategy")
		}
	case req.Method == MethodAuto || req.Method == "":
		useGS = r.GS.IsAvailable() && req.Percent >= r.AutoGSMinPercent
		log.Info().Bool("ghostscript", useGS).Msg("auto method strategy selection")
	}

	report := &Report{Strategy: "native"}

	if useGS {
		res := r.GS.Compress(ghostscript.Job{
			InputPath:        req.InputPath,
			OutputPath:       req.OutputPath,
			ReductionPercent: req.Percent,
			Overrides:        req.GS,
		})
		if res.Success {
			report.Strategy = "ghostscript"
		} else {
			log.Warn().Str("error", res.Error).Msg("ghostscript failed, falling back to native strategy")
		}
	}

	if report.Strategy != "ghostscript" {
		stats, err := CompressImages(req.InputPath, req.OutputPath, req.Percent, req.Pages, req.RecompressJPEG)
		if err != nil {
			return nil, err
		}
		report.PagesCompressed = stats.PagesCompressed
		report.PagesKept = stats.PagesKept
	}

	out, err := os.Stat(req.OutputPath)
	if err != nil {
		return nil, &errs.NotFoundError{Path: req.OutputPath}
	}
	report.OriginalSize = originalSize
	report.NewSize = out.Size()
	if originalSize > 0 {
		report.ReductionPct = float64(originalSize-report.NewSize) / float64(originalSize) * 100
	}

	log.Info().
		Str("strategy", report.Strategy).
		Int64("original_size", report.OriginalSize).
		Int64("new_size", report.NewSize).
		Float64("reduction_pct", report.ReductionPct).
		Msg("reduction complete")

	return report, nil
}

package ghostscript

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Preset is a named Ghostscript -dPDFSETTINGS quality tier.
type Preset string

const (
	PresetPrepress Preset = "/prepress"
	PresetPrinter  Preset = "/printer"
	PresetEbook    Preset = "/ebook"
	PresetScreen   Preset = "/screen"
)

// Settings bundles the tuning derived from a requested reduction percent.
type Settings struct {
	Preset      Preset
	DPI         int
	Description string
}

// SettingsFor maps a desired reduction percent to a preset and target DPI.
func SettingsFor(reductionPercent int) Settings {
	switch {
	case reductionPercent <= 20:
		return Settings{Preset: PresetPrepress, DPI: 300, Description: "High quality (prepress)"}
	case reductionPercent <= 40:
		return Settings{Preset: PresetPrinter, DPI: 300, Description: "Good quality (printer)"}
	case reductionPercent <= 60:
		return Settings{Preset: PresetEbook, DPI: 150, Description: "Medium quality (ebook)"}
	default:
		return Settings{Preset: PresetScreen, DPI: 72, Description: "Lower quality (screen)"}
	}
}

// Overrides carry explicit tuning that wins over the derived Settings.
type Overrides struct {
	DPI         int    // target DPI for downsampling, 0 = derived
	JPEGQuality int    // 1-95 for DCTEncode, 0 = Ghostscript default
	Preset      string // e.g. "/ebook", "" = derived
}

// Job represents a whole-document compression job
type Job struct {
	InputPath        string
	OutputPath       string
	ReductionPercent int
	Overrides        Overrides
}

// Result represents the result of a compression run
type Result struct {
	Success  bool
	Preset   Preset
	DPI      int
	Error    string
	Duration time.Duration
}

// Ghostscript wraps the gs binary as an optional whole-file compressor.
type Ghostscript struct {
	binary string
}

// New creates a Ghostscript wrapper around the given binary name.
func New(binary string) *Ghostscript {
	if binary == "" {
		binary = "gs"
	}
	return &Ghostscript{binary: binary}
}

// IsAvailable reports whether the gs binary is present in PATH.
func (g *Ghostscript) IsAvailable() bool {
	_, err := exec.LookPath(g.binary)
	return err == nil
}

// Version probes the installed Ghostscript version, for diagnostics only.
func (g *Ghostscript) Version() (string, error) {
	out, err := exec.Command(g.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("ghostscript not found in PATH: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Compress runs Ghostscript over the whole input file. The run blocks until
// the tool exits; output is written to a temp path and renamed into place so
// a failed run never leaves a truncated file behind.
func (g *Ghostscript) Compress(job Job) Result {
	startTime := time.Now()

	if !g.IsAvailable() {
		return Result{Success: false, Error: "ghostscript binary not in PATH", Duration: time.Since(startTime)}
	}

	settings := SettingsFor(job.ReductionPercent)
	preset := settings.Preset
	if job.Overrides.Preset != "" {
		preset = Preset(job.Overrides.Preset)
	}
	dpi := settings.DPI
	if job.Overrides.DPI > 0 {
		dpi = job.Overrides.DPI
	}

	tmpOut := filepath.Join(filepath.Dir(job.OutputPath),
		fmt.Sprintf(".gs_%s.pdf", uuid.New().String()))

	args := buildArgs(preset, dpi, job.Overrides.JPEGQuality, tmpOut, job.InputPath)

	log.Debug().Str("cmd", g.binary+" "+strings.Join(args, " ")).Msg("ghostscript command")

	cmd := exec.Command(g.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpOut)
		return Result{
			Success:  false,
			Preset:   preset,
			DPI:      dpi,
			Error:    fmt.Sprintf("ghostscript failed: %v: %s", err, strings.TrimSpace(string(output))),
			Duration: time.Since(startTime),
		}
	}

	if fi, statErr := os.Stat(tmpOut); statErr != nil || fi.Size() == 0 {
		os.Remove(tmpOut)
		return Result{
			Success:  false,
			Preset:   preset,
			DPI:      dpi,
			Error:    "ghostscript produced no output",
			Duration: time.Since(startTime),
		}
	}

	if err := os.Rename(tmpOut, job.OutputPath); err != nil {
		os.Remove(tmpOut)
		return Result{
			Success:  false,
			Preset:   preset,
			DPI:      dpi,
			Error:    fmt.Sprintf("failed to move output into place: %v", err),
			Duration: time.Since(startTime),
		}
	}

	log.Info().
		Str("preset", string(preset)).
		Int("dpi", dpi).
		Dur("duration", time.Since(startTime)).
		Msg("ghostscript compression successful")

	return Result{Success: true, Preset: preset, DPI: dpi, Duration: time.Since(startTime)}
}

// buildArgs assembles the gs invocation: font subsetting, bicubic
// downsampling of color/gray/mono images to the target DPI, and forced JPEG
// re-encoding of color/gray streams with auto filter selection disabled.
func buildArgs(preset Preset, dpi, jpegQuality int, outputPath, inputPath string) []string {
	args := []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		fmt.Sprintf("-dPDFSETTINGS=%s", preset),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		fmt.Sprintf("-r%d", dpi),
		// Fonts
		"-dCompressFonts=true",
		"-dSubsetFonts=true",
		// Image downsampling + filters
		"-dDownsampleColorImages=true",
		"-dDownsampleGrayImages=true",
		"-dDownsampleMonoImages=true",
		"-dColorImageDownsampleType=/Bicubic",
		"-dGrayImageDownsampleType=/Bicubic",
		"-dMonoImageDownsampleType=/Bicubic",
		fmt.Sprintf("-dColorImageResolution=%d", dpi),
		fmt.Sprintf("-dGrayImageResolution=%d", dpi),
		fmt.Sprintf("-dMonoImageResolution=%d", dpi),
		// Force JPEG encoding for color/gray images; tune quality
		"-dAutoFilterColorImages=false",
		"-dAutoFilterGrayImages=false",
		"-dEncodeColorImages=true",
		"-dEncodeGrayImages=true",
		"-sColorImageFilter=/DCTEncode",
		"-sGrayImageFilter=/DCTEncode",
	}

	if jpegQuality > 0 {
		jq := jpegQuality
		if jq < 1 {
			jq = 1
		}
		if jq > 95 {
			jq = 95
		}
		args = append(args, fmt.Sprintf("-dJPEGQ=%d", jq))
	}

	args = append(args, fmt.Sprintf("-sOutputFile=%s", outputPath), inputPath)
	return args
}

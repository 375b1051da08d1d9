package ghostscript

import (
	"strings"
	"testing"
)

func TestSettingsForPresetTiers(t *testing.T) {
	cases := []struct {
		percent int
		preset  Preset
		dpi     int
	}{
		{0, PresetPrepress, 300},
		{20, PresetPrepress, 300},
		{21, PresetPrinter, 300},
		{40, PresetPrinter, 300},
		{41, PresetEbook, 150},
		{60, PresetEbook, 150},
		{61, PresetScreen, 72},
		{100, PresetScreen, 72},
	}
	for _, c := range cases {
		s := SettingsFor(c.percent)
		if s.Preset != c.preset {
			t.Errorf("SettingsFor(%d): expected preset %s, got %s", c.percent, c.preset, s.Preset)
		}
		if s.DPI != c.dpi {
			t.Errorf("SettingsFor(%d): expected dpi %d, got %d", c.percent, c.dpi, s.DPI)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	args := buildArgs(PresetEbook, 150, 0, "out.pdf", "in.pdf")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-sDEVICE=pdfwrite",
		"-dPDFSETTINGS=/ebook",
		"-r150",
		"-dSubsetFonts=true",
		"-dColorImageDownsampleType=/Bicubic",
		"-dColorImageResolution=150",
		"-dAutoFilterColorImages=false",
		"-sColorImageFilter=/DCTEncode",
		"-sOutputFile=out.pdf",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected args to contain %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "-dJPEGQ") {
		t.Errorf("JPEGQ should be absent when quality is 0:\n%s", joined)
	}
	if args[len(args)-1] != "in.pdf" {
		t.Errorf("Input path must be the last argument, got %q", args[len(args)-1])
	}
}

func TestBuildArgsJPEGQualityClamped(t *testing.T) {
	args := buildArgs(PresetScreen, 72, 200, "out.pdf", "in.pdf")
	if !contains(args, "-dJPEGQ=95") {
		t.Errorf("Expected JPEGQ clamped to 95, got %v", args)
	}
	args = buildArgs(PresetScreen, 72, 42, "out.pdf", "in.pdf")
	if !contains(args, "-dJPEGQ=42") {
		t.Errorf("Expected JPEGQ=42, got %v", args)
	}
}

func TestNewDefaultsBinary(t *testing.T) {
	g := New("")
	if g.binary != "gs" {
		t.Errorf("Expected default binary gs, got %q", g.binary)
	}
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

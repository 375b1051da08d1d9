package cli

import (
	"testing"

	"github.com/local/pdftools/internal/errs"
	"github.com/local/pdftools/internal/reduce"
)

func TestParseMethod(t *testing.T) {
	cases := map[string]reduce.Method{
		"":            reduce.MethodAuto,
		"auto":        reduce.MethodAuto,
		"Auto":        reduce.MethodAuto,
		"ghostscript": reduce.MethodGhostscript,
		"gs":          reduce.MethodGhostscript,
		"native":      reduce.MethodNative,
		" native ":    reduce.MethodNative,
	}
	for in, want := range cases {
		got, err := parseMethod(in)
		if err != nil {
			t.Errorf("parseMethod(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseMethod(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := parseMethod("pypdf2"); !errs.IsInvalidArgument(err) {
		t.Errorf("Expected InvalidArgument for unknown method, got %v", err)
	}
}

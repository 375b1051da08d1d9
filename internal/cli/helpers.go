package cli

import (
	"context"
	"path"
	"strings"

	"github.com/local/pdftools/internal/errs"
	"github.com/local/pdftools/internal/fetch"
	"github.com/local/pdftools/internal/filetype"
)

// resolveInput fetches remote input refs (s3://, http(s)://) to a temp file
// and passes local paths through. Cleanup is never nil.
func resolveInput(ctx context.Context, ref string) (string, func(), error) {
	r := &fetch.Resolver{HTTPTimeout: cfg.Fetch.HTTPTimeout}
	return r.Resolve(ctx, ref)
}

// remoteStem derives an output base name from a remote ref's last path
// element, with any #fragment, ?query and extension stripped.
func remoteStem(ref string) string {
	if i := strings.Index(ref, "#"); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.Index(ref, "?"); i >= 0 {
		ref = ref[:i]
	}
	name := path.Base(ref)
	return strings.TrimSuffix(name, path.Ext(name))
}

// ensurePDF rejects inputs whose magic bytes say they are not a PDF.
func ensurePDF(path string) error {
	ok, mime, err := filetype.New().IsPDF(path)
	if err != nil {
		return err
	}
	if !ok {
		return errs.InvalidArgumentf("input is not a PDF (detected %s)", mime)
	}
	return nil
}

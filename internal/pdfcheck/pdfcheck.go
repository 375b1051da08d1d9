package pdfcheck

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Doc abstracts an opened PDF document.
type Doc interface {
	NumPage() int
	Close() error
}

// Opener abstracts opening a PDF path into a Doc. The default is a go-fitz
// based implementation; tests swap in fakes.
type Opener interface {
	Open(path string) (Doc, error)
}

// defaultOpener is provided in doc_open_fitz.go using go-fitz.
var defaultOpener Opener

// setDefaultOpener allows swapping the default opener, useful for tests or alternate backends.
func setDefaultOpener(o Opener) { defaultOpener = o }

// VerifyFile checks that path opens as a PDF through an independent reader
// and, when wantPages > 0, that it holds exactly that many pages.
func VerifyFile(path string, wantPages int) error {
	return verifyFile(defaultOpener, path, wantPages)
}

func verifyFile(opener Opener, path string, wantPages int) error {
	if opener == nil {
		return errors.New("no PDF opener configured")
	}
	d, err := opener.Open(path)
	if err != nil {
		return fmt.Errorf("output failed to open as PDF: %w", err)
	}
	defer d.Close()

	got := d.NumPage()
	if got <= 0 {
		return fmt.Errorf("output %s has no pages", path)
	}
	if wantPages > 0 && got != wantPages {
		return fmt.Errorf("output %s has %d pages, expected %d", path, got, wantPages)
	}
	log.Debug().Str("file", path).Int("pages", got).Msg("output verified")
	return nil
}

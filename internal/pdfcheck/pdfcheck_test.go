package pdfcheck

import (
	"errors"
	"strings"
	"testing"
)

type fakeDoc struct{ pages int }

func (d fakeDoc) NumPage() int { return d.pages }
func (d fakeDoc) Close() error { return nil }

type fakeOpener struct {
	pages int
	err   error
}

func (o fakeOpener) Open(path string) (Doc, error) {
	if o.err != nil {
		return nil, o.err
	}
	return fakeDoc{pages: o.pages}, nil
}

func TestVerifyFileMatchingPageCount(t *testing.T) {
	if err := verifyFile(fakeOpener{pages: 5}, "out.pdf", 5); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	// wantPages <= 0 skips the count check
	if err := verifyFile(fakeOpener{pages: 5}, "out.pdf", 0); err != nil {
		t.Errorf("Expected success without count check, got %v", err)
	}
}

func TestVerifyFilePageCountMismatch(t *testing.T) {
	err := verifyFile(fakeOpener{pages: 4}, "out.pdf", 5)
	if err == nil {
		t.Fatal("Expected error for page count mismatch")
	}
	if !strings.Contains(err.Error(), "4 pages, expected 5") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestVerifyFileOpenFailure(t *testing.T) {
	err := verifyFile(fakeOpener{err: errors.New("corrupt header")}, "out.pdf", 1)
	if err == nil {
		t.Fatal("Expected error for unopenable output")
	}

	if err := verifyFile(fakeOpener{pages: 0}, "out.pdf", 0); err == nil {
		t.Fatal("Expected error for zero-page output")
	}
}

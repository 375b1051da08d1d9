package testpdf

import (
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestWriteMinimalIsReadable(t *testing.T) {
	for _, pages := range []int{1, 3, 7} {
		path := filepath.Join(t.TempDir(), "fixture.pdf")
		if err := WriteMinimal(path, pages); err != nil {
			t.Fatalf("WriteMinimal(%d) failed: %v", pages, err)
		}
		n, err := api.PageCountFile(path)
		if err != nil {
			t.Fatalf("PageCountFile failed for %d pages: %v", pages, err)
		}
		if n != pages {
			t.Errorf("Expected %d pages, got %d", pages, n)
		}
	}
}

func TestWriteMinimalRejectsZeroPages(t *testing.T) {
	if err := WriteMinimal(filepath.Join(t.TempDir(), "x.pdf"), 0); err == nil {
		t.Error("Expected error for zero pages")
	}
}

func TestWriteWithImagesIsReadable(t *testing.T) {
	for _, kind := range []ImageKind{ImageFlateNoise, ImageFlateUniform, ImageJPEG} {
		path := filepath.Join(t.TempDir(), "fixture.pdf")
		if err := WriteWithImages(path, 2, kind); err != nil {
			t.Fatalf("WriteWithImages(kind %d) failed: %v", kind, err)
		}
		n, err := api.PageCountFile(path)
		if err != nil {
			t.Fatalf("PageCountFile failed for kind %d: %v", kind, err)
		}
		if n != 2 {
			t.Errorf("Expected 2 pages, got %d", n)
		}
	}
}

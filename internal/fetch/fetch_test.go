package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/local/pdftools/internal/errs"
)

func TestIsRemote(t *testing.T) {
	cases := map[string]bool{
		"s3://bucket/key.pdf":         true,
		"http://host/doc.pdf":         true,
		"https://host/doc.pdf":        true,
		"file:///tmp/doc.pdf":         false,
		"/tmp/doc.pdf":                false,
		"relative/doc.pdf":            false,
		"s3like/but/not/a/scheme.pdf": false,
	}
	for ref, want := range cases {
		if got := IsRemote(ref); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestResolveLocalPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := &Resolver{}
	got, cleanup, err := r.Resolve(context.Background(), path)
	defer cleanup()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != path {
		t.Errorf("Expected %q, got %q", path, got)
	}

	// file:// prefix and #fragment are stripped
	got, cleanup, err = r.Resolve(context.Background(), "file://"+path+"#page=3")
	defer cleanup()
	if err != nil {
		t.Fatalf("Resolve file:// failed: %v", err)
	}
	if got != path {
		t.Errorf("Expected %q, got %q", path, got)
	}
}

func TestResolveMissingLocalPath(t *testing.T) {
	r := &Resolver{}
	_, cleanup, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	defer cleanup()
	if !errs.IsNotFound(err) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestSplitS3URL(t *testing.T) {
	bucket, key, err := splitS3URL("s3://my-bucket/some/key.pdf")
	if err != nil {
		t.Fatalf("splitS3URL failed: %v", err)
	}
	if bucket != "my-bucket" || key != "some/key.pdf" {
		t.Errorf("Got bucket=%q key=%q", bucket, key)
	}

	for _, bad := range []string{"s3://", "s3://bucketonly", "s3://bucket/"} {
		if _, _, err := splitS3URL(bad); !errs.IsInvalidArgument(err) {
			t.Errorf("splitS3URL(%q): expected InvalidArgument, got %v", bad, err)
		}
	}
}

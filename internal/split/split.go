package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/local/pdftools/internal/errs"
	"github.com/local/pdftools/internal/partition"
)

// Options controls how a document is split into parts.
type Options struct {
	Parts        int
	OutputDir    string // defaults to the input file's directory
	OutputPrefix string // defaults to the input file's stem
	Overwrite    bool
}

// Split divides the PDF at inputPath into page-balanced parts and writes
// each part as `{prefix}_part_{i}of{N}.pdf`. Returns the written paths in
// part order. All target paths are checked for collisions before anything
// is written, so a failed run never leaves a partial set behind.
func Split(inputPath string, opts Options) ([]string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, &errs.NotFoundError{Path: inputPath}
	}

	total, err := api.PageCountFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("pdf page count failed: %w", err)
	}
	if total == 0 {
		return nil, errs.InvalidArgumentf("input PDF has no pages")
	}

	ranges, err := partition.Chunks(total, opts.Parts)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	base := opts.OutputPrefix
	if base == "" {
		base = stem(inputPath)
	}

	paths := make([]string, len(ranges))
	for i := range ranges {
		paths[i] = filepath.Join(outDir, fmt.Sprintf("%s_part_%dof%d.pdf", base, i+1, len(ranges)))
		if !opts.Overwrite {
			if _, err := os.Stat(paths[i]); err == nil {
				return nil, &errs.AlreadyExistsError{Path: paths[i]}
			}
		}
	}

	written := make([]string, 0, len(ranges))
	for i, r := range ranges {
		sel := []string{fmt.Sprintf("%d-%d", r.Start+1, r.End+1)}
		if err := api.TrimFile(inputPath, paths[i], sel, nil); err != nil {
			return written, fmt.Errorf("failed to write part %d: %w", i+1, err)
		}
		log.Info().
			Str("file", paths[i]).
			Int("pages", r.Size()).
			Int("part", i+1).
			Int("parts", len(ranges)).
			Msg("wrote part")
		written = append(written, paths[i])
	}
	return written, nil
}

// stem returns the file name without directory or extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

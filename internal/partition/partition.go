package partition

import (
	"github.com/local/pdftools/internal/errs"
)

// PageRange is a contiguous run of pages, 0-based inclusive indices.
type PageRange struct {
	Start int
	End   int
}

// Size returns the number of pages covered by the range.
func (r PageRange) Size() int { return r.End - r.Start + 1 }

// Chunks divides totalPages into parts contiguous ranges of near-equal size.
// The effective part count is min(parts, totalPages) so no empty ranges are
// ever produced. When totalPages is not divisible, the first remainder ranges
// carry one extra page. Original page order is preserved.
func Chunks(totalPages, parts int) ([]PageRange, error) {
	if parts <= 0 {
		return nil, errs.InvalidArgumentf("parts must be >= 1, got %d", parts)
	}
	if totalPages <= 0 {
		return nil, errs.InvalidArgumentf("document must have at least one page, got %d", totalPages)
	}

	effective := parts
	if totalPages < effective {
		effective = totalPages
	}
	base := totalPages / effective
	rem := totalPages % effective

	ranges := make([]PageRange, 0, effective)
	start := 0
	for i := 0; i < effective; i++ {
		size := base
		if i < rem {
			size++
		}
		end := start + size - 1
		ranges = append(ranges, PageRange{Start: start, End: end})
		start = end + 1
	}
	return ranges, nil
}

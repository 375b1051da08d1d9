package pagesel

import (
	"sort"
	"strconv"
	"strings"

	"github.com/local/pdftools/internal/errs"
)

// Set is a selection of 1-based page numbers. A nil Set means "all pages".
type Set map[int]struct{}

// Contains reports whether page is part of the selection.
// A nil Set selects every page.
func (s Set) Contains(page int) bool {
	if s == nil {
		return true
	}
	_, ok := s[page]
	return ok
}

// Empty reports whether the selection holds no pages.
func (s Set) Empty() bool { return len(s) == 0 }

// Sorted returns the selected page numbers in ascending order.
func (s Set) Sorted() []int {
	pages := make([]int, 0, len(s))
	for p := range s {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Parse turns an expression like "1,3,5-8" into a Set of 1-based page numbers.
// Segments are comma separated, blank segments are skipped, and "a-b" expands
// to every page in the inclusive interval. Returns nil for a blank expression.
func Parse(expr string) (Set, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	set := Set{}
	for _, seg := range strings.Split(expr, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if strings.Contains(seg, "-") {
			bounds := strings.SplitN(seg, "-", 2)
			start, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err1 != nil || err2 != nil {
				return nil, errs.InvalidArgumentf("invalid page range: %q", seg)
			}
			if start <= 0 || end <= 0 || end < start {
				return nil, errs.InvalidArgumentf("invalid page range bounds: %q", seg)
			}
			for p := start; p <= end; p++ {
				set[p] = struct{}{}
			}
			continue
		}
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, errs.InvalidArgumentf("invalid page number: %q", seg)
		}
		if n <= 0 {
			return nil, errs.InvalidArgumentf("invalid page number (must be >= 1): %q", seg)
		}
		set[n] = struct{}{}
	}
	if len(set) == 0 {
		return nil, nil
	}
	return set, nil
}

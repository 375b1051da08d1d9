package partition

import (
	"testing"

	"github.com/local/pdftools/internal/errs"
)

func TestChunksDistribution(t *testing.T) {
	// 10 pages into 3 parts -> 4,3,3
	ranges, err := Chunks(10, 3)
	if err != nil {
		t.Fatalf("Chunks(10, 3) failed: %v", err)
	}
	sizes := rangeSizes(ranges)
	want := []int{4, 3, 3}
	if !equalInts(sizes, want) {
		t.Errorf("Expected sizes %v, got %v", want, sizes)
	}

	// more parts than pages -> one page per part, no empties
	ranges, err = Chunks(5, 10)
	if err != nil {
		t.Fatalf("Chunks(5, 10) failed: %v", err)
	}
	if len(ranges) != 5 {
		t.Fatalf("Expected 5 ranges, got %d", len(ranges))
	}
	for i, r := range ranges {
		if r.Size() != 1 {
			t.Errorf("Range %d: expected size 1, got %d", i, r.Size())
		}
	}
}

func TestChunksProperties(t *testing.T) {
	cases := []struct{ total, parts int }{
		{1, 1}, {2, 1}, {7, 3}, {9, 2}, {10, 3}, {5, 10}, {100, 7}, {13, 13},
	}
	for _, c := range cases {
		ranges, err := Chunks(c.total, c.parts)
		if err != nil {
			t.Fatalf("Chunks(%d, %d) failed: %v", c.total, c.parts, err)
		}

		wantParts := c.parts
		if c.total < wantParts {
			wantParts = c.total
		}
		if len(ranges) != wantParts {
			t.Errorf("Chunks(%d, %d): expected %d ranges, got %d", c.total, c.parts, wantParts, len(ranges))
		}

		sum := 0
		minSize, maxSize := c.total, 0
		next := 0
		for _, r := range ranges {
			if r.Start != next {
				t.Errorf("Chunks(%d, %d): range starts at %d, expected %d", c.total, c.parts, r.Start, next)
			}
			if r.Size() < 1 {
				t.Errorf("Chunks(%d, %d): empty range %+v", c.total, c.parts, r)
			}
			sum += r.Size()
			if r.Size() < minSize {
				minSize = r.Size()
			}
			if r.Size() > maxSize {
				maxSize = r.Size()
			}
			next = r.End + 1
		}
		if sum != c.total {
			t.Errorf("Chunks(%d, %d): sizes sum to %d", c.total, c.parts, sum)
		}
		if maxSize-minSize > 1 {
			t.Errorf("Chunks(%d, %d): sizes differ by more than 1 (min %d, max %d)", c.total, c.parts, minSize, maxSize)
		}
	}
}

func TestChunksInvalidArguments(t *testing.T) {
	if _, err := Chunks(10, 0); !errs.IsInvalidArgument(err) {
		t.Errorf("Chunks(10, 0): expected InvalidArgument, got %v", err)
	}
	if _, err := Chunks(10, -1); !errs.IsInvalidArgument(err) {
		t.Errorf("Chunks(10, -1): expected InvalidArgument, got %v", err)
	}
	if _, err := Chunks(0, 3); !errs.IsInvalidArgument(err) {
		t.Errorf("Chunks(0, 3): expected InvalidArgument, got %v", err)
	}
}

func rangeSizes(ranges []PageRange) []int {
	sizes := make([]int, len(ranges))
	for i, r := range ranges {
		sizes[i] = r.Size()
	}
	return sizes
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

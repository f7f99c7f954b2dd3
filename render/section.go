package render

import "math/bits"

// Section is a contiguous range of columns computed independently.
type Section struct {
	Index  int
	Offset int
	Width  int
}

// SectionCount returns the largest power of two not exceeding parallelism,
// reduced further so that no section of a width-wide image is empty.
func SectionCount(parallelism, width int) int {
	n := max(parallelism, 1)
	if width > 0 {
		n = min(n, width)
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// Sections splits width columns into n sections of width/n columns each.
// The last section absorbs the width%n remainder so that the sections tile
// the image exactly.
func Sections(width, n int) []Section {
	if n < 1 {
		n = 1
	}
	sw := width / n
	sections := make([]Section, n)
	for i := range sections {
		sections[i] = Section{Index: i, Offset: i * sw, Width: sw}
	}
	sections[n-1].Width += width % n
	return sections
}

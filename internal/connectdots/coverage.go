package connectdots

import (
	"sort"
	"unicode/utf8"

	"dotsync/internal/textutil"
)

// Coverage reports which single characters of the collection appear on at
// least one generated record.
type Coverage struct {
	Total   int
	Covered map[string]struct{}
	ByType  map[string]map[string]struct{}

	all map[string]struct{}
}

// CalculateCoverage walks the pre-split records and marks every
// single-character left item as covered. allChars is the normalized set of
// characters the collection holds.
func CalculateCoverage(recordsByType map[string][]*Record, allChars map[string]struct{}) *Coverage {
	coverage := &Coverage{
		Total:   len(allChars),
		Covered: make(map[string]struct{}),
		ByType:  make(map[string]map[string]struct{}),
		all:     allChars,
	}

	for genType, records := range recordsByType {
		byType := coverage.ByType[genType]
		if byType == nil {
			byType = make(map[string]struct{})
			coverage.ByType[genType] = byType
		}
		for _, record := range records {
			for _, item := range record.Left {
				if utf8.RuneCountInString(item) != 1 {
					continue
				}
				normalized := textutil.NormalizeCJK(item)
				coverage.Covered[normalized] = struct{}{}
				byType[normalized] = struct{}{}
			}
		}
	}
	return coverage
}

// Percentage returns the covered share of the collection.
func (c *Coverage) Percentage() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(len(c.Covered)) / float64(c.Total) * 100
}

// Uncovered returns the sorted characters no generator touches.
func (c *Coverage) Uncovered() []string {
	var out []string
	for char := range c.all {
		if _, ok := c.Covered[char]; !ok {
			out = append(out, char)
		}
	}
	sort.Strings(out)
	return out
}

// UncoveredSet returns the uncovered characters as a set.
func (c *Coverage) UncoveredSet() map[string]struct{} {
	out := make(map[string]struct{})
	for char := range c.all {
		if _, ok := c.Covered[char]; !ok {
			out[char] = struct{}{}
		}
	}
	return out
}

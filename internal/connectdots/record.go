package connectdots

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation marks records whose pair lists are malformed.
var ErrValidation = errors.New("invalid record")

// Anki splits fields on ASCII commas when rendering some card templates, so
// commas inside items are swapped for a fullwidth comma plus variation
// selector-1. The selector keeps round-tripped text distinguishable from a
// genuine fullwidth comma typed by hand.
const escapedComma = "\uFF0C\uFE00"

// Record is one desired ConnectDots note: a key naming the association and
// parallel left/right lists where index i of Left pairs with index i of
// Right. Pairs are kept in insertion order; serialization sorts them.
type Record struct {
	Key   string
	Left  []string
	Right []string
}

// NewRecord builds a record, rejecting mismatched pair lists.
func NewRecord(key string, left, right []string) (*Record, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrValidation)
	}
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: %q has %d left items but %d right items",
			ErrValidation, key, len(left), len(right))
	}
	return &Record{Key: key, Left: left, Right: right}, nil
}

// Len returns the number of pairs.
func (r *Record) Len() int {
	return len(r.Left)
}

type pair struct {
	left  string
	right string
}

// sortedPairs returns the pairs ordered by left value. The sort is stable so
// duplicate left values keep their generator order.
func (r *Record) sortedPairs() []pair {
	pairs := make([]pair, len(r.Left))
	for i := range r.Left {
		pairs[i] = pair{left: r.Left[i], right: r.Right[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].left < pairs[j].left
	})
	return pairs
}

// LeftString renders the left items sorted, comma-escaped, and joined for
// storage in a note field.
func (r *Record) LeftString() string {
	pairs := r.sortedPairs()
	items := make([]string, len(pairs))
	for i, p := range pairs {
		items[i] = escapeComma(p.left)
	}
	return strings.Join(items, ", ")
}

// RightString renders the right items in the order imposed by their left
// partners, comma-escaped and joined.
func (r *Record) RightString() string {
	pairs := r.sortedPairs()
	items := make([]string, len(pairs))
	for i, p := range pairs {
		items[i] = escapeComma(p.right)
	}
	return strings.Join(items, ", ")
}

func escapeComma(s string) string {
	return strings.ReplaceAll(s, ",", escapedComma)
}

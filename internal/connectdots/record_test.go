package connectdots

import (
	"errors"
	"testing"
)

func TestNewRecordRejectsMismatchedPairs(t *testing.T) {
	_, err := NewRecord("syllable:shi", []string{"是", "事"}, []string{"shì"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	_, err = NewRecord("", []string{"是"}, []string{"shì"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("empty key err = %v, want ErrValidation", err)
	}
}

func TestNewRecordAcceptsEmptyPairLists(t *testing.T) {
	r, err := NewRecord("syllable:shi", nil, nil)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d", r.Len())
	}
	if r.LeftString() != "" || r.RightString() != "" {
		t.Errorf("strings = %q / %q", r.LeftString(), r.RightString())
	}
}

func TestStringsSortPairsByLeft(t *testing.T) {
	r, err := NewRecord("component:也",
		[]string{"池", "地", "他"},
		[]string{"chí", "dì", "tā"})
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	if got, want := r.LeftString(), "他, 地, 池"; got != want {
		t.Errorf("LeftString = %q, want %q", got, want)
	}
	// Rights must follow their left partners, not sort independently.
	if got, want := r.RightString(), "tā, dì, chí"; got != want {
		t.Errorf("RightString = %q, want %q", got, want)
	}
}

func TestStringsSortIsStableForDuplicateLefts(t *testing.T) {
	r, err := NewRecord("syllable:shi",
		[]string{"是", "是", "事"},
		[]string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	if got, want := r.RightString(), "third, first, second"; got != want {
		t.Errorf("RightString = %q, want %q", got, want)
	}
}

func TestStringsEscapeASCIIComma(t *testing.T) {
	r, err := NewRecord("tag:prop::punctuation",
		[]string{"A,B"},
		[]string{"one, two"})
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	if got, want := r.LeftString(), "A\uFF0C\uFE00B"; got != want {
		t.Errorf("LeftString = %q, want %q", got, want)
	}
	if got, want := r.RightString(), "one\uFF0C\uFE00 two"; got != want {
		t.Errorf("RightString = %q, want %q", got, want)
	}
}

func TestStringsDoNotMutateRecord(t *testing.T) {
	r, err := NewRecord("syllable:ma", []string{"罵", "媽"}, []string{"mà", "mā"})
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	r.LeftString()
	if r.Left[0] != "罵" || r.Right[0] != "mà" {
		t.Errorf("record mutated: %v / %v", r.Left, r.Right)
	}
}

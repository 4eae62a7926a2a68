package dataset

import (
	"context"
	"errors"
	"testing"

	"dotsync/internal/ankiconnect"
)

var meaningFields = []string{"Meaning 2", "Meaning", "English"}

type fakeSource struct {
	queries map[string][]int64
	notes   map[int64]ankiconnect.Note
	failAt  string
}

func (s *fakeSource) FindNotes(_ context.Context, query string) ([]int64, error) {
	if s.failAt == query {
		return nil, errors.New("query failed")
	}
	return s.queries[query], nil
}

func (s *fakeSource) NotesInfo(_ context.Context, ids []int64) ([]ankiconnect.Note, error) {
	notes := make([]ankiconnect.Note, 0, len(ids))
	for _, id := range ids {
		notes = append(notes, s.notes[id])
	}
	return notes, nil
}

func hanziNote(id int64, traditional, pinyin, component string, tags ...string) ankiconnect.Note {
	return ankiconnect.Note{
		ID: id,
		Fields: map[string]string{
			"Traditional":               traditional,
			"Pinyin":                    pinyin,
			"Meaning":                   "meaning of " + traditional,
			"Sound component character": component,
		},
		Tags: tags,
	}
}

func tocflNote(id int64, traditional string) ankiconnect.Note {
	return ankiconnect.Note{
		ID: id,
		Fields: map[string]string{
			"Traditional": traditional,
			"Meaning":     "meaning of " + traditional,
		},
	}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		queries: map[string][]int64{
			"note:Hanzi -is:suspended": {1, 2, 3, 4, 5},
			"note:TOCFL -is:suspended": {101, 102, 103},
		},
		notes: map[int64]ankiconnect.Note{
			1: hanziNote(1, "媽", "mā", "馬", "prop::woman"),
			2: hanziNote(2, "馬", "mǎ", "", "prop::horse"),
			3: hanziNote(3, "罵", "mà", "馬", "prop::mouth"),
			4: hanziNote(4, "嗎", "ma", "馬", "prop::mouth"),
			5: hanziNote(5, "好", "hǎo", "", "prop::woman"),
			101: tocflNote(101, "媽媽"),
			102: tocflNote(102, "你好"),
			103: tocflNote(103, "嗎啡"),
		},
	}
}

func loadStore(t *testing.T) *Store {
	t.Helper()
	store, err := Load(context.Background(), newFakeSource(), meaningFields, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func TestLoadBuildsIndexes(t *testing.T) {
	store := loadStore(t)

	stats := store.Stats()
	if stats.HanziNotes != 5 || stats.TOCFLNotes != 3 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TwoCharTOCFL != 3 {
		t.Errorf("two-char TOCFL = %d", stats.TwoCharTOCFL)
	}

	if note := store.ByTraditional("馬"); note == nil || note.ID != 2 {
		t.Errorf("ByTraditional(馬) = %+v", note)
	}
	if store.ByTraditional("沒") != nil {
		t.Error("missing character should be nil")
	}
	if got := len(store.ByComponent("馬")); got != 3 {
		t.Errorf("ByComponent(馬) = %d notes", got)
	}
	if got := len(store.ByTag("prop::mouth")); got != 2 {
		t.Errorf("ByTag(prop::mouth) = %d notes", got)
	}
}

func TestBySyllableIgnoresTones(t *testing.T) {
	store := loadStore(t)

	notes := store.BySyllable("ma")
	if len(notes) != 4 {
		t.Fatalf("BySyllable(ma) = %d notes", len(notes))
	}
	// Toned input finds the same group.
	if got := len(store.BySyllable("mǎ")); got != 4 {
		t.Errorf("BySyllable(mǎ) = %d notes", got)
	}
}

func TestMeaningFieldFallback(t *testing.T) {
	source := newFakeSource()
	note := source.notes[5]
	note.Fields["Meaning 2"] = "refined meaning"
	source.notes[5] = note

	store, err := Load(context.Background(), source, meaningFields, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := store.ByTraditional("好").Meaning; got != "refined meaning" {
		t.Errorf("Meaning = %q", got)
	}
	if got := store.ByTraditional("馬").Meaning; got != "meaning of 馬" {
		t.Errorf("fallback Meaning = %q", got)
	}
}

func TestLoadFailsWhenQueryFails(t *testing.T) {
	source := newFakeSource()
	source.failAt = "note:TOCFL -is:suspended"
	if _, err := Load(context.Background(), source, meaningFields, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestTwoCharTOCFLByCharacter(t *testing.T) {
	store := loadStore(t)

	phrases := store.TwoCharTOCFLByCharacter("媽")
	if len(phrases) != 1 || phrases[0].Traditional != "媽媽" {
		t.Fatalf("phrases = %+v", phrases)
	}
	if got := len(store.TwoCharTOCFLByCharacter("嗎")); got != 1 {
		t.Errorf("嗎 phrases = %d", got)
	}
}

func TestAllTraditionalChars(t *testing.T) {
	store := loadStore(t)

	chars := store.AllTraditionalChars()
	if len(chars) != 5 {
		t.Fatalf("chars = %v", chars)
	}
	if _, ok := chars["好"]; !ok {
		t.Error("好 missing")
	}
}

func TestSoundComponentFrequencies(t *testing.T) {
	store := loadStore(t)

	freq := store.SoundComponentFrequencies()
	if freq.Counts["馬"] != 3 {
		t.Errorf("count = %d", freq.Counts["馬"])
	}
	if freq.Total != 3 {
		t.Errorf("total = %d", freq.Total)
	}
	if got := len(freq.Examples["馬"]); got != 3 {
		t.Errorf("examples = %d", got)
	}

	above := freq.AboveThreshold(3)
	if len(above) != 1 || above[0] != "馬" {
		t.Errorf("above = %v", above)
	}
	if got := freq.AboveThreshold(4); len(got) != 0 {
		t.Errorf("above(4) = %v", got)
	}
}

func TestSyllableFrequencies(t *testing.T) {
	store := loadStore(t)

	freq := store.SyllableFrequencies()
	if freq.Counts["ma"] != 4 {
		t.Errorf("ma count = %d", freq.Counts["ma"])
	}
	if freq.Counts["hao"] != 1 {
		t.Errorf("hao count = %d", freq.Counts["hao"])
	}
	if freq.Total != 5 {
		t.Errorf("total = %d", freq.Total)
	}
}

func TestPhraseCharacterFrequencies(t *testing.T) {
	store := loadStore(t)

	freq := store.PhraseCharacterFrequencies()
	if freq.Counts["媽"] != 2 {
		t.Errorf("媽 count = %d", freq.Counts["媽"])
	}
	if freq.Counts["好"] != 1 {
		t.Errorf("好 count = %d", freq.Counts["好"])
	}
	if freq.Total != 3 {
		t.Errorf("total = %d", freq.Total)
	}
}

func TestAboveThresholdOrdersByCountThenItem(t *testing.T) {
	freq := newFrequency()
	for i := 0; i < 3; i++ {
		freq.add("b", "")
		freq.add("a", "")
	}
	freq.add("c", "")

	got := freq.AboveThreshold(1)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUncoveredTagCounts(t *testing.T) {
	store := loadStore(t)

	uncovered := map[string]struct{}{"罵": {}, "嗎": {}, "好": {}}
	counts := store.UncoveredTagCounts(uncovered)
	if len(counts) != 2 {
		t.Fatalf("counts = %+v", counts)
	}
	if counts[0].Tag != "prop::mouth" || counts[0].Uncovered != 2 || counts[0].Total != 2 {
		t.Errorf("first = %+v", counts[0])
	}
	if counts[1].Tag != "prop::woman" || counts[1].Uncovered != 1 || counts[1].Total != 2 {
		t.Errorf("second = %+v", counts[1])
	}
}

package connectdots

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dotsync/internal/ankiconnect"
)

type fakeNoteStore struct {
	notes      map[int64]map[string]string
	nextID     int64
	loadFails  bool
	addFailsOn string

	added       []string
	updated     []int64
	dueDateSets []string
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[int64]map[string]string), nextID: 1000}
}

func (s *fakeNoteStore) seed(key, left, right string) int64 {
	s.nextID++
	s.notes[s.nextID] = map[string]string{"Key": key, "Left": left, "Right": right}
	return s.nextID
}

func (s *fakeNoteStore) FindNotes(_ context.Context, query string) ([]int64, error) {
	if s.loadFails {
		return nil, errors.New("collection unavailable")
	}
	ids := make([]int64, 0, len(s.notes))
	for id := range s.notes {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *fakeNoteStore) NotesInfo(_ context.Context, ids []int64) ([]ankiconnect.Note, error) {
	notes := make([]ankiconnect.Note, 0, len(ids))
	for _, id := range ids {
		fields := make(map[string]string, len(s.notes[id]))
		for k, v := range s.notes[id] {
			fields[k] = v
		}
		notes = append(notes, ankiconnect.Note{ID: id, Fields: fields})
	}
	return notes, nil
}

func (s *fakeNoteStore) AddNote(_ context.Context, deck, model string, fields map[string]string, tags []string) (int64, error) {
	if fields["Key"] == s.addFailsOn {
		return 0, errors.New("add rejected")
	}
	if deck == "" || model == "" {
		return 0, errors.New("missing deck or model")
	}
	s.nextID++
	s.notes[s.nextID] = fields
	s.added = append(s.added, fields["Key"])
	return s.nextID, nil
}

func (s *fakeNoteStore) UpdateNoteFields(_ context.Context, id int64, fields map[string]string) error {
	if _, ok := s.notes[id]; !ok {
		return fmt.Errorf("note %d not found", id)
	}
	s.notes[id] = fields
	s.updated = append(s.updated, id)
	return nil
}

func (s *fakeNoteStore) CardsForNote(_ context.Context, id int64) ([]int64, error) {
	return []int64{id*10 + 1, id*10 + 2}, nil
}

func (s *fakeNoteStore) SetDueDate(_ context.Context, cards []int64, days string) error {
	s.dueDateSets = append(s.dueDateSets, days)
	return nil
}

type staticGenerator struct {
	typ     string
	records []*Record
	err     error
}

func (g *staticGenerator) Type() string { return g.typ }

func (g *staticGenerator) Generate(context.Context) ([]*Record, error) {
	return g.records, g.err
}

func record(t *testing.T, key string, pairs ...string) *Record {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("pairs must come in twos")
	}
	var left, right []string
	for i := 0; i < len(pairs); i += 2 {
		left = append(left, pairs[i])
		right = append(right, pairs[i+1])
	}
	r, err := NewRecord(key, left, right)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	return r
}

func testEngine(store NoteStore, opts Options) *Engine {
	if opts.Deck == "" {
		opts.Deck = "Chinese::CharsProps"
	}
	if opts.NoteType == "" {
		opts.NoteType = "ConnectDots"
	}
	if opts.MaxItemsPerNote == 0 {
		opts.MaxItemsPerNote = 10
	}
	return NewEngine(store, opts, nil)
}

func TestRunCreatesMissingNotes(t *testing.T) {
	store := newFakeNoteStore()
	engine := testEngine(store, Options{})

	gen := &staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:ma", "馬", "mǎ", "媽", "mā"),
	}}
	result, err := engine.Run(context.Background(), []Generator{gen})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Created != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(store.added) != 1 || store.added[0] != "syllable:ma" {
		t.Errorf("added = %v", store.added)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	store := newFakeNoteStore()
	gen := &staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:ma", "馬", "mǎ", "媽", "mā"),
	}}

	engine := testEngine(store, Options{})
	if _, err := engine.Run(context.Background(), []Generator{gen}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	result, err := engine.Run(context.Background(), []Generator{gen})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if result.Stats.Created != 0 || result.Stats.Updated != 0 || result.Stats.Unchanged != 1 {
		t.Errorf("second run stats = %+v", result.Stats)
	}
}

func TestRunUpdatesChangedNotesAndReschedules(t *testing.T) {
	store := newFakeNoteStore()
	id := store.seed("syllable:ma", "馬", "mǎ (ㄇㄚˇ)")

	gen := &staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:ma", "馬", "mǎ (ㄇㄚˇ)", "媽", "mā (ㄇㄚ)"),
	}}
	engine := testEngine(store, Options{})
	result, err := engine.Run(context.Background(), []Generator{gen})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Updated != 1 || result.Stats.Created != 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(store.updated) != 1 || store.updated[0] != id {
		t.Errorf("updated = %v", store.updated)
	}
	// Interval reset first, then due today.
	if len(store.dueDateSets) != 2 || store.dueDateSets[0] != "1!" || store.dueDateSets[1] != "0" {
		t.Errorf("dueDateSets = %v", store.dueDateSets)
	}
}

func TestRunSkipsRescheduleWhenAsked(t *testing.T) {
	store := newFakeNoteStore()
	store.seed("syllable:ma", "old", "old")

	gen := &staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:ma", "馬", "mǎ"),
	}}
	engine := testEngine(store, Options{SkipReschedule: true})
	if _, err := engine.Run(context.Background(), []Generator{gen}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(store.dueDateSets) != 0 {
		t.Errorf("dueDateSets = %v", store.dueDateSets)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	store := newFakeNoteStore()
	store.seed("syllable:ma", "old", "old")

	gens := []Generator{&staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:ma", "馬", "mǎ"),
		record(t, "syllable:hao", "好", "hǎo"),
	}}}
	engine := testEngine(store, Options{DryRun: true})
	result, err := engine.Run(context.Background(), gens)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Created != 1 || result.Stats.Updated != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(store.added) != 0 || len(store.updated) != 0 || len(store.dueDateSets) != 0 {
		t.Error("dry run must not write")
	}
}

func TestRunReportsUntrackedWithoutDeleting(t *testing.T) {
	store := newFakeNoteStore()
	store.seed("syllable:ma", "馬", "mǎ (ㄇㄚˇ)")
	store.seed("orphan:one", "x", "y")
	store.seed("orphan:two", "x", "y")

	gen := &staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:ma", "馬", "mǎ (ㄇㄚˇ)"),
	}}
	engine := testEngine(store, Options{})
	result, err := engine.Run(context.Background(), []Generator{gen})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Untracked != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(result.Untracked) != 2 || result.Untracked[0] != "orphan:one" || result.Untracked[1] != "orphan:two" {
		t.Errorf("untracked = %v", result.Untracked)
	}
	if len(store.notes) != 3 {
		t.Error("untracked notes must never be deleted")
	}
}

func TestRunContinuesPastFailingGenerator(t *testing.T) {
	store := newFakeNoteStore()
	gens := []Generator{
		&staticGenerator{typ: "syllable", err: errors.New("bad data")},
		&staticGenerator{typ: "prop", records: []*Record{record(t, "prop:horse", "馬", "mǎ")}},
	}

	engine := testEngine(store, Options{})
	result, err := engine.Run(context.Background(), gens)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Errors != 1 || result.Stats.Created != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestRunFailsWhenExistingNotesCannotLoad(t *testing.T) {
	store := newFakeNoteStore()
	store.loadFails = true

	engine := testEngine(store, Options{})
	if _, err := engine.Run(context.Background(), nil); err == nil {
		t.Fatal("load failure must abort the run")
	}
}

func TestRunCountsPerNoteErrorsAndContinues(t *testing.T) {
	store := newFakeNoteStore()
	store.addFailsOn = "syllable:hao"

	gens := []Generator{&staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:hao", "好", "hǎo"),
		record(t, "syllable:ma", "馬", "mǎ"),
	}}}
	engine := testEngine(store, Options{})
	result, err := engine.Run(context.Background(), gens)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Errors != 1 || result.Stats.Created != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestRunSplitsOversizedRecords(t *testing.T) {
	store := newFakeNoteStore()

	pairs := make([]string, 0, 50)
	for i := 0; i < 25; i++ {
		pairs = append(pairs, fmt.Sprintf("左%02d", i), fmt.Sprintf("r%02d", i))
	}
	gens := []Generator{&staticGenerator{typ: "syllable", records: []*Record{
		record(t, "syllable:big", pairs...),
	}}}

	engine := testEngine(store, Options{})
	result, err := engine.Run(context.Background(), gens)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stats.Created != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
	want := map[string]bool{"syllable:big": true, "syllable:big:2": true, "syllable:big:3": true}
	for _, key := range store.added {
		if !want[key] {
			t.Errorf("unexpected key %q", key)
		}
		delete(want, key)
	}
	if len(want) != 0 {
		t.Errorf("missing keys %v", want)
	}
	// Coverage sees the record before splitting.
	if got := len(result.RecordsByType["syllable"]); got != 1 {
		t.Errorf("records by type = %d", got)
	}
}

func TestCalculateCoverage(t *testing.T) {
	records := map[string][]*Record{
		"syllable": {record(t, "syllable:ma", "馬", "mǎ", "媽", "mā")},
		"tag":      {record(t, "tag:food", "媽媽", "mother", "湯", "soup")},
	}
	all := map[string]struct{}{"馬": {}, "媽": {}, "湯": {}, "好": {}}

	coverage := CalculateCoverage(records, all)
	if coverage.Total != 4 {
		t.Errorf("total = %d", coverage.Total)
	}
	if len(coverage.Covered) != 3 {
		t.Errorf("covered = %v", coverage.Covered)
	}
	if got := coverage.Percentage(); got != 75.0 {
		t.Errorf("percentage = %v", got)
	}
	uncovered := coverage.Uncovered()
	if len(uncovered) != 1 || uncovered[0] != "好" {
		t.Errorf("uncovered = %v", uncovered)
	}
	if len(coverage.ByType["syllable"]) != 2 {
		t.Errorf("syllable coverage = %v", coverage.ByType["syllable"])
	}
	// The two-character phrase is not a single character and counts for
	// nothing.
	if len(coverage.ByType["tag"]) != 1 {
		t.Errorf("tag coverage = %v", coverage.ByType["tag"])
	}
}

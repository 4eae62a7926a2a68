package connectdots

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"dotsync/internal/ankiconnect"
	"dotsync/internal/logging"
)

// noteTags mark engine-managed notes so they can be told apart from
// hand-written ones inside Anki.
var noteTags = []string{"auto-generated", "connect-dots"}

// NoteStore is the slice of the AnkiConnect client the engine needs.
type NoteStore interface {
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.Note, error)
	AddNote(ctx context.Context, deck, model string, fields map[string]string, tags []string) (int64, error)
	UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error
	CardsForNote(ctx context.Context, id int64) ([]int64, error)
	SetDueDate(ctx context.Context, cards []int64, days string) error
}

// Options configure one reconciliation run.
type Options struct {
	Deck            string
	NoteType        string
	MaxItemsPerNote int
	DryRun          bool
	SkipReschedule  bool
}

// Stats count the outcomes of one run.
type Stats struct {
	Created   int
	Updated   int
	Unchanged int
	Errors    int
	Untracked int
}

// Result is the outcome of a run: the counters, the keys present in Anki
// that no generator produced, and the pre-split records per generator type
// for coverage reporting.
type Result struct {
	Stats         Stats
	Untracked     []string
	RecordsByType map[string][]*Record
}

// Engine reconciles generated records against the notes stored in Anki.
type Engine struct {
	store  NoteStore
	opts   Options
	logger *slog.Logger
}

// NewEngine builds an engine around a note store.
func NewEngine(store NoteStore, opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "engine"),
	}
}

type existingNote struct {
	id    int64
	left  string
	right string
}

// Run executes every generator and diffs the split records against the
// existing notes. A generator failure is counted and skipped; failure to
// load the existing notes aborts the run because without the observed state
// every diff would be a create.
func (e *Engine) Run(ctx context.Context, generators []Generator) (*Result, error) {
	existing, err := e.loadExisting(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing notes: %w", err)
	}
	e.logger.Info("existing notes loaded", logging.Int("count", len(existing)))

	result := &Result{RecordsByType: make(map[string][]*Record)}
	processed := make(map[string]struct{})

	for _, generator := range generators {
		records, err := generator.Generate(ctx)
		if err != nil {
			e.logger.Error("generator failed",
				logging.String("type", generator.Type()),
				logging.Error(err))
			result.Stats.Errors++
			continue
		}

		for _, record := range records {
			result.RecordsByType[generator.Type()] = append(result.RecordsByType[generator.Type()], record)

			for _, part := range Split(record, e.opts.MaxItemsPerNote) {
				processed[part.Key] = struct{}{}
				if err := e.reconcile(ctx, part, existing, &result.Stats); err != nil {
					e.logger.Error("note failed",
						logging.String("key", part.Key),
						logging.Error(err))
					result.Stats.Errors++
				}
			}
		}
	}

	for key := range existing {
		if _, ok := processed[key]; !ok {
			result.Untracked = append(result.Untracked, key)
		}
	}
	sort.Strings(result.Untracked)
	result.Stats.Untracked = len(result.Untracked)

	if len(result.Untracked) > 0 {
		e.logger.Warn("untracked notes present", logging.Int("count", len(result.Untracked)))
	}
	return result, nil
}

func (e *Engine) loadExisting(ctx context.Context) (map[string]existingNote, error) {
	ids, err := e.store.FindNotes(ctx, fmt.Sprintf("note:%s", e.opts.NoteType))
	if err != nil {
		return nil, err
	}
	notes, err := e.store.NotesInfo(ctx, ids)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]existingNote, len(notes))
	for _, note := range notes {
		key := note.Field("Key")
		if key == "" {
			continue
		}
		existing[key] = existingNote{
			id:    note.ID,
			left:  note.Field("Left"),
			right: note.Field("Right"),
		}
	}
	return existing, nil
}

func (e *Engine) reconcile(ctx context.Context, record *Record, existing map[string]existingNote, stats *Stats) error {
	left := record.LeftString()
	right := record.RightString()

	current, ok := existing[record.Key]
	if !ok {
		return e.create(ctx, record, left, right, stats)
	}

	if current.left == left && current.right == right {
		e.logger.Debug("unchanged", logging.String("key", record.Key))
		stats.Unchanged++
		return nil
	}
	return e.update(ctx, current.id, record, left, right, stats)
}

func (e *Engine) create(ctx context.Context, record *Record, left, right string, stats *Stats) error {
	if e.opts.DryRun {
		e.logger.Info("would create note",
			logging.String("key", record.Key),
			logging.String("left", left),
			logging.String("right", right))
		stats.Created++
		return nil
	}

	id, err := e.store.AddNote(ctx, e.opts.Deck, e.opts.NoteType, map[string]string{
		"Key":   record.Key,
		"Left":  left,
		"Right": right,
	}, noteTags)
	if err != nil {
		return err
	}
	e.logger.Info("created note",
		logging.String("key", record.Key),
		logging.Int64("note_id", id))
	stats.Created++
	return nil
}

func (e *Engine) update(ctx context.Context, id int64, record *Record, left, right string, stats *Stats) error {
	if e.opts.DryRun {
		e.logger.Info("would update note",
			logging.String("key", record.Key),
			logging.Int64("note_id", id))
		stats.Updated++
		return nil
	}

	err := e.store.UpdateNoteFields(ctx, id, map[string]string{
		"Key":   record.Key,
		"Left":  left,
		"Right": right,
	})
	if err != nil {
		return err
	}

	if !e.opts.SkipReschedule {
		if err := e.reschedule(ctx, id); err != nil {
			return fmt.Errorf("rescheduling cards: %w", err)
		}
	}

	e.logger.Info("updated note",
		logging.String("key", record.Key),
		logging.Int64("note_id", id))
	stats.Updated++
	return nil
}

// reschedule resets the cards of an updated note so the changed content
// comes up for review. Setting "1!" first forces the interval back to one
// day, then "0" makes the cards due today.
func (e *Engine) reschedule(ctx context.Context, noteID int64) error {
	cards, err := e.store.CardsForNote(ctx, noteID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return nil
	}
	if err := e.store.SetDueDate(ctx, cards, "1!"); err != nil {
		return err
	}
	return e.store.SetDueDate(ctx, cards, "0")
}

package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"dotsync/internal/ankiconnect"
	"dotsync/internal/logging"
	"dotsync/internal/pinyin"
	"dotsync/internal/textutil"
)

const (
	hanziQuery = "note:Hanzi -is:suspended"
	tocflQuery = "note:TOCFL -is:suspended"

	// notesInfo payloads get large; ids are fetched in slices of this size.
	batchSize = 500
)

// Source is the read side of the note store the dataset loads from.
type Source interface {
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.Note, error)
}

// HanziNote is the slice of a Hanzi note the generators care about.
type HanziNote struct {
	ID             int64
	Traditional    string
	Pinyin         string
	Meaning        string
	SoundComponent string
	Tags           []string
}

// Syllable returns the pinyin with tone marks stripped.
func (n *HanziNote) Syllable() string {
	if n.Pinyin == "" {
		return ""
	}
	return pinyin.StripTones(n.Pinyin)
}

// TOCFLNote is the slice of a TOCFL vocabulary note the generators care
// about.
type TOCFLNote struct {
	ID          int64
	Traditional string
	Meaning     string
}

// Stats summarizes a loaded store.
type Stats struct {
	HanziNotes      int
	TOCFLNotes      int
	SoundComponents int
	Syllables       int
	Tags            int
	TwoCharTOCFL    int
}

// Store holds the pre-fetched collections with lookup indexes.
type Store struct {
	Hanzi []*HanziNote
	TOCFL []*TOCFLNote

	byTraditional map[string]*HanziNote
	byComponent   map[string][]*HanziNote
	bySyllable    map[string][]*HanziNote
	byTag         map[string][]*HanziNote
	twoCharTOCFL  []*TOCFLNote
}

// Load fetches both collections and builds the indexes. meaningFields is the
// ordered list of field names tried for a note's meaning; the first
// non-empty value wins.
func Load(ctx context.Context, source Source, meaningFields []string, logger *slog.Logger) (*Store, error) {
	log := logging.NewComponentLogger(logger, "dataset")

	store := &Store{}

	hanzi, err := fetchAll(ctx, source, hanziQuery)
	if err != nil {
		return nil, fmt.Errorf("loading Hanzi notes: %w", err)
	}
	for _, note := range hanzi {
		store.Hanzi = append(store.Hanzi, &HanziNote{
			ID:             note.ID,
			Traditional:    note.Field("Traditional"),
			Pinyin:         note.Field("Pinyin"),
			Meaning:        note.FirstField(meaningFields),
			SoundComponent: note.Field("Sound component character"),
			Tags:           note.Tags,
		})
	}

	tocfl, err := fetchAll(ctx, source, tocflQuery)
	if err != nil {
		return nil, fmt.Errorf("loading TOCFL notes: %w", err)
	}
	for _, note := range tocfl {
		store.TOCFL = append(store.TOCFL, &TOCFLNote{
			ID:          note.ID,
			Traditional: note.Field("Traditional"),
			Meaning:     note.FirstField(meaningFields),
		})
	}

	store.buildIndexes()

	stats := store.Stats()
	log.Info("collections loaded",
		logging.Int("hanzi_notes", stats.HanziNotes),
		logging.Int("tocfl_notes", stats.TOCFLNotes),
		logging.Int("sound_components", stats.SoundComponents),
		logging.Int("syllables", stats.Syllables),
		logging.Int("tags", stats.Tags))

	return store, nil
}

func fetchAll(ctx context.Context, source Source, query string) ([]ankiconnect.Note, error) {
	ids, err := source.FindNotes(ctx, query)
	if err != nil {
		return nil, err
	}

	notes := make([]ankiconnect.Note, 0, len(ids))
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batch, err := source.NotesInfo(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		notes = append(notes, batch...)
	}
	return notes, nil
}

func (s *Store) buildIndexes() {
	s.byTraditional = make(map[string]*HanziNote)
	s.byComponent = make(map[string][]*HanziNote)
	s.bySyllable = make(map[string][]*HanziNote)
	s.byTag = make(map[string][]*HanziNote)
	s.twoCharTOCFL = nil

	for _, note := range s.Hanzi {
		if note.Traditional != "" {
			s.byTraditional[note.Traditional] = note
		}
		if note.SoundComponent != "" {
			s.byComponent[note.SoundComponent] = append(s.byComponent[note.SoundComponent], note)
		}
		if syllable := note.Syllable(); syllable != "" && utf8.RuneCountInString(note.Traditional) == 1 {
			s.bySyllable[syllable] = append(s.bySyllable[syllable], note)
		}
		for _, tag := range note.Tags {
			s.byTag[tag] = append(s.byTag[tag], note)
		}
	}

	for _, note := range s.TOCFL {
		if utf8.RuneCountInString(note.Traditional) == 2 {
			s.twoCharTOCFL = append(s.twoCharTOCFL, note)
		}
	}
}

// ByTraditional returns the Hanzi note for a traditional character, nil when
// absent.
func (s *Store) ByTraditional(char string) *HanziNote {
	return s.byTraditional[char]
}

// ByComponent returns the Hanzi notes sharing a sound component.
func (s *Store) ByComponent(component string) []*HanziNote {
	return s.byComponent[component]
}

// BySyllable returns the single-character Hanzi notes pronounced with the
// given bare syllable.
func (s *Store) BySyllable(syllable string) []*HanziNote {
	return s.bySyllable[pinyin.StripTones(syllable)]
}

// ByTag returns the Hanzi notes carrying a tag.
func (s *Store) ByTag(tag string) []*HanziNote {
	return s.byTag[tag]
}

// SingleCharHanzi returns the Hanzi notes whose traditional field is one
// character.
func (s *Store) SingleCharHanzi() []*HanziNote {
	var out []*HanziNote
	for _, note := range s.Hanzi {
		if note.Traditional != "" && utf8.RuneCountInString(note.Traditional) == 1 {
			out = append(out, note)
		}
	}
	return out
}

// TwoCharTOCFLByCharacter returns the two-character phrases containing a
// character.
func (s *Store) TwoCharTOCFLByCharacter(char string) []*TOCFLNote {
	var out []*TOCFLNote
	normalized := textutil.NormalizeCJK(char)
	for _, note := range s.twoCharTOCFL {
		for _, r := range note.Traditional {
			if textutil.NormalizeCJK(string(r)) == normalized {
				out = append(out, note)
				break
			}
		}
	}
	return out
}

// AllTraditionalChars returns the set of normalized single traditional
// characters in the Hanzi collection.
func (s *Store) AllTraditionalChars() map[string]struct{} {
	chars := make(map[string]struct{})
	for _, note := range s.Hanzi {
		if note.Traditional != "" && utf8.RuneCountInString(note.Traditional) == 1 {
			chars[textutil.NormalizeCJK(note.Traditional)] = struct{}{}
		}
	}
	return chars
}

// Stats reports collection and index sizes.
func (s *Store) Stats() Stats {
	return Stats{
		HanziNotes:      len(s.Hanzi),
		TOCFLNotes:      len(s.TOCFL),
		SoundComponents: len(s.byComponent),
		Syllables:       len(s.bySyllable),
		Tags:            len(s.byTag),
		TwoCharTOCFL:    len(s.twoCharTOCFL),
	}
}

package notecache

import (
	"context"
	"log/slog"

	"dotsync/internal/ankiconnect"
	"dotsync/internal/logging"
)

// Source is the read side of the note store the cache memoizes.
type Source interface {
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.Note, error)
}

// Stats reports cache population counts.
type Stats struct {
	Queries int
	Notes   int
}

// Cache memoizes findNotes and notesInfo results for the duration of one
// reconciliation run. It is unbounded and not safe for concurrent use; the
// run discards it at exit.
type Cache struct {
	source  Source
	logger  *slog.Logger
	queries map[string][]int64
	notes   map[int64]ankiconnect.Note
}

// New wraps a note source with a fresh, empty cache.
func New(source Source, logger *slog.Logger) *Cache {
	return &Cache{
		source:  source,
		logger:  logging.NewComponentLogger(logger, "notecache"),
		queries: make(map[string][]int64),
		notes:   make(map[int64]ankiconnect.Note),
	}
}

// FindNotes returns the ids for a query, hitting the remote only on the
// first occurrence of each query string.
func (c *Cache) FindNotes(ctx context.Context, query string) ([]int64, error) {
	if ids, ok := c.queries[query]; ok {
		c.logger.Debug("query cache hit", logging.String("query", query))
		return ids, nil
	}

	ids, err := c.source.FindNotes(ctx, query)
	if err != nil {
		return nil, err
	}
	c.queries[query] = ids
	return ids, nil
}

// NotesInfo returns full notes for the given ids. Cached notes are served
// from memory; the remaining ids go to the remote in a single batched fetch.
// Order across the cached and fetched groups is not guaranteed.
func (c *Cache) NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.Note, error) {
	notes := make([]ankiconnect.Note, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		if note, ok := c.notes[id]; ok {
			notes = append(notes, note)
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := c.source.NotesInfo(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, note := range fetched {
			c.notes[note.ID] = note
		}
		notes = append(notes, fetched...)
	}

	return notes, nil
}

// Clear resets both maps.
func (c *Cache) Clear() {
	c.queries = make(map[string][]int64)
	c.notes = make(map[int64]ankiconnect.Note)
}

// Stats reports how many queries and notes are currently cached.
func (c *Cache) Stats() Stats {
	return Stats{Queries: len(c.queries), Notes: len(c.notes)}
}

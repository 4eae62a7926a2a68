package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dotsync/internal/logging"
)

// ErrRemote tags failures reported by AnkiConnect or the transport under it.
var ErrRemote = errors.New("ankiconnect error")

// HTTPDoer describes the HTTP client used by the AnkiConnect service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues AnkiConnect RPC calls against a single endpoint.
type Client struct {
	baseURL string
	client  HTTPDoer
	timeout time.Duration
	logger  *slog.Logger
}

// New constructs a client. A nil doer falls back to a plain http.Client with
// the given per-request timeout.
func New(baseURL string, timeout time.Duration, doer HTTPDoer, logger *slog.Logger) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: baseURL,
		client:  doer,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "ankiconnect"),
	}
}

type rpcRequest struct {
	Action  string `json:"action"`
	Params  any    `json:"params,omitempty"`
	Version int    `json:"version"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

func (c *Client) invoke(ctx context.Context, action string, params any, result any) error {
	payload, err := json.Marshal(rpcRequest{Action: action, Params: params, Version: 6})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRemote, action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: read response: %v", ErrRemote, action, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned status %d", ErrRemote, action, resp.StatusCode)
	}

	var envelope rpcResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", ErrRemote, action, err)
	}
	if envelope.Error != nil && *envelope.Error != "" {
		return fmt.Errorf("%w: %s: %s", ErrRemote, action, *envelope.Error)
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("%w: %s: decode result: %v", ErrRemote, action, err)
		}
	}
	return nil
}

// FindNotes returns note ids matching an Anki search query. The query syntax
// is opaque to this client.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	if err := c.invoke(ctx, "findNotes", map[string]string{"query": query}, &ids); err != nil {
		return nil, err
	}
	c.logger.Debug("findNotes", logging.String("query", query), logging.Int("count", len(ids)))
	return ids, nil
}

type rawNote struct {
	NoteID int64 `json:"noteId"`
	Fields map[string]struct {
		Value string `json:"value"`
		Order int    `json:"order"`
	} `json:"fields"`
	Tags []string `json:"tags"`
}

// NotesInfo fetches full note records for the given ids in one batch. An
// empty id list yields an empty result without a remote call.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]Note, error) {
	if len(ids) == 0 {
		return []Note{}, nil
	}

	var raw []rawNote
	if err := c.invoke(ctx, "notesInfo", map[string][]int64{"notes": ids}, &raw); err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(raw))
	for _, r := range raw {
		fields := make(map[string]string, len(r.Fields))
		for name, field := range r.Fields {
			fields[name] = field.Value
		}
		notes = append(notes, Note{ID: r.NoteID, Fields: fields, Tags: r.Tags})
	}
	return notes, nil
}

// AddNote creates a note and returns its id. A nil or zero id from the
// remote is treated as a rejection.
func (c *Client) AddNote(ctx context.Context, deck, noteType string, fields map[string]string, tags []string) (int64, error) {
	params := map[string]any{
		"note": map[string]any{
			"deckName":  deck,
			"modelName": noteType,
			"fields":    fields,
			"tags":      tags,
		},
	}
	var id *int64
	if err := c.invoke(ctx, "addNote", params, &id); err != nil {
		return 0, err
	}
	if id == nil || *id == 0 {
		return 0, fmt.Errorf("%w: addNote returned no note id", ErrRemote)
	}
	return *id, nil
}

// UpdateNoteFields replaces the given fields on an existing note.
func (c *Client) UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error {
	params := map[string]any{
		"note": map[string]any{
			"id":     id,
			"fields": fields,
		},
	}
	return c.invoke(ctx, "updateNoteFields", params, nil)
}

// CardsForNote returns the card ids belonging to a note.
func (c *Client) CardsForNote(ctx context.Context, noteID int64) ([]int64, error) {
	var cards []int64
	query := fmt.Sprintf("nid:%d", noteID)
	if err := c.invoke(ctx, "findCards", map[string]string{"query": query}, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// SetDueDate reschedules cards using Anki's due-date syntax (e.g. "0", "1!").
func (c *Client) SetDueDate(ctx context.Context, cards []int64, days string) error {
	if len(cards) == 0 {
		return nil
	}
	params := map[string]any{"cards": cards, "days": days}
	return c.invoke(ctx, "setDueDate", params, nil)
}

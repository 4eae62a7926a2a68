package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnki(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateFields(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnki() error {
	if c.Anki.URL == "" {
		return errors.New("anki.url must be set")
	}
	if !strings.HasPrefix(c.Anki.URL, "http://") && !strings.HasPrefix(c.Anki.URL, "https://") {
		return fmt.Errorf("anki.url must be an http(s) URL, got %q", c.Anki.URL)
	}
	if c.Anki.RequestTimeout <= 0 {
		return errors.New("anki.request_timeout must be positive (seconds)")
	}
	if c.Anki.Deck == "" {
		return errors.New("anki.deck must be set")
	}
	if c.Anki.NoteType == "" {
		return errors.New("anki.note_type must be set")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.MaxItemsPerNote <= 0 {
		return errors.New("sync.max_items_per_note must be positive")
	}
	for key, value := range map[string]int{
		"sync.sound_component_min_count": c.Sync.SoundComponentMinCount,
		"sync.syllable_min_count":        c.Sync.SyllableMinCount,
		"sync.phrase_min_count":          c.Sync.PhraseMinCount,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	for _, tag := range c.Sync.PinyinTags {
		if !strings.Contains(tag, "::") {
			return fmt.Errorf("sync.pinyin_tags entry %q must use the prefix::name form", tag)
		}
	}
	for _, inter := range c.Sync.Intersections {
		if inter.Name == "" {
			return errors.New("sync.intersections entries must have a name")
		}
		if len(inter.Tags) < 2 {
			return fmt.Errorf("sync.intersections entry %q needs at least two tags", inter.Name)
		}
	}
	for _, combined := range c.Sync.CombinedComponents {
		if combined.Name == "" {
			return errors.New("sync.combined_components entries must have a name")
		}
		if len(combined.Components) == 0 {
			return fmt.Errorf("sync.combined_components entry %q needs at least one component", combined.Name)
		}
	}
	return nil
}

func (c *Config) validateFields() error {
	if len(c.Fields.LeftCandidates) == 0 {
		return errors.New("fields.left_candidates must include at least one field name")
	}
	if len(c.Fields.RightCandidates) == 0 {
		return errors.New("fields.right_candidates must include at least one field name")
	}
	return nil
}

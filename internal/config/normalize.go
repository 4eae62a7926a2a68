package config

import "strings"

// normalize expands paths and trims configuration strings in place.
func (c *Config) normalize() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return err
	}

	c.Anki.URL = strings.TrimRight(strings.TrimSpace(c.Anki.URL), "/")
	c.Anki.Deck = strings.TrimSpace(c.Anki.Deck)
	c.Anki.NoteType = strings.TrimSpace(c.Anki.NoteType)

	c.Sync.PhraseWhitelist = trimAll(c.Sync.PhraseWhitelist)
	c.Sync.PinyinTags = trimAll(c.Sync.PinyinTags)
	c.Sync.MeaningTags = trimAll(c.Sync.MeaningTags)
	for i := range c.Sync.Intersections {
		c.Sync.Intersections[i].Name = strings.TrimSpace(c.Sync.Intersections[i].Name)
		c.Sync.Intersections[i].Tags = trimAll(c.Sync.Intersections[i].Tags)
	}
	for i := range c.Sync.CombinedComponents {
		c.Sync.CombinedComponents[i].Name = strings.TrimSpace(c.Sync.CombinedComponents[i].Name)
		c.Sync.CombinedComponents[i].Components = trimAll(c.Sync.CombinedComponents[i].Components)
	}

	c.Fields.LeftCandidates = trimAll(c.Fields.LeftCandidates)
	c.Fields.RightCandidates = trimAll(c.Fields.RightCandidates)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

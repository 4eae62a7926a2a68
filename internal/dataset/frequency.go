package dataset

import (
	"fmt"
	"sort"
	"strings"
)

const maxExamples = 5

// Frequency holds the occurrence counts for one grouping dimension along
// with a few example entries per item.
type Frequency struct {
	Counts   map[string]int
	Examples map[string][]string
	Total    int
}

func newFrequency() Frequency {
	return Frequency{
		Counts:   make(map[string]int),
		Examples: make(map[string][]string),
	}
}

func (f *Frequency) add(item, example string) {
	f.Counts[item]++
	if example != "" && len(f.Examples[item]) < maxExamples {
		f.Examples[item] = append(f.Examples[item], example)
	}
}

// AboveThreshold returns the items counted at least min times, sorted by
// descending count with ties broken by item so runs are deterministic.
func (f Frequency) AboveThreshold(min int) []string {
	var items []string
	for item, count := range f.Counts {
		if count >= min {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if f.Counts[items[i]] != f.Counts[items[j]] {
			return f.Counts[items[i]] > f.Counts[items[j]]
		}
		return items[i] < items[j]
	})
	return items
}

// Ranked returns all items sorted the same way as AboveThreshold.
func (f Frequency) Ranked() []string {
	return f.AboveThreshold(0)
}

func hanziExample(note *HanziNote) string {
	if note.Traditional == "" {
		return ""
	}
	if note.Pinyin != "" {
		return fmt.Sprintf("%s(%s)", note.Traditional, note.Pinyin)
	}
	return note.Traditional
}

// SoundComponentFrequencies counts Hanzi notes per sound component.
func (s *Store) SoundComponentFrequencies() Frequency {
	freq := newFrequency()
	for _, note := range s.Hanzi {
		if note.SoundComponent == "" {
			continue
		}
		freq.Total++
		freq.add(note.SoundComponent, hanziExample(note))
	}
	return freq
}

// SyllableFrequencies counts single-character Hanzi notes per bare syllable.
func (s *Store) SyllableFrequencies() Frequency {
	freq := newFrequency()
	single := s.SingleCharHanzi()
	freq.Total = len(single)
	for _, note := range single {
		if syllable := note.Syllable(); syllable != "" {
			freq.add(syllable, hanziExample(note))
		}
	}
	return freq
}

// PhraseCharacterFrequencies counts two-character TOCFL phrases per
// character they contain.
func (s *Store) PhraseCharacterFrequencies() Frequency {
	freq := newFrequency()
	freq.Total = len(s.twoCharTOCFL)
	for _, note := range s.twoCharTOCFL {
		for _, r := range note.Traditional {
			freq.add(string(r), note.Traditional)
		}
	}
	return freq
}

// TagCount pairs a tag with how many uncovered and total characters carry
// it.
type TagCount struct {
	Tag       string
	Uncovered int
	Total     int
}

func isPropTag(tag string) bool {
	return strings.HasPrefix(tag, "prop::") || strings.HasPrefix(tag, "prop-")
}

// UncoveredTagCounts ranks the prop tags of characters no generator covers,
// so new tag groups can be picked where they help most.
func (s *Store) UncoveredTagCounts(uncovered map[string]struct{}) []TagCount {
	uncoveredCounts := make(map[string]int)
	for char := range uncovered {
		note := s.ByTraditional(char)
		if note == nil {
			continue
		}
		for _, tag := range note.Tags {
			if isPropTag(tag) {
				uncoveredCounts[tag]++
			}
		}
	}

	totalCounts := make(map[string]int)
	for _, note := range s.Hanzi {
		for _, tag := range note.Tags {
			if isPropTag(tag) {
				totalCounts[tag]++
			}
		}
	}

	out := make([]TagCount, 0, len(uncoveredCounts))
	for tag, count := range uncoveredCounts {
		out = append(out, TagCount{Tag: tag, Uncovered: count, Total: totalCounts[tag]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Uncovered != out[j].Uncovered {
			return out[i].Uncovered > out[j].Uncovered
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

package connectdots

import (
	"context"
	"fmt"
	"strings"

	"dotsync/internal/dataset"
	"dotsync/internal/pinyin"
	"dotsync/internal/textutil"
)

// Generator produces the desired records for one grouping of the
// collection. Type names the grouping and becomes the key prefix; it also
// buckets coverage statistics.
type Generator interface {
	Type() string
	Generate(ctx context.Context) ([]*Record, error)
}

// hanziPinyinRecord maps a group of Hanzi notes to their readings. Notes
// missing either the character or the pinyin are skipped; an empty group
// yields no records at all.
func hanziPinyinRecord(key string, notes []*dataset.HanziNote) ([]*Record, error) {
	var left, right []string
	for _, note := range notes {
		if note.Traditional == "" || note.Pinyin == "" {
			continue
		}
		left = append(left, note.Traditional)
		right = append(right, pinyin.WithZhuyin(note.Pinyin))
	}
	if len(left) == 0 {
		return nil, nil
	}
	r, err := NewRecord(key, left, right)
	if err != nil {
		return nil, err
	}
	return []*Record{r}, nil
}

// SoundComponentGroup groups the characters sharing a sound component,
// including the component character itself when it exists as its own note.
type SoundComponentGroup struct {
	store     *dataset.Store
	component string
}

func NewSoundComponentGroup(store *dataset.Store, component string) *SoundComponentGroup {
	return &SoundComponentGroup{store: store, component: component}
}

func (g *SoundComponentGroup) Type() string { return "sound_component" }

func (g *SoundComponentGroup) Generate(context.Context) ([]*Record, error) {
	notes := g.store.ByComponent(g.component)
	if own := g.store.ByTraditional(g.component); own != nil && !containsNote(notes, own) {
		notes = append([]*dataset.HanziNote{own}, notes...)
	}
	return hanziPinyinRecord(fmt.Sprintf("%s:%s", g.Type(), g.component), notes)
}

// CombinedComponentGroup merges several sound components that are each too
// small for a group of their own.
type CombinedComponentGroup struct {
	store      *dataset.Store
	name       string
	components []string
}

func NewCombinedComponentGroup(store *dataset.Store, name string, components []string) *CombinedComponentGroup {
	return &CombinedComponentGroup{store: store, name: name, components: components}
}

func (g *CombinedComponentGroup) Type() string { return "sound_component" }

func (g *CombinedComponentGroup) Generate(context.Context) ([]*Record, error) {
	var notes []*dataset.HanziNote
	seen := make(map[int64]struct{})
	add := func(note *dataset.HanziNote) {
		if _, ok := seen[note.ID]; ok {
			return
		}
		seen[note.ID] = struct{}{}
		notes = append(notes, note)
	}

	for _, component := range g.components {
		for _, note := range g.store.ByComponent(component) {
			add(note)
		}
		if own := g.store.ByTraditional(component); own != nil {
			add(own)
		}
	}
	return hanziPinyinRecord(fmt.Sprintf("%s:%s", g.Type(), g.name), notes)
}

// SyllableGroup groups the single characters pronounced with the same bare
// syllable regardless of tone.
type SyllableGroup struct {
	store    *dataset.Store
	syllable string
}

func NewSyllableGroup(store *dataset.Store, syllable string) *SyllableGroup {
	return &SyllableGroup{store: store, syllable: strings.ToLower(syllable)}
}

func (g *SyllableGroup) Type() string { return "syllable" }

func (g *SyllableGroup) Generate(context.Context) ([]*Record, error) {
	return hanziPinyinRecord(fmt.Sprintf("%s:%s", g.Type(), g.syllable), g.store.BySyllable(g.syllable))
}

// TagPinyinGroup groups the characters carrying one tag. The tag prefix
// before "::" becomes the generator type, so "prop::square" produces keys
// under "prop:" and "prop-top::sheep" under "prop-top:".
type TagPinyinGroup struct {
	store   *dataset.Store
	tag     string
	prefix  string
	tagName string
}

func NewTagPinyinGroup(store *dataset.Store, tag string) (*TagPinyinGroup, error) {
	prefix, name, ok := strings.Cut(tag, "::")
	if !ok {
		return nil, fmt.Errorf("tag %q must be in prefix::name form", tag)
	}
	return &TagPinyinGroup{store: store, tag: tag, prefix: prefix, tagName: name}, nil
}

func (g *TagPinyinGroup) Type() string { return g.prefix }

func (g *TagPinyinGroup) Generate(context.Context) ([]*Record, error) {
	return hanziPinyinRecord(fmt.Sprintf("%s:%s", g.prefix, g.tagName), g.store.ByTag(g.tag))
}

// TagMeaningGroup maps traditional to meaning for every note carrying a
// tag. Unlike the pinyin groups it queries the collection live because the
// tag may span note types beyond Hanzi.
type TagMeaningGroup struct {
	source      dataset.Source
	tag         string
	leftFields  []string
	rightFields []string
}

func NewTagMeaningGroup(source dataset.Source, tag string, leftFields, rightFields []string) *TagMeaningGroup {
	return &TagMeaningGroup{source: source, tag: tag, leftFields: leftFields, rightFields: rightFields}
}

func (g *TagMeaningGroup) Type() string { return "tag" }

func (g *TagMeaningGroup) Generate(ctx context.Context) ([]*Record, error) {
	ids, err := g.source.FindNotes(ctx, fmt.Sprintf("-is:suspended tag:%s", g.tag))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	notes, err := g.source.NotesInfo(ctx, ids)
	if err != nil {
		return nil, err
	}

	var left, right []string
	for _, note := range notes {
		traditional := note.FirstField(g.leftFields)
		meaning := note.FirstField(g.rightFields)
		if traditional == "" || meaning == "" {
			continue
		}
		left = append(left, traditional)
		right = append(right, meaning)
	}
	if len(left) == 0 {
		return nil, nil
	}
	r, err := NewRecord(fmt.Sprintf("%s:%s", g.Type(), g.tag), left, right)
	if err != nil {
		return nil, err
	}
	return []*Record{r}, nil
}

// PhraseGroup maps the two-character phrases containing a common character
// to their meanings.
type PhraseGroup struct {
	store     *dataset.Store
	character string
}

func NewPhraseGroup(store *dataset.Store, character string) *PhraseGroup {
	return &PhraseGroup{store: store, character: character}
}

func (g *PhraseGroup) Type() string { return "two_char_phrase" }

func (g *PhraseGroup) Generate(context.Context) ([]*Record, error) {
	var left, right []string
	for _, note := range g.store.TwoCharTOCFLByCharacter(g.character) {
		if note.Traditional == "" || note.Meaning == "" {
			continue
		}
		left = append(left, note.Traditional)
		right = append(right, note.Meaning)
	}
	if len(left) == 0 {
		return nil, nil
	}
	r, err := NewRecord(fmt.Sprintf("%s:%s", g.Type(), g.character), left, right)
	if err != nil {
		return nil, err
	}
	return []*Record{r}, nil
}

// CustomGroup maps a hand-picked string of characters to their readings.
// The string may carry separators or duplicates; only the distinct CJK
// characters are looked up.
type CustomGroup struct {
	store      *dataset.Store
	name       string
	characters string
}

func NewCustomGroup(store *dataset.Store, name, characters string) *CustomGroup {
	return &CustomGroup{store: store, name: name, characters: characters}
}

func (g *CustomGroup) Type() string { return "custom_hanzi" }

func (g *CustomGroup) Generate(context.Context) ([]*Record, error) {
	var notes []*dataset.HanziNote
	for _, char := range textutil.ExtractCJK(g.characters) {
		if note := g.store.ByTraditional(char); note != nil {
			notes = append(notes, note)
		}
	}
	return hanziPinyinRecord(fmt.Sprintf("%s:%s", g.Type(), g.name), notes)
}

// IntersectionGroup keeps the pairs of its first generator whose left
// values also appear in the second. Chaining intersections narrows a group
// to the characters carrying every tag in a list.
type IntersectionGroup struct {
	name string
	a, b Generator
}

func NewIntersectionGroup(name string, a, b Generator) *IntersectionGroup {
	return &IntersectionGroup{name: name, a: a, b: b}
}

func (g *IntersectionGroup) Type() string { return "intersection" }

func (g *IntersectionGroup) Generate(ctx context.Context) ([]*Record, error) {
	recordsA, err := g.a.Generate(ctx)
	if err != nil {
		return nil, err
	}
	recordsB, err := g.b.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if len(recordsA) == 0 || len(recordsB) == 0 {
		return nil, nil
	}

	inB := make(map[string]struct{})
	for _, r := range recordsB {
		for _, l := range r.Left {
			inB[textutil.NormalizeCJK(l)] = struct{}{}
		}
	}

	var left, right []string
	for _, r := range recordsA {
		for i, l := range r.Left {
			if _, ok := inB[textutil.NormalizeCJK(l)]; ok {
				left = append(left, l)
				right = append(right, r.Right[i])
			}
		}
	}
	if len(left) == 0 {
		return nil, nil
	}
	r, err := NewRecord(fmt.Sprintf("%s:%s", g.Type(), g.name), left, right)
	if err != nil {
		return nil, err
	}
	return []*Record{r}, nil
}

func containsNote(notes []*dataset.HanziNote, target *dataset.HanziNote) bool {
	for _, note := range notes {
		if note.ID == target.ID {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"
	"sort"

	"dotsync/internal/config"
	"dotsync/internal/connectdots"
	"dotsync/internal/dataset"
)

// buildGenerators assembles the generator list for one run: threshold-based
// groups discovered from the collection first, then the configured tag,
// intersection, phrase, custom, and combined groups.
func buildGenerators(cfg *config.Config, store *dataset.Store, source dataset.Source) ([]connectdots.Generator, error) {
	var generators []connectdots.Generator

	components := store.SoundComponentFrequencies().AboveThreshold(cfg.Sync.SoundComponentMinCount)
	for _, component := range components {
		generators = append(generators, connectdots.NewSoundComponentGroup(store, component))
	}

	syllables := store.SyllableFrequencies().AboveThreshold(cfg.Sync.SyllableMinCount)
	for _, syllable := range syllables {
		generators = append(generators, connectdots.NewSyllableGroup(store, syllable))
	}

	for _, tag := range cfg.Sync.MeaningTags {
		generators = append(generators, connectdots.NewTagMeaningGroup(
			source, tag, cfg.Fields.LeftCandidates, cfg.Fields.RightCandidates))
	}

	for _, tag := range cfg.Sync.PinyinTags {
		group, err := connectdots.NewTagPinyinGroup(store, tag)
		if err != nil {
			return nil, fmt.Errorf("pinyin tag %q: %w", tag, err)
		}
		generators = append(generators, group)
	}

	for _, intersection := range cfg.Sync.Intersections {
		group, err := buildIntersection(store, intersection)
		if err != nil {
			return nil, err
		}
		generators = append(generators, group)
	}

	phraseChars := store.PhraseCharacterFrequencies().AboveThreshold(cfg.Sync.PhraseMinCount)
	for _, char := range phraseChars {
		if len(cfg.Sync.PhraseWhitelist) > 0 && !contains(cfg.Sync.PhraseWhitelist, char) {
			continue
		}
		generators = append(generators, connectdots.NewPhraseGroup(store, char))
	}

	customNames := make([]string, 0, len(cfg.Sync.CustomSets))
	for name := range cfg.Sync.CustomSets {
		customNames = append(customNames, name)
	}
	sort.Strings(customNames)
	for _, name := range customNames {
		generators = append(generators, connectdots.NewCustomGroup(store, name, cfg.Sync.CustomSets[name]))
	}

	for _, combined := range cfg.Sync.CombinedComponents {
		generators = append(generators, connectdots.NewCombinedComponentGroup(store, combined.Name, combined.Components))
	}

	return generators, nil
}

// buildIntersection chains pairwise intersections so a group covers the
// characters carrying every listed tag.
func buildIntersection(store *dataset.Store, intersection config.Intersection) (connectdots.Generator, error) {
	groups := make([]connectdots.Generator, 0, len(intersection.Tags))
	for _, tag := range intersection.Tags {
		group, err := connectdots.NewTagPinyinGroup(store, tag)
		if err != nil {
			return nil, fmt.Errorf("intersection %q: %w", intersection.Name, err)
		}
		groups = append(groups, group)
	}
	if len(groups) < 2 {
		return nil, fmt.Errorf("intersection %q needs at least two tags", intersection.Name)
	}

	result := connectdots.NewIntersectionGroup(intersection.Name, groups[0], groups[1])
	for _, group := range groups[2:] {
		result = connectdots.NewIntersectionGroup(intersection.Name, result, group)
	}
	return result, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

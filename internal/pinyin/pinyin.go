package pinyin

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Combining marks used for the four contour tones. The diaeresis on ü is a
// vowel distinction, not a tone, and must survive stripping.
const (
	markTone1 = '\u0304' // macron
	markTone2 = '\u0301' // acute
	markTone3 = '\u030C' // caron
	markTone4 = '\u0300' // grave
)

var toneOfMark = map[rune]int{
	markTone1: 1,
	markTone2: 2,
	markTone3: 3,
	markTone4: 4,
}

var markOfTone = map[int]rune{
	1: markTone1,
	2: markTone2,
	3: markTone3,
	4: markTone4,
}

// StripTones removes tone marks from a pinyin syllable and lowercases it,
// leaving the bare syllable ("hǎo" to "hao", "lǜ" to "lü"). It is total:
// input without tone marks passes through unchanged.
func StripTones(pinyin string) string {
	decomposed := norm.NFD.String(strings.ToLower(pinyin))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if _, isTone := toneOfMark[r]; isTone {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// ToneNumber extracts the tone of a pinyin syllable: 1 through 4 for the
// contour tones, 5 for the unmarked neutral tone, 0 for empty input.
func ToneNumber(pinyin string) int {
	if strings.TrimSpace(pinyin) == "" {
		return 0
	}
	for _, r := range norm.NFD.String(pinyin) {
		if tone, ok := toneOfMark[r]; ok {
			return tone
		}
	}
	return 5
}

// WithTone renders a bare syllable with the given tone mark applied to the
// correct vowel ("ma", 3 yields "mǎ"). Tone 5 returns the syllable as is.
// Mark placement follows the standard rules: a and e always take the mark,
// in "ou" the o takes it, otherwise the last vowel does.
func WithTone(syllable string, tone int) string {
	mark, ok := markOfTone[tone]
	if !ok {
		return syllable
	}

	runes := []rune(syllable)
	pos := toneVowelIndex(runes)
	if pos < 0 {
		return syllable
	}

	var b strings.Builder
	for i, r := range runes {
		b.WriteRune(r)
		if i == pos {
			b.WriteRune(mark)
		}
	}
	return norm.NFC.String(b.String())
}

func toneVowelIndex(runes []rune) int {
	last := -1
	for i, r := range runes {
		switch r {
		case 'a', 'e':
			return i
		case 'o':
			if i+1 < len(runes) && runes[i+1] == 'u' {
				return i
			}
			last = i
		case 'i', 'u', 'ü':
			last = i
		}
	}
	return last
}

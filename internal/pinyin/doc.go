// Package pinyin manipulates Hanyu Pinyin syllables: stripping and applying
// tone marks, extracting tone numbers, and rendering a pinyin syllable with
// its zhuyin (bopomofo) transcription appended.
//
// Tone marks are handled through Unicode decomposition rather than lookup
// tables of precomposed characters, so any canonically equivalent input
// works. The neutral tone is numbered 5.
package pinyin

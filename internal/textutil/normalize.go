package textutil

import "golang.org/x/text/unicode/norm"

// NormalizeCJK converts compatibility ideographs to their canonical forms so
// that visually identical characters compare equal. Characters stored by
// different sources can arrive as compatibility codepoints (U+F900..U+FAFF);
// NFKC folds those to the unified ideograph, NFC re-composes the result.
func NormalizeCJK(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(norm.NFKC.String(s))
}

// IsCJK reports whether a rune falls in a CJK ideograph block.
func IsCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF, // CJK Unified Ideographs
		r >= 0x3400 && r <= 0x4DBF, // Extension A
		r >= 0x20000 && r <= 0x2A6DF, // Extension B
		r >= 0x2A700 && r <= 0x2EBEF, // Extensions C-F
		r >= 0xF900 && r <= 0xFAFF, // Compatibility Ideographs
		r >= 0x2F800 && r <= 0x2FA1F: // Compatibility Supplement
		return true
	}
	return false
}

// ExtractCJK returns the distinct normalized CJK characters in a text, in
// order of first appearance. Everything else is dropped.
func ExtractCJK(text string) []string {
	var chars []string
	seen := make(map[string]struct{})
	for _, r := range text {
		if !IsCJK(r) {
			continue
		}
		char := NormalizeCJK(string(r))
		if _, ok := seen[char]; ok {
			continue
		}
		seen[char] = struct{}{}
		chars = append(chars, char)
	}
	return chars
}

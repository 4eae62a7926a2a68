package pinyin

import (
	"fmt"
	"strings"
)

var zhuyinInitials = map[string]string{
	"b": "ㄅ", "p": "ㄆ", "m": "ㄇ", "f": "ㄈ",
	"d": "ㄉ", "t": "ㄊ", "n": "ㄋ", "l": "ㄌ",
	"g": "ㄍ", "k": "ㄎ", "h": "ㄏ",
	"j": "ㄐ", "q": "ㄑ", "x": "ㄒ",
	"zh": "ㄓ", "ch": "ㄔ", "sh": "ㄕ", "r": "ㄖ",
	"z": "ㄗ", "c": "ㄘ", "s": "ㄙ",
}

var zhuyinFinals = map[string]string{
	"a": "ㄚ", "o": "ㄛ", "e": "ㄜ", "ê": "ㄝ",
	"ai": "ㄞ", "ei": "ㄟ", "ao": "ㄠ", "ou": "ㄡ",
	"an": "ㄢ", "en": "ㄣ", "ang": "ㄤ", "eng": "ㄥ", "er": "ㄦ",
	"i": "ㄧ", "ia": "ㄧㄚ", "ie": "ㄧㄝ", "iao": "ㄧㄠ", "iou": "ㄧㄡ",
	"ian": "ㄧㄢ", "in": "ㄧㄣ", "iang": "ㄧㄤ", "ing": "ㄧㄥ", "iong": "ㄩㄥ",
	"u": "ㄨ", "ua": "ㄨㄚ", "uo": "ㄨㄛ", "uai": "ㄨㄞ", "uei": "ㄨㄟ",
	"uan": "ㄨㄢ", "uen": "ㄨㄣ", "uang": "ㄨㄤ", "ueng": "ㄨㄥ", "ong": "ㄨㄥ",
	"ü": "ㄩ", "üe": "ㄩㄝ", "üan": "ㄩㄢ", "ün": "ㄩㄣ",
}

var zhuyinTones = map[int]string{
	1: "",
	2: "ˊ",
	3: "ˇ",
	4: "ˋ",
}

// Spellings that hide the underlying final behind y/w or drop the vowel
// after an initial. Rewritten to the canonical final before table lookup.
var finalRewrites = map[string]string{
	"yi": "i", "ya": "ia", "ye": "ie", "yao": "iao", "you": "iou",
	"yan": "ian", "yin": "in", "yang": "iang", "ying": "ing", "yong": "iong",
	"yu": "ü", "yue": "üe", "yuan": "üan", "yun": "ün",
	"wu": "u", "wa": "ua", "wo": "uo", "wai": "uai", "wei": "uei",
	"wan": "uan", "wen": "uen", "wang": "uang", "weng": "ueng",
}

// WithZhuyin renders a toned pinyin syllable as "pinyin (zhuyin)", for
// example "hǎo" to "hǎo (ㄏㄠˇ)". Unconvertible input comes back unchanged.
func WithZhuyin(pinyin string) string {
	zhuyin, err := toZhuyin(pinyin)
	if err != nil {
		return pinyin
	}
	return fmt.Sprintf("%s (%s)", pinyin, zhuyin)
}

func toZhuyin(pinyin string) (string, error) {
	tone := ToneNumber(pinyin)
	if tone == 0 {
		return "", fmt.Errorf("empty syllable")
	}
	bare := StripTones(pinyin)
	if bare == "" {
		return "", fmt.Errorf("no letters in %q", pinyin)
	}

	initial, final := splitSyllable(bare)
	body, err := zhuyinBody(initial, final, bare)
	if err != nil {
		return "", err
	}

	// The neutral tone dot leads, contour marks trail.
	if tone == 5 {
		return "˙" + body, nil
	}
	return body + zhuyinTones[tone], nil
}

func splitSyllable(bare string) (initial, final string) {
	if len(bare) >= 2 {
		if prefix := bare[:2]; prefix == "zh" || prefix == "ch" || prefix == "sh" {
			return prefix, bare[2:]
		}
	}
	if _, ok := zhuyinInitials[bare[:1]]; ok {
		return bare[:1], bare[1:]
	}
	return "", bare
}

func zhuyinBody(initial, final, bare string) (string, error) {
	if initial == "" {
		if rewritten, ok := finalRewrites[bare]; ok {
			final = rewritten
		}
		symbol, ok := zhuyinFinals[final]
		if !ok {
			return "", fmt.Errorf("unknown syllable %q", bare)
		}
		return symbol, nil
	}

	// zhi, chi, shi, ri, zi, ci, si: the buffer vowel is not written.
	if final == "i" && sibilantInitial(initial) {
		return zhuyinInitials[initial], nil
	}

	// The abbreviated finals expand back to their full forms, and after
	// j, q, x a written u stands for ü.
	jqx := initial == "j" || initial == "q" || initial == "x"
	switch final {
	case "iu":
		final = "iou"
	case "ui":
		final = "uei"
	case "un":
		if jqx {
			final = "ün"
		} else {
			final = "uen"
		}
	default:
		if jqx && strings.HasPrefix(final, "u") {
			final = "ü" + final[1:]
		}
	}

	symbol, ok := zhuyinFinals[final]
	if !ok {
		return "", fmt.Errorf("unknown syllable %q", bare)
	}
	return zhuyinInitials[initial] + symbol, nil
}

func sibilantInitial(initial string) bool {
	switch initial {
	case "zh", "ch", "sh", "r", "z", "c", "s":
		return true
	}
	return false
}

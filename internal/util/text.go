package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// StripAccents removes combining marks (São Paulo -> Sao Paulo).
func StripAccents(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// Fold lowercases, strips accents and collapses whitespace. All reference
// lookups compare folded forms.
func Fold(input string) string {
	s := strings.ToLower(StripAccents(input))
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FindWord returns the byte span of the first occurrence of needle in
// haystack that is bounded by non-alphanumeric runes. Both arguments must
// already be folded.
func FindWord(haystack, needle string) (int, int, bool) {
	if needle == "" {
		return 0, 0, false
	}
	start := 0
	for start <= len(haystack) {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return 0, 0, false
		}
		i += start
		end := i + len(needle)
		if IsWordBoundary(haystack, i, end) {
			return i, end, true
		}
		_, size := utf8.DecodeRuneInString(haystack[i:])
		start = i + size
	}
	return 0, 0, false
}

// IsWordBoundary reports whether s[start:end] is not glued to a letter or
// digit on either side.
func IsWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Blank reports whether every value is empty after trimming.
func Blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var placeholders = map[string]struct{}{
	"":                  {},
	"-":                 {},
	"na":                {},
	"n/a":               {},
	"none":              {},
	"null":              {},
	"unknown":           {},
	"missing":           {},
	"not applicable":    {},
	"not available":     {},
	"not collected":     {},
	"not provided":      {},
	"not determined":    {},
	"restricted access": {},
}

// IsPlaceholder reports whether the value is one of the INSDC style
// "no value" markers.
func IsPlaceholder(input string) bool {
	folded := Fold(input)
	if strings.HasPrefix(folded, "missing:") {
		return true
	}
	_, ok := placeholders[folded]
	return ok
}

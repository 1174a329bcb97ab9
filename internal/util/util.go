// Package util provides small helpers shared across layers.
package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks after canonical decomposition, so
// both precomposed (ș) and combining (s + U+0326) forms fold to ASCII.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeKey canonicalizes a header cell for alias matching: lowercase,
// diacritics folded to ASCII, all whitespace removed.
func NormalizeKey(s string) string {
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	return whitespaceRe.ReplaceAllString(s, "")
}

// PickField returns the first non-empty trimmed value among the given header
// aliases. The row is keyed by normalized header names.
func PickField(row map[string]string, aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := row[NormalizeKey(alias)]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

var looseNumberRe = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

// ParseLooseNumber extracts the first decimal number from a cell that may
// carry units, comma decimal separators or surrounding text. Reports false
// when no number is present.
func ParseLooseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", ".")
	match := looseNumberRe.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeFilename turns an arbitrary display name into a safe xlsx filename.
func SanitizeFilename(name string) string {
	safe := unsafeFilenameRe.ReplaceAllString(name, "_")
	return safe + ".xlsx"
}

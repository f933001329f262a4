// Package text provides text normalization for speech synthesis input.
//
// Synthesis providers produce cleaner audio when the input is free of
// irregular whitespace, typographic punctuation, and dangling sentence
// fragments. The normalizer applies those repairs without altering the
// wording of the text itself.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Regex patterns.
const (
	whitespaceRegexPattern = `\s+`
)

// Punctuation and formatting constants.
const (
	emDash       = "—"
	enDash       = "–"
	figureDash   = "‒"
	ellipsis     = "..."
	ellipsisChar = "…"
)

// Normalizer provides text normalization functionality for synthesis input.
type Normalizer struct {
	whitespacePattern *regexp.Regexp
	punctReplacer     *strings.Replacer
}

// NewNormalizer creates a normalizer with precompiled patterns and replacers.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		whitespacePattern: regexp.MustCompile(whitespaceRegexPattern),
		punctReplacer: strings.NewReplacer(
			emDash, "-",
			enDash, "-",
			figureDash, "-",
			ellipsisChar, ellipsis,
			"“", `"`, "”", `"`,
			"‘", "'", "’", "'",
		),
	}
}

// Normalize applies whitespace collapsing, typographic punctuation
// normalization, and sentence-ending repair, in that order.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return text
	}

	normalized := n.normalizeWhitespace(text)
	normalized = n.punctReplacer.Replace(normalized)
	normalized = n.ensureProperSentenceEnding(normalized)

	return normalized
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func (n *Normalizer) normalizeWhitespace(text string) string {
	return strings.TrimSpace(n.whitespacePattern.ReplaceAllString(text, " "))
}

// ensureProperSentenceEnding ensures the text ends with sentence-ending
// punctuation, which prevents some synthesis voices from trailing off.
func (n *Normalizer) ensureProperSentenceEnding(text string) string {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return ""
	}

	lastChar, _ := utf8.DecodeLastRuneInString(trimmedText)
	if !unicode.IsPunct(lastChar) {
		return trimmedText + "."
	}

	switch lastChar {
	case '.', '!', '?':
		return trimmedText
	default:
		return trimmedText + "."
	}
}

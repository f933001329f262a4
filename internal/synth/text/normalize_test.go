// Package text_test tests synthesis input normalization.
package text_test

import (
	"testing"

	"github.com/book-expert/audio-relay/internal/synth/text"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	normalizer := text.NewNormalizer()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "collapses whitespace",
			input: "Olá   mundo,\n\tcomo  vai",
			want:  "Olá mundo, como vai.",
		},
		{
			name:  "normalizes typographic punctuation",
			input: "“Olá” — disse ele…",
			want:  `"Olá" - disse ele...`,
		},
		{
			name:  "adds missing sentence ending",
			input: "Bom dia",
			want:  "Bom dia.",
		},
		{
			name:  "keeps existing sentence ending",
			input: "Tudo bem?",
			want:  "Tudo bem?",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  Olá mundo.  ",
			want:  "Olá mundo.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, normalizer.Normalize(testCase.input))
		})
	}
}

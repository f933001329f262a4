package relay_test

import (
	"testing"

	"github.com/book-expert/audio-relay/internal/relay"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdentifier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		identifier string
		want       string
	}{
		{
			name:       "plain identifier unchanged",
			identifier: "abc-1",
			want:       "abc-1",
		},
		{
			name:       "path separators replaced",
			identifier: "a/b\\c",
			want:       "a_b_c",
		},
		{
			name:       "traversal collapses to empty",
			identifier: "..",
			want:       "",
		},
		{
			name:       "traversal with separator",
			identifier: "../secret",
			want:       "_secret",
		},
		{
			name:       "nested traversal leaves no dot pairs",
			identifier: "../../etc/passwd",
			want:       "___etc_passwd",
		},
		{
			name:       "interior dot pair rewritten",
			identifier: "a..b",
			want:       "a_b",
		},
		{
			name:       "shell metacharacters replaced",
			identifier: `a<b>c:d"e|f?g*h`,
			want:       "a_b_c_d_e_f_g_h",
		},
		{
			name:       "surrounding dots and spaces trimmed",
			identifier: " .abc. ",
			want:       "abc",
		},
		{
			name:       "null byte replaced",
			identifier: "a\x00b",
			want:       "a_b",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, relay.SanitizeIdentifier(testCase.identifier))
		})
	}
}

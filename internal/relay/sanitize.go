package relay

import "strings"

const invalidCharReplacement = "_"

// identifierReplacer replaces characters that are unsafe in filesystem path
// segments or remote object identifiers. Path separators are included so a
// caller-supplied identifier can never escape the work directory or nest the
// remote object.
var identifierReplacer = strings.NewReplacer(
	"<", invalidCharReplacement,
	">", invalidCharReplacement,
	":", invalidCharReplacement,
	"\"", invalidCharReplacement,
	"/", invalidCharReplacement,
	"\\", invalidCharReplacement,
	"|", invalidCharReplacement,
	"?", invalidCharReplacement,
	"*", invalidCharReplacement,
	"\x00", invalidCharReplacement,
)

// SanitizeIdentifier makes a caller-supplied identifier safe to use as a
// filename fragment and as a remote object identifier. Leading and trailing
// dots and spaces are stripped so relative path tricks like ".." collapse to
// the empty string, which callers must replace with a generated token. Any
// consecutive dots left in the interior are rewritten so no ".." sequence
// survives into the result.
func SanitizeIdentifier(identifier string) string {
	sanitized := identifierReplacer.Replace(identifier)
	sanitized = strings.Trim(sanitized, ". ")

	return strings.ReplaceAll(sanitized, "..", invalidCharReplacement)
}

// Package format maps GitHub event payloads to Misskey note drafts.
//
// Every formatter is a pure function from a typed payload to an optional
// Note: unrecognized actions, filtered refs, and empty required fields
// return ok=false and nothing is published. The status formatter is the one
// exception; it performs a single follow-up lookup through StatusLookup to
// pick between two message variants.
package format

import "strings"

// Visibility controls who sees a published note.
type Visibility string

const (
	// VisibilityHome shows the note to followers only. The default.
	VisibilityHome Visibility = "home"

	// VisibilityPublic shows the note on public timelines. Used only for
	// star notifications.
	VisibilityPublic Visibility = "public"
)

// Note is a formatted notification ready to publish.
type Note struct {
	Text       string
	Visibility Visibility
}

// note builds a home-visibility note from pre-joined lines.
func note(lines ...string) Note {
	return Note{
		Text:       strings.Join(lines, "\n"),
		Visibility: VisibilityHome,
	}
}

// firstLine returns everything before the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// quote wraps user-supplied text for embedding in a note. The publisher
// disables mention/hashtag extraction, so the body is safe to inline as-is.
func quote(s string) string {
	return "\"" + s + "\""
}

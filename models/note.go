package models

import "time"

// DateFormat is the day key layout used for report names and note filtering.
const DateFormat = "2006-01-02"

// Note is a read-only handle to a markdown file in the vault.
type Note struct {
	Name       string
	Path       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// MatchesDate reports whether the note was created or modified on the given
// day key, compared as local-time date strings. Timestamps carrying a foreign
// UTC offset (frontmatter written elsewhere) are converted first.
func (n Note) MatchesDate(date string) bool {
	return n.CreatedAt.In(time.Local).Format(DateFormat) == date ||
		n.ModifiedAt.In(time.Local).Format(DateFormat) == date
}

// NoteContent pairs a note's display name with its full text.
type NoteContent struct {
	Name    string
	Content string
}

// Package prompt assembles the summarization prompt from collected notes.
package prompt

import (
	"strings"

	"github.com/HighPriest/ob-daily-summary/models"
)

// Preamble is the fixed instruction prefixed to every generated prompt.
const Preamble = "Summarize the main content of today's notes:"

// Build concatenates each note as "<name>:\n<content>", separated by blank
// lines, under the fixed preamble.
func Build(notes []models.NoteContent) string {
	var sb strings.Builder

	sb.WriteString(Preamble)
	sb.WriteString("\n\n")

	for i, n := range notes {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(n.Name)
		sb.WriteString(":\n")
		sb.WriteString(n.Content)
	}

	return sb.String()
}

// AppendLanguageHint adds a trailing instruction asking for the reply in the
// given language. The preamble and note blocks are left untouched.
func AppendLanguageHint(prompt, language string) string {
	return prompt + "\n\nRespond in " + language + "."
}

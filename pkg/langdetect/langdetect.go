// Package langdetect identifies the dominant language of note text so the
// summarization prompt can ask for a reply in kind.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Candidate languages considered during detection. Restricting the set keeps
// model loading cheap and accuracy high on short notes.
var candidates = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Polish,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
}

// minConfidence is the detection confidence below which no hint is given.
const minConfidence = 0.65

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
	}
}

// Dominant returns the dominant language of the combined texts and whether
// detection is confident enough to act on.
func (d *Detector) Dominant(texts []string) (string, bool) {
	sample := strings.TrimSpace(strings.Join(texts, "\n"))
	if sample == "" {
		return "", false
	}

	language, exists := d.detector.DetectLanguageOf(sample)
	if !exists {
		return "", false
	}

	confidence := d.detector.ComputeLanguageConfidence(sample, language)
	if confidence < minConfidence {
		return "", false
	}

	return language.String(), true
}

// Package grading compares a learner's submitted answer against the canonical
// sentence. Both sides are normalized with textnorm before comparison, so the
// verdict is insensitive to whitespace inserted between tiles and to the
// punctuation tiles that never appear on screen.
package grading

import (
	"strings"

	"github.com/kumitate-app/kumitate/internal/textnorm"
)

// Result is the outcome of grading a single submission. It is derived on the
// fly and never persisted.
type Result struct {
	Correct   bool   `json:"correct"`
	Submitted string `json:"submitted"` // normalized form of the submission
	Expected  string `json:"expected"`  // normalized form of the canonical answer
}

// Grade compares submitted text with the canonical answer using exact string
// equality after normalization. There is no fuzzy matching and no partial
// credit. Any input, including empty or pure-punctuation strings, normalizes
// to some string and is compared as-is.
func Grade(submitted, canonical string) Result {
	sub := textnorm.Normalize(submitted)
	exp := textnorm.Normalize(canonical)
	return Result{
		Correct:   sub == exp,
		Submitted: sub,
		Expected:  exp,
	}
}

// GradeTiles grades an ordered sequence of tile surfaces. Tiles are
// concatenated with no separator to form the submission.
func GradeTiles(surfaces []string, canonical string) Result {
	return Grade(strings.Join(surfaces, ""), canonical)
}

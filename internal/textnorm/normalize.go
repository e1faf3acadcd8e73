// Package textnorm canonicalizes answer text so that tile concatenation,
// full-width/half-width variants, and punctuation differences never affect
// grading. The same function is applied when sentences are ingested and when
// answers are graded.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// strippedPunct is the fixed set of terminal and bracketing punctuation that
// never appears on tiles. Both full-width and ASCII forms are listed because
// input may arrive in either form (NFKC folds some, not all, of these).
const strippedPunct = "。、．，.,!?！？…・「」『』（）()【】〈〉《》"

// Normalize canonicalizes text for comparison: NFKC, then all whitespace
// removed, then the fixed punctuation set removed. Deterministic and
// idempotent; empty input yields empty output.
func Normalize(text string) string {
	folded := norm.NFKC.String(text)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(strippedPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsPunctuation reports whether surface consists entirely of characters from
// the stripped punctuation set. Used to drop punctuation morphemes from tile
// generation.
func IsPunctuation(surface string) bool {
	if surface == "" {
		return false
	}
	for _, r := range surface {
		if !strings.ContainsRune(strippedPunct, r) {
			return false
		}
	}
	return true
}

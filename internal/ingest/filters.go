// Package ingest loads bilingual TSV corpora into the sentence store and
// builds the token inventory. Each input pair produces an explicit Outcome
// rather than being silently dropped, so ingestion stays observable without
// ever crashing on bad rows.
package ingest

import (
	"regexp"
	"strings"
)

// Quality filter thresholds for sentence pairs.
const (
	minChars      = 2
	maxChars      = 200
	maxASCIIRatio = 0.5 // for the target (Japanese) side
)

var urlPattern = regexp.MustCompile(`(?i)https?://|www\.|\.com|\.org|\.net|\.jp`)

// Skip reasons reported in Outcome and tallied in Stats.
const (
	ReasonTooShort      = "too_short"
	ReasonTooLong       = "too_long"
	ReasonEmpty         = "empty"
	ReasonURL           = "url"
	ReasonMostlyASCII   = "mostly_ascii"
	ReasonDuplicate     = "duplicate"
	ReasonMalformedRow  = "malformed_row"
	ReasonTokenizeError = "tokenize_error"
)

// checkPair applies the quality filters and returns a skip reason, or ""
// when the pair is acceptable.
func checkPair(source, target string) string {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return ReasonEmpty
	}
	if len([]rune(source)) < minChars || len([]rune(target)) < minChars {
		return ReasonTooShort
	}
	if len([]rune(source)) > maxChars || len([]rune(target)) > maxChars {
		return ReasonTooLong
	}
	if urlPattern.MatchString(source) || urlPattern.MatchString(target) {
		return ReasonURL
	}
	if asciiRatio(target) > maxASCIIRatio {
		return ReasonMostlyASCII
	}
	return ""
}

func asciiRatio(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	ascii := 0
	for _, r := range runes {
		if r < 128 {
			ascii++
		}
	}
	return float64(ascii) / float64(len(runes))
}

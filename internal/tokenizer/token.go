// Package tokenizer defines the morpheme model produced by morphological
// analysis and the port the exercise engine consumes. Implementations differ
// per language; the engine only needs the produced sequence and tags.
package tokenizer

// Token is a single morpheme with its grammatical tags. Immutable once
// produced; identity is positional within a sentence, not by value.
type Token struct {
	Surface        string `json:"surface"`
	Lemma          string `json:"lemma,omitempty"`
	POSMajor       string `json:"pos_major,omitempty"`
	POSMinor       string `json:"pos_minor,omitempty"`
	InflectionType string `json:"inflection_type,omitempty"`
	InflectionForm string `json:"inflection_form,omitempty"`
	Reading        string `json:"reading,omitempty"`
}

// Tokenizer turns raw text into an ordered morpheme sequence.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

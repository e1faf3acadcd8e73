package tokenizer

import (
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// IPA dictionary feature layout: 0..3 part-of-speech levels, 4 inflection
// type, 5 inflection form, 6 base form, 7 reading, 8 pronunciation.
const (
	featInflectionType = 4
	featInflectionForm = 5
)

// Kagome tokenizes Japanese text with the kagome morphological analyzer and
// the bundled IPA dictionary. Safe for concurrent use; the underlying
// tokenizer is read-only after construction.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome builds a tokenizer with the IPA dictionary, omitting BOS/EOS
// pseudo-tokens.
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Kagome{t: t}, nil
}

// Tokenize analyzes text in normal mode and converts kagome tokens into the
// engine's Token model.
func (k *Kagome) Tokenize(text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	ktoks := k.t.Tokenize(text)
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		pos := kt.POS()
		tok := Token{Surface: kt.Surface}
		if len(pos) > 0 && pos[0] != "*" {
			tok.POSMajor = pos[0]
		}
		if len(pos) > 1 && pos[1] != "*" {
			tok.POSMinor = pos[1]
		}
		if lemma, ok := kt.BaseForm(); ok && lemma != "*" {
			tok.Lemma = lemma
		} else {
			tok.Lemma = kt.Surface
		}
		if reading, ok := kt.Reading(); ok && reading != "*" {
			tok.Reading = reading
		}
		features := kt.Features()
		if len(features) > featInflectionType && features[featInflectionType] != "*" {
			tok.InflectionType = features[featInflectionType]
		}
		if len(features) > featInflectionForm && features[featInflectionForm] != "*" {
			tok.InflectionForm = features[featInflectionForm]
		}
		out = append(out, tok)
	}
	return out, nil
}

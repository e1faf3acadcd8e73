package exercise

import (
	"context"
	"math/rand"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/textnorm"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

const (
	// DefaultMaxTokens rejects sentences that would make unwieldy exercises.
	// Over-length sentences are filtered, not truncated: truncation would
	// silently corrupt the canonical answer.
	DefaultMaxTokens = 20
	// DefaultBudget is the per-exercise distractor budget.
	DefaultBudget = 6
)

// contentPOS are the part-of-speech categories eligible for distractors:
// nouns, verbs, adjectives, adjectival nouns, adverbs. Function words such as
// particles are excluded because same-category alternatives for them are
// grammatically unsafe substitutes.
var contentPOS = map[string]struct{}{
	"名詞":  {},
	"動詞":  {},
	"形容詞": {},
	"形状詞": {},
	"副詞":  {},
}

func isContentWord(tok tokenizer.Token) bool {
	_, ok := contentPOS[tok.POSMajor]
	return ok
}

// Builder assembles exercises from tokenized sentence pairs.
type Builder struct {
	Selector  Selector
	MaxTokens int
	Budget    int
}

func NewBuilder(inv corpus.Inventory) Builder {
	return Builder{
		Selector:  Selector{Inventory: inv},
		MaxTokens: DefaultMaxTokens,
		Budget:    DefaultBudget,
	}
}

// Build turns a sentence pair and its morphemes into an exercise. It returns
// ok=false when the sentence is unsuitable (no tokens, over-length, or
// nothing left after dropping punctuation); callers retry with a different
// sentence. Distractor scarcity is not a failure: the exercise simply
// carries fewer distractor tiles.
//
// The rng drives both distractor sampling and the final shuffle, so a fixed
// seed reproduces the exercise byte for byte against the same inventory
// snapshot.
func (b Builder) Build(ctx context.Context, pair corpus.SentencePair, toks []tokenizer.Token, rng *rand.Rand) (*Exercise, bool) {
	if len(toks) == 0 || len(toks) > b.MaxTokens {
		return nil, false
	}

	// Punctuation morphemes never become tiles, but grading still succeeds:
	// normalization strips punctuation from both the submission and the
	// canonical answer.
	content := make([]tokenizer.Token, 0, len(toks))
	for _, tok := range toks {
		if textnorm.IsPunctuation(tok.Surface) {
			continue
		}
		content = append(content, tok)
	}
	if len(content) == 0 {
		return nil, false
	}

	surfaces := make([]string, len(content))
	tiles := make([]Tile, 0, len(content)+b.Budget)
	used := make(map[string]struct{}, len(content)+b.Budget)
	for i, tok := range content {
		surfaces[i] = tok.Surface
		used[tok.Surface] = struct{}{}
		tiles = append(tiles, Tile{Surface: tok.Surface, Correct: true, CanonicalIndex: i})
	}

	var eligible []tokenizer.Token
	for _, tok := range content {
		if isContentWord(tok) {
			eligible = append(eligible, tok)
		}
	}

	// Budget policy: the budget is divided evenly across eligible tokens and
	// capped strictly per token, so it may go under-filled when few tokens
	// are eligible. The cap on the running total still applies.
	if len(eligible) > 0 && b.Budget > 0 {
		perToken := b.Budget / len(eligible)
		if perToken < 1 {
			perToken = 1
		}
		added := 0
		for _, tok := range eligible {
			if added >= b.Budget {
				break
			}
			picks := b.Selector.Select(ctx, tok.POSMajor, tok.InflectionForm, used, perToken, rng)
			for _, surface := range picks {
				if added >= b.Budget {
					break
				}
				tiles = append(tiles, Tile{Surface: surface, Correct: false, CanonicalIndex: -1})
				used[surface] = struct{}{}
				added++
			}
		}
	}

	// Display order must not reveal answer order.
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return &Exercise{
		ID:                pair.ID,
		Prompt:            pair.SourceText,
		Tiles:             tiles,
		CanonicalAnswer:   pair.TargetNorm,
		CanonicalSurfaces: surfaces,
	}, true
}

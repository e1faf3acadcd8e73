package corpus

import (
	"context"
	"errors"
	"math/rand"

	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

// ErrNotFound is returned when a sentence lookup matches nothing, including
// random selection over an empty corpus.
var ErrNotFound = errors.New("sentence not found")

// Store provides sentence pairs to the exercise engine and accepts new pairs
// during ingestion.
type Store interface {
	GetSentence(ctx context.Context, id int64) (SentencePair, error)
	// GetRandomSentence picks a uniformly random sentence using the caller's
	// request-scoped rng.
	GetRandomSentence(ctx context.Context, rng *rand.Rand) (SentencePair, error)
	// PutSentence inserts a pair, deduplicating on (source_text, target_norm).
	// The bool reports whether a new row was inserted.
	PutSentence(ctx context.Context, source, target, targetNorm string) (int64, bool, error)
	CountSentences(ctx context.Context) (int64, error)
	// EachSentence visits every stored pair in id order. Used by the
	// inventory build; fn returning an error stops the walk.
	EachSentence(ctx context.Context, fn func(SentencePair) error) error
}

// Inventory is the distractor source. QueryDistractors returns surfaces with
// the given pos_major (and inflection_form, when non-empty) that are not in
// exclude, ordered by descending corpus frequency, at most limit of them.
// Randomized final selection is the selector's job, not the inventory's.
type Inventory interface {
	QueryDistractors(ctx context.Context, posMajor, inflectionForm string, exclude map[string]struct{}, limit int) ([]string, error)
	// UpsertToken records one occurrence of a token, incrementing frequency
	// for an existing (surface, pos_major, inflection_form) row. Ingestion
	// only; never called during exercise generation.
	UpsertToken(ctx context.Context, tok tokenizer.Token) error
	CountTokens(ctx context.Context) (int64, error)
}

package exercise

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/grading"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

// ErrUnavailable signals that no exercise could be produced for the request.
// The delivery layer maps it to a not-found condition; callers retry with a
// different sentence.
var ErrUnavailable = errors.New("no exercise available")

// randomRetries bounds how many sentences a random request tries before
// giving up; each pick stays on the same rng stream, so a fixed seed still
// yields a deterministic result.
const randomRetries = 5

// Service composes the store, the tokenizer, and the builder into the
// operations the delivery layer calls. Every operation derives its own rng
// from the request seed — there is no shared generator, so concurrent calls
// do not perturb each other's reproducibility.
type Service struct {
	Store   corpus.Store
	Tok     tokenizer.Tokenizer
	Builder Builder
}

func NewService(store corpus.Store, inv corpus.Inventory, tok tokenizer.Tokenizer) *Service {
	return &Service{
		Store:   store,
		Tok:     tok,
		Builder: NewBuilder(inv),
	}
}

func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Random builds an exercise from a randomly chosen sentence. Unsuitable
// sentences (over-length, punctuation-only) are skipped and another pick is
// made, up to randomRetries.
func (s *Service) Random(ctx context.Context, seed *int64) (*Exercise, error) {
	rng := newRNG(seed)
	for i := 0; i < randomRetries; i++ {
		pair, err := s.Store.GetRandomSentence(ctx, rng)
		if err != nil {
			if errors.Is(err, corpus.ErrNotFound) {
				return nil, ErrUnavailable
			}
			return nil, err
		}
		ex, ok := s.build(ctx, pair, rng)
		if ok {
			return ex, nil
		}
	}
	return nil, ErrUnavailable
}

// ByID builds the exercise for a specific sentence.
func (s *Service) ByID(ctx context.Context, id int64, seed *int64) (*Exercise, error) {
	pair, err := s.Store.GetSentence(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	ex, ok := s.build(ctx, pair, newRNG(seed))
	if !ok {
		return nil, ErrUnavailable
	}
	return ex, nil
}

func (s *Service) build(ctx context.Context, pair corpus.SentencePair, rng *rand.Rand) (*Exercise, bool) {
	toks, err := s.Tok.Tokenize(pair.TargetText)
	if err != nil {
		return nil, false
	}
	return s.Builder.Build(ctx, pair, toks, rng)
}

// Grade grades an answer against the sentence underlying an exercise. The
// canonical answer is recomputed from stored state, never persisted per
// exercise.
func (s *Service) Grade(ctx context.Context, exerciseID int64, answer string) (grading.Result, error) {
	pair, err := s.Store.GetSentence(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return grading.Result{}, ErrUnavailable
		}
		return grading.Result{}, err
	}
	return grading.Grade(answer, pair.TargetNorm), nil
}

package exercise

import (
	"context"
	"math/rand"

	"github.com/kumitate-app/kumitate/internal/corpus"
)

// poolFactor sizes the frequency-ranked candidate pool relative to the
// requested limit. Pure frequency order would surface the same top-N wrong
// answers on every exercise; sampling from a frequency-biased pool keeps
// distractors both plausible and varied.
const poolFactor = 2

// Selector draws ranked, deduplicated distractor surfaces from the inventory.
type Selector struct {
	Inventory corpus.Inventory
}

// Select returns up to limit surfaces with the given pos_major (and, when
// non-empty, the same inflection form), drawn without replacement from the
// top poolFactor*limit candidates by corpus frequency using the caller's
// seeded rng. Scarcity and inventory failures degrade to a shorter list,
// never an error, and no returned surface is in exclude.
func (s Selector) Select(ctx context.Context, posMajor, inflectionForm string, exclude map[string]struct{}, limit int, rng *rand.Rand) []string {
	if limit <= 0 {
		return nil
	}
	candidates, err := s.Inventory.QueryDistractors(ctx, posMajor, inflectionForm, exclude, limit*poolFactor)
	if err != nil || len(candidates) == 0 {
		return nil
	}

	// The inventory is unique per (surface, pos_major, inflection_form), so
	// the same surface can appear under two forms when inflectionForm is
	// empty. Collapse to distinct surfaces, keeping rank order.
	seen := make(map[string]struct{}, len(candidates))
	pool := candidates[:0]
	for _, surface := range candidates {
		if _, dup := seen[surface]; dup {
			continue
		}
		if _, skip := exclude[surface]; skip {
			continue
		}
		seen[surface] = struct{}{}
		pool = append(pool, surface)
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

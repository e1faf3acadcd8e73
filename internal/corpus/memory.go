package corpus

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

// MemoryStore is an in-memory Store + Inventory for tests and demos.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	sentences map[int64]SentencePair
	dedup     map[[2]string]int64 // (source_text, target_norm) -> id
	tokens    map[[3]string]*inventoryRow
}

type inventoryRow struct {
	entry InventoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		sentences: map[int64]SentencePair{},
		dedup:     map[[2]string]int64{},
		tokens:    map[[3]string]*inventoryRow{},
	}
}

func (m *MemoryStore) GetSentence(_ context.Context, id int64) (SentencePair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.sentences[id]
	if !ok {
		return SentencePair{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) GetRandomSentence(_ context.Context, rng *rand.Rand) (SentencePair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.sentences) == 0 {
		return SentencePair{}, ErrNotFound
	}
	ids := make([]int64, 0, len(m.sentences))
	for id := range m.sentences {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return m.sentences[ids[rng.Intn(len(ids))]], nil
}

func (m *MemoryStore) PutSentence(_ context.Context, source, target, targetNorm string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{source, targetNorm}
	if _, dup := m.dedup[key]; dup {
		return 0, false, nil
	}
	id := m.nextID
	m.nextID++
	m.sentences[id] = SentencePair{ID: id, SourceText: source, TargetText: target, TargetNorm: targetNorm}
	m.dedup[key] = id
	return id, true, nil
}

func (m *MemoryStore) CountSentences(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.sentences)), nil
}

func (m *MemoryStore) EachSentence(_ context.Context, fn func(SentencePair) error) error {
	m.mu.RLock()
	ids := make([]int64, 0, len(m.sentences))
	for id := range m.sentences {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	pairs := make([]SentencePair, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, m.sentences[id])
	}
	m.mu.RUnlock()

	for _, p := range pairs {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) UpsertToken(_ context.Context, tok tokenizer.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [3]string{tok.Surface, tok.POSMajor, tok.InflectionForm}
	if row, ok := m.tokens[key]; ok {
		row.entry.Frequency++
		return nil
	}
	m.tokens[key] = &inventoryRow{entry: InventoryEntry{
		Surface:        tok.Surface,
		POSMajor:       tok.POSMajor,
		InflectionForm: tok.InflectionForm,
		Frequency:      1,
	}}
	return nil
}

func (m *MemoryStore) CountTokens(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.tokens)), nil
}

func (m *MemoryStore) QueryDistractors(_ context.Context, posMajor, inflectionForm string, exclude map[string]struct{}, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []InventoryEntry
	for _, row := range m.tokens {
		e := row.entry
		if e.POSMajor != posMajor {
			continue
		}
		if inflectionForm != "" && e.InflectionForm != inflectionForm {
			continue
		}
		if _, skip := exclude[e.Surface]; skip {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Frequency != matched[j].Frequency {
			return matched[i].Frequency > matched[j].Frequency
		}
		return matched[i].Surface < matched[j].Surface
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]string, 0, len(matched))
	for _, e := range matched {
		out = append(out, e.Surface)
	}
	return out, nil
}

package exercise

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

type failingInventory struct{}

func (failingInventory) QueryDistractors(context.Context, string, string, map[string]struct{}, int) ([]string, error) {
	return nil, errors.New("inventory down")
}
func (failingInventory) UpsertToken(context.Context, tokenizer.Token) error { return nil }
func (failingInventory) CountTokens(context.Context) (int64, error)         { return 0, nil }

func TestSelectRespectsLimitAndExclude(t *testing.T) {
	inv := corpus.NewMemoryStore()
	ctx := context.Background()
	for _, s := range []string{"犬", "鳥", "魚", "本", "水", "空"} {
		require.NoError(t, inv.UpsertToken(ctx, tokenizer.Token{Surface: s, POSMajor: "名詞"}))
	}
	sel := Selector{Inventory: inv}
	exclude := map[string]struct{}{"犬": {}, "鳥": {}}

	got := sel.Select(ctx, "名詞", "", exclude, 3, rand.New(rand.NewSource(1)))
	assert.LessOrEqual(t, len(got), 3)
	seen := map[string]bool{}
	for _, s := range got {
		assert.NotContains(t, exclude, s)
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
}

func TestSelectScarcityReturnsFewer(t *testing.T) {
	inv := corpus.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, inv.UpsertToken(ctx, tokenizer.Token{Surface: "犬", POSMajor: "名詞"}))

	sel := Selector{Inventory: inv}
	got := sel.Select(ctx, "名詞", "", nil, 5, rand.New(rand.NewSource(1)))
	assert.Equal(t, []string{"犬"}, got)
}

func TestSelectNeverCrossesCategory(t *testing.T) {
	inv := corpus.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, inv.UpsertToken(ctx, tokenizer.Token{Surface: "走る", POSMajor: "動詞", InflectionForm: "基本形"}))
	require.NoError(t, inv.UpsertToken(ctx, tokenizer.Token{Surface: "犬", POSMajor: "名詞"}))

	sel := Selector{Inventory: inv}
	got := sel.Select(ctx, "形容詞", "", nil, 5, rand.New(rand.NewSource(1)))
	assert.Empty(t, got)
}

func TestSelectMatchesInflectionForm(t *testing.T) {
	inv := corpus.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, inv.UpsertToken(ctx, tokenizer.Token{Surface: "走っ", POSMajor: "動詞", InflectionForm: "連用タ接続"}))
	require.NoError(t, inv.UpsertToken(ctx, tokenizer.Token{Surface: "歩く", POSMajor: "動詞", InflectionForm: "基本形"}))

	sel := Selector{Inventory: inv}
	got := sel.Select(ctx, "動詞", "基本形", nil, 5, rand.New(rand.NewSource(1)))
	assert.Equal(t, []string{"歩く"}, got)
}

func TestSelectInventoryFailureDegrades(t *testing.T) {
	sel := Selector{Inventory: failingInventory{}}
	got := sel.Select(context.Background(), "名詞", "", nil, 3, rand.New(rand.NewSource(1)))
	assert.Empty(t, got)
}

func TestSelectZeroLimit(t *testing.T) {
	sel := Selector{Inventory: corpus.NewMemoryStore()}
	got := sel.Select(context.Background(), "名詞", "", nil, 0, rand.New(rand.NewSource(1)))
	assert.Empty(t, got)
}

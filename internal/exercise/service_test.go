package exercise

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/textnorm"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

// fakeTokenizer splits on the sentences it was told about; anything else
// yields no tokens.
type fakeTokenizer struct {
	byText map[string][]tokenizer.Token
}

func (f fakeTokenizer) Tokenize(text string) ([]tokenizer.Token, error) {
	return f.byText[text], nil
}

func newTestService(t *testing.T) (*Service, *corpus.MemoryStore) {
	t.Helper()
	store := corpus.NewMemoryStore()
	ctx := context.Background()

	target := "私は猫が好きです。"
	_, inserted, err := store.PutSentence(ctx, "I like cats.", target, textnorm.Normalize(target))
	require.NoError(t, err)
	require.True(t, inserted)

	_, toks := catSentence()
	svc := NewService(store, store, fakeTokenizer{byText: map[string][]tokenizer.Token{target: toks}})
	return svc, store
}

func TestServiceRandomReproducible(t *testing.T) {
	svc, _ := newTestService(t)
	seed := int64(99)

	first, err := svc.Random(context.Background(), &seed)
	require.NoError(t, err)
	second, err := svc.Random(context.Background(), &seed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestServiceRandomEmptyCorpus(t *testing.T) {
	store := corpus.NewMemoryStore()
	svc := NewService(store, store, fakeTokenizer{})
	_, err := svc.Random(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestServiceByID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ex, err := svc.ByID(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ex.ID)
	assert.Equal(t, "I like cats.", ex.Prompt)
	assert.Equal(t, "私は猫が好きです", ex.CanonicalAnswer)

	_, err = svc.ByID(ctx, 404, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestServiceGrade(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Grade(ctx, 1, "私 は 猫 が 好き です 。")
	require.NoError(t, err)
	assert.True(t, res.Correct)

	res, err = svc.Grade(ctx, 1, "私は犬が好きです。")
	require.NoError(t, err)
	assert.False(t, res.Correct)

	_, err = svc.Grade(ctx, 404, "なに")
	assert.ErrorIs(t, err, ErrUnavailable)
}

// A mid-sentence comma must grade the same whether the learner's tiles carry
// it or not: the tokenizer emits it as a 記号 morpheme, the builder drops it,
// and normalization removes it from both sides of the comparison. Full-width
// ，folds to ASCII , under NFKC before stripping, so both forms are covered.
func TestServiceGradeCommaSentence(t *testing.T) {
	store := corpus.NewMemoryStore()
	ctx := context.Background()

	target := "はい，そうです。"
	_, inserted, err := store.PutSentence(ctx, "Yes, that's right.", target, textnorm.Normalize(target))
	require.NoError(t, err)
	require.True(t, inserted)

	toks := []tokenizer.Token{
		{Surface: "はい", POSMajor: "感動詞"},
		{Surface: "，", POSMajor: "記号", POSMinor: "読点"},
		{Surface: "そう", POSMajor: "副詞"},
		{Surface: "です", POSMajor: "助動詞"},
		{Surface: "。", POSMajor: "記号", POSMinor: "句点"},
	}
	svc := NewService(store, store, fakeTokenizer{byText: map[string][]tokenizer.Token{target: toks}})

	ex, err := svc.ByID(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"はい", "そう", "です"}, ex.CanonicalSurfaces)
	assert.Equal(t, "はいそうです", ex.CanonicalAnswer)

	// Rebuild the answer from the correct tiles in canonical order, the way
	// the client submits them.
	parts := make([]string, len(ex.CanonicalSurfaces))
	for _, tile := range ex.Tiles {
		if tile.Correct {
			parts[tile.CanonicalIndex] = tile.Surface
		}
	}
	res, err := svc.Grade(ctx, 1, strings.Join(parts, ""))
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestServiceRandomSkipsUnsuitableSentences(t *testing.T) {
	store := corpus.NewMemoryStore()
	ctx := context.Background()

	// The only sentence tokenizes to nothing, so every pick is rejected.
	_, _, err := store.PutSentence(ctx, "???", "???", textnorm.Normalize("???"))
	require.NoError(t, err)

	svc := NewService(store, store, fakeTokenizer{})
	_, err = svc.Random(ctx, nil)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

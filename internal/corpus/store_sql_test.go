package corpus_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/db"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

func openTestStore(t *testing.T) *corpus.SQLStore {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.TempDir()+"/test.db?mode=rwc&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return corpus.NewSQLStore(dbh)
}

func TestSentenceRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, inserted, err := store.PutSentence(ctx, "I like cats.", "私は猫が好きです。", "私は猫が好きです")
	if err != nil {
		t.Fatalf("PutSentence: %v", err)
	}
	if !inserted {
		t.Fatal("expected insert")
	}

	pair, err := store.GetSentence(ctx, id)
	if err != nil {
		t.Fatalf("GetSentence: %v", err)
	}
	if pair.SourceText != "I like cats." || pair.TargetNorm != "私は猫が好きです" {
		t.Errorf("unexpected pair: %+v", pair)
	}

	// Duplicate insert is a no-op.
	_, inserted, err = store.PutSentence(ctx, "I like cats.", "私は猫が好きです。", "私は猫が好きです")
	if err != nil {
		t.Fatalf("PutSentence dup: %v", err)
	}
	if inserted {
		t.Error("duplicate should not insert")
	}
	n, err := store.CountSentences(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	if _, err := store.GetSentence(ctx, 9999); err != corpus.ErrNotFound {
		t.Errorf("missing sentence: err = %v, want ErrNotFound", err)
	}
}

func TestGetRandomSentence(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.GetRandomSentence(ctx, rand.New(rand.NewSource(1))); err != corpus.ErrNotFound {
		t.Fatalf("empty corpus: err = %v, want ErrNotFound", err)
	}

	for _, s := range []string{"猫。", "犬。", "鳥。"} {
		if _, _, err := store.PutSentence(ctx, "x "+s, s, s); err != nil {
			t.Fatal(err)
		}
	}

	first, err := store.GetRandomSentence(ctx, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("GetRandomSentence: %v", err)
	}
	second, err := store.GetRandomSentence(ctx, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("same seed picked different sentences: %d vs %d", first.ID, second.ID)
	}
}

func TestQueryDistractors(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	upsert := func(surface, form string, times int) {
		t.Helper()
		for i := 0; i < times; i++ {
			err := store.UpsertToken(ctx, tokenizer.Token{
				Surface: surface, Lemma: surface, POSMajor: "動詞", InflectionForm: form,
			})
			if err != nil {
				t.Fatalf("UpsertToken(%s): %v", surface, err)
			}
		}
	}
	upsert("歩く", "基本形", 5)
	upsert("走る", "基本形", 3)
	upsert("食べる", "基本形", 1)
	upsert("走っ", "連用タ接続", 4)
	if err := store.UpsertToken(ctx, tokenizer.Token{Surface: "猫", POSMajor: "名詞"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.QueryDistractors(ctx, "動詞", "基本形", nil, 10)
	if err != nil {
		t.Fatalf("QueryDistractors: %v", err)
	}
	want := []string{"歩く", "走る", "食べる"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frequency order: got %v, want %v", got, want)
		}
	}

	got, err = store.QueryDistractors(ctx, "動詞", "基本形", map[string]struct{}{"歩く": {}}, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range got {
		if s == "歩く" {
			t.Error("excluded surface returned")
		}
	}

	got, err = store.QueryDistractors(ctx, "動詞", "", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("limit not applied: got %v", got)
	}

	got, err = store.QueryDistractors(ctx, "形容詞", "", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("cross-category leak: got %v", got)
	}
}

func TestEachSentence(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, s := range []string{"猫。", "犬。"} {
		if _, _, err := store.PutSentence(ctx, "x "+s, s, s); err != nil {
			t.Fatal(err)
		}
	}
	var seen []int64
	err := store.EachSentence(ctx, func(p corpus.SentencePair) error {
		seen = append(seen, p.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("EachSentence: %v", err)
	}
	if len(seen) != 2 || seen[0] >= seen[1] {
		t.Errorf("unexpected walk order: %v", seen)
	}
}

package tokenizer

import "testing"

func TestKagomeTokenize(t *testing.T) {
	tk, err := NewKagome()
	if err != nil {
		t.Fatalf("NewKagome: %v", err)
	}

	toks, err := tk.Tokenize("私は猫が好きです。")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected tokens, got none")
	}

	var joined string
	for _, tok := range toks {
		joined += tok.Surface
		if tok.POSMajor == "" {
			t.Errorf("token %q has empty POSMajor", tok.Surface)
		}
	}
	if joined != "私は猫が好きです。" {
		t.Errorf("surfaces do not reassemble the sentence: %q", joined)
	}

	// First morpheme should be the noun 私.
	if toks[0].Surface != "私" {
		t.Errorf("first surface = %q, want 私", toks[0].Surface)
	}
	if toks[0].POSMajor != "名詞" {
		t.Errorf("first POSMajor = %q, want 名詞", toks[0].POSMajor)
	}
}

func TestKagomeTokenizeEmpty(t *testing.T) {
	tk, err := NewKagome()
	if err != nil {
		t.Fatalf("NewKagome: %v", err)
	}
	toks, err := tk.Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 0 {
		t.Errorf("expected no tokens for empty input, got %d", len(toks))
	}
}

package ingest

import (
	"context"
	"io"
	"log"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/textnorm"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

// Outcome records what happened to a single input pair: inserted, or skipped
// with a reason. No pair can fail ingestion fatally.
type Outcome struct {
	Line     int
	Inserted bool
	Reason   string // skip reason, empty when inserted
}

// Stats summarizes an ingestion or inventory run.
type Stats struct {
	Total    int
	Inserted int
	Skipped  map[string]int
}

func newStats() Stats { return Stats{Skipped: map[string]int{}} }

func (s *Stats) record(o Outcome) {
	s.Total++
	if o.Inserted {
		s.Inserted++
		return
	}
	s.Skipped[o.Reason]++
}

// Pipeline wires the corpus store, the inventory, and the tokenizer for
// ingestion-time writes. Exercise generation never goes through here.
type Pipeline struct {
	Store     corpus.Store
	Inventory corpus.Inventory
	Tok       tokenizer.Tokenizer
}

// IngestPairs reads source/target TSV rows, applies the quality filters,
// normalizes the target side, and inserts the survivors. Duplicates (same
// source and normalized target) are counted, not errors. The optional each
// callback observes every Outcome.
func (p *Pipeline) IngestPairs(ctx context.Context, r io.Reader, each func(Outcome)) (Stats, error) {
	stats := newStats()
	line := 0
	err := eachRow(r, func(source, target string, ok bool) error {
		line++
		out := Outcome{Line: line}
		switch {
		case !ok:
			out.Reason = ReasonMalformedRow
		default:
			if reason := checkPair(source, target); reason != "" {
				out.Reason = reason
				break
			}
			norm := textnorm.Normalize(target)
			_, inserted, err := p.Store.PutSentence(ctx, source, target, norm)
			if err != nil {
				return err
			}
			if inserted {
				out.Inserted = true
			} else {
				out.Reason = ReasonDuplicate
			}
		}
		stats.record(out)
		if each != nil {
			each(out)
		}
		return nil
	})
	return stats, err
}

// BuildInventory tokenizes every stored sentence and upserts each morpheme
// into the token inventory, incrementing frequency on repeats. A sentence
// whose tokenization fails is skipped and counted; the build continues.
func (p *Pipeline) BuildInventory(ctx context.Context) (Stats, error) {
	stats := newStats()
	err := p.Store.EachSentence(ctx, func(pair corpus.SentencePair) error {
		out := Outcome{Line: int(pair.ID)}
		toks, err := p.Tok.Tokenize(pair.TargetText)
		if err != nil {
			log.Printf("ingest: tokenize sentence %d: %v", pair.ID, err)
			out.Reason = ReasonTokenizeError
			stats.record(out)
			return nil
		}
		for _, tok := range toks {
			if textnorm.IsPunctuation(tok.Surface) {
				continue
			}
			if err := p.Inventory.UpsertToken(ctx, tok); err != nil {
				return err
			}
		}
		out.Inserted = true
		stats.record(out)
		return nil
	})
	return stats, err
}

package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

// SQLStore implements Store and Inventory over database/sql. Works with the
// sqlite and postgres drivers wired in internal/db; $N placeholders are
// understood by both.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) GetSentence(ctx context.Context, id int64) (SentencePair, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_text, target_text, target_norm FROM sentences WHERE id=$1`, id)
	var p SentencePair
	if err := row.Scan(&p.ID, &p.SourceText, &p.TargetText, &p.TargetNorm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SentencePair{}, ErrNotFound
		}
		return SentencePair{}, err
	}
	return p, nil
}

func (s *SQLStore) GetRandomSentence(ctx context.Context, rng *rand.Rand) (SentencePair, error) {
	count, err := s.CountSentences(ctx)
	if err != nil {
		return SentencePair{}, err
	}
	if count == 0 {
		return SentencePair{}, ErrNotFound
	}
	offset := rng.Int63n(count)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_text, target_text, target_norm FROM sentences ORDER BY id LIMIT 1 OFFSET $1`, offset)
	var p SentencePair
	if err := row.Scan(&p.ID, &p.SourceText, &p.TargetText, &p.TargetNorm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SentencePair{}, ErrNotFound
		}
		return SentencePair{}, err
	}
	return p, nil
}

func (s *SQLStore) PutSentence(ctx context.Context, source, target, targetNorm string) (int64, bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sentences (source_text, target_text, target_norm, created_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (source_text, target_norm) DO NOTHING`,
		source, target, targetNorm, time.Now().Unix())
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil // duplicate
	}
	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM sentences WHERE source_text=$1 AND target_norm=$2`,
		source, targetNorm).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *SQLStore) CountSentences(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sentences`).Scan(&n)
	return n, err
}

func (s *SQLStore) EachSentence(ctx context.Context, fn func(SentencePair) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, target_text, target_norm FROM sentences ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p SentencePair
		if err := rows.Scan(&p.ID, &p.SourceText, &p.TargetText, &p.TargetNorm); err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLStore) UpsertToken(ctx context.Context, tok tokenizer.Token) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tokens (surface, lemma, pos_major, pos_minor, inflection_type, inflection_form, reading, frequency)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,1)
		 ON CONFLICT (surface, pos_major, inflection_form) DO UPDATE SET frequency = tokens.frequency + 1`,
		tok.Surface, tok.Lemma, tok.POSMajor, tok.POSMinor, tok.InflectionType, tok.InflectionForm, tok.Reading)
	return err
}

func (s *SQLStore) CountTokens(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens`).Scan(&n)
	return n, err
}

// QueryDistractors returns up to limit surfaces ordered by descending
// frequency. The surface tiebreak keeps the ordering deterministic so that a
// fixed seed reproduces the same exercise against the same snapshot.
func (s *SQLStore) QueryDistractors(ctx context.Context, posMajor, inflectionForm string, exclude map[string]struct{}, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	var sb strings.Builder
	sb.WriteString(`SELECT surface FROM tokens WHERE pos_major=$1`)
	args := []any{posMajor}

	if len(exclude) > 0 {
		ph := make([]string, 0, len(exclude))
		for surface := range exclude {
			args = append(args, surface)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		sb.WriteString(` AND surface NOT IN (` + strings.Join(ph, ",") + `)`)
	}
	if inflectionForm != "" {
		args = append(args, inflectionForm)
		sb.WriteString(fmt.Sprintf(` AND inflection_form=$%d`, len(args)))
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(` ORDER BY frequency DESC, surface LIMIT $%d`, len(args)))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var surface string
		if err := rows.Scan(&surface); err != nil {
			return nil, err
		}
		out = append(out, surface)
	}
	return out, rows.Err()
}

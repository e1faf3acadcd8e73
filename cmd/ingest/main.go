package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/db"
	"github.com/kumitate-app/kumitate/internal/ingest"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
)

var (
	flagDriver string
	flagDSN    string
)

func openStore(ctx context.Context) (*corpus.SQLStore, error) {
	dbh, err := db.Open(ctx, db.Driver(flagDriver), flagDSN)
	if err != nil {
		return nil, err
	}
	return corpus.NewSQLStore(dbh), nil
}

func printStats(label string, stats ingest.Stats) {
	fmt.Printf("%s: %d processed, %d inserted\n", label, stats.Total, stats.Inserted)
	reasons := make([]string, 0, len(stats.Skipped))
	for r := range stats.Skipped {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  skipped %-16s %d\n", r, stats.Skipped[r])
	}
}

func main() {
	root := &cobra.Command{
		Use:          "ingest",
		Short:        "Load bilingual corpora and build the token inventory",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagDriver, "driver", "sqlite", "database driver (sqlite|postgres)")
	root.PersistentFlags().StringVar(&flagDSN, "dsn", "", "database DSN (driver default when empty)")

	sentences := &cobra.Command{
		Use:   "sentences <file.tsv[.gz]>",
		Short: "Ingest a source/target TSV corpus into the sentence store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			f, err := ingest.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p := &ingest.Pipeline{Store: store, Inventory: store}
			stats, err := p.IngestPairs(ctx, f, nil)
			if err != nil {
				return err
			}
			printStats("sentences", stats)
			return nil
		},
	}

	inventory := &cobra.Command{
		Use:   "inventory",
		Short: "Tokenize stored sentences and (re)build the token inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			tok, err := tokenizer.NewKagome()
			if err != nil {
				return err
			}
			p := &ingest.Pipeline{Store: store, Inventory: store, Tok: tok}
			stats, err := p.BuildInventory(ctx)
			if err != nil {
				return err
			}
			printStats("inventory", stats)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print corpus and inventory sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			nSentences, err := store.CountSentences(ctx)
			if err != nil {
				return err
			}
			nTokens, err := store.CountTokens(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("sentences: %d\ntokens:    %d\n", nSentences, nTokens)
			return nil
		},
	}

	root.AddCommand(sentences, inventory, stats)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

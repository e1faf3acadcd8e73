package http

import (
	"encoding/json"
	"net/http"

	"github.com/kumitate-app/kumitate/internal/corpus"
)

// StatsHandler serves GET /admin/stats: corpus and inventory sizes.
func StatsHandler(store corpus.Store, inv corpus.Inventory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sentences, err := store.CountSentences(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tokens, err := inv.CountTokens(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int64{
			"sentences": sentences,
			"tokens":    tokens,
		})
	}
}

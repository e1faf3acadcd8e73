// Package http holds the JSON handlers the gateway mounts. Handlers are thin:
// decode, call the service, map errors to status codes, encode.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kumitate-app/kumitate/internal/exercise"
)

// seedParam parses the optional ?seed= query parameter.
func seedParam(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetExerciseHandler serves GET /exercise — a fresh exercise from a random
// sentence. A seed makes the whole exercise reproducible.
func GetExerciseHandler(svc *exercise.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed, err := seedParam(r)
		if err != nil {
			http.Error(w, "bad seed", http.StatusBadRequest)
			return
		}
		ex, err := svc.Random(r.Context(), seed)
		if err != nil {
			if errors.Is(err, exercise.ErrUnavailable) {
				http.Error(w, "no exercises available", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ex.View())
	}
}

// GetExerciseByIDHandler serves GET /exercise/{exerciseID}.
func GetExerciseByIDHandler(svc *exercise.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "exerciseID"), 10, 64)
		if err != nil {
			http.Error(w, "bad exercise id", http.StatusBadRequest)
			return
		}
		seed, err := seedParam(r)
		if err != nil {
			http.Error(w, "bad seed", http.StatusBadRequest)
			return
		}
		ex, err := svc.ByID(r.Context(), id, seed)
		if err != nil {
			if errors.Is(err, exercise.ErrUnavailable) {
				http.Error(w, "exercise not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ex.View())
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kumitate-app/kumitate/internal/exercise"
)

// GradeHandler serves POST /grade. The canonical answer is recomputed from
// the stored sentence; nothing about the exercise is persisted between the
// fetch and the grade.
func GradeHandler(svc *exercise.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ExerciseID int64  `json:"exercise_id"`
			Answer     string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := svc.Grade(r.Context(), req.ExerciseID, req.Answer)
		if err != nil {
			if errors.Is(err, exercise.ErrUnavailable) {
				http.Error(w, "exercise not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

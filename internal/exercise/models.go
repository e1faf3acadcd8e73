// Package exercise builds tile exercises from tokenized sentence pairs and
// exposes them to the delivery layer. The engine is stateless per call: an
// exercise is constructed on demand, serialized, and discarded; the same
// sentence and seed always rebuild the identical exercise.
package exercise

// Tile is one draggable unit of text shown to the learner: either part of
// the correct answer or a distractor.
type Tile struct {
	Surface string `json:"surface"`
	Correct bool   `json:"is_correct"`
	// CanonicalIndex is the tile's position in the canonical token sequence,
	// 0..N-1 for correct tiles and -1 for distractors.
	CanonicalIndex int `json:"canonical_index"`
}

// Exercise is a complete tile exercise. Tiles are owned by the exercise and
// hold no reference back to the sentence or tokenizer.
type Exercise struct {
	ID                int64    `json:"id"`
	Prompt            string   `json:"prompt"`
	Tiles             []Tile   `json:"tiles"`
	CanonicalAnswer   string   `json:"canonical_answer"`
	CanonicalSurfaces []string `json:"canonical_token_surfaces"`
}

// TileView is the client-facing shape of a tile. Identity is positional;
// whether a tile is correct is deliberately hidden.
type TileView struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// View is the JSON surface served to the delivery layer.
type View struct {
	ExerciseID      int64      `json:"exercise_id"`
	Prompt          string     `json:"prompt"`
	Tiles           []TileView `json:"tiles"`
	NumCorrectTiles int        `json:"num_correct_tiles"`
}

// View converts the exercise into its client-facing shape.
func (e *Exercise) View() View {
	tiles := make([]TileView, len(e.Tiles))
	for i, t := range e.Tiles {
		tiles[i] = TileView{ID: i, Text: t.Surface}
	}
	return View{
		ExerciseID:      e.ID,
		Prompt:          e.Prompt,
		Tiles:           tiles,
		NumCorrectTiles: len(e.CanonicalSurfaces),
	}
}

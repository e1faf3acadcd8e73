// Package corpus holds the sentence-pair store and the token inventory the
// exercise engine draws distractors from. The engine only reads; all writes
// happen at ingestion time.
package corpus

// SentencePair is a bilingual sentence pair. TargetNorm is the canonicalized
// target sentence computed at ingestion time and used as the grading ground
// truth; re-normalizing TargetText must yield TargetNorm.
type SentencePair struct {
	ID         int64  `json:"id"`
	SourceText string `json:"source_text"`
	TargetText string `json:"target_text"`
	TargetNorm string `json:"target_text_normalized"`
}

// InventoryEntry is one row of the token inventory, unique per
// (surface, pos_major, inflection_form). Frequency counts occurrences across
// the ingested corpus and ranks distractor candidates.
type InventoryEntry struct {
	Surface        string `json:"surface"`
	POSMajor       string `json:"pos_major"`
	InflectionForm string `json:"inflection_form"`
	Frequency      int64  `json:"frequency"`
}

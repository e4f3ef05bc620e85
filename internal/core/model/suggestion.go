package model

// EntitySuggestion is the detector's structured result: a named character or
// location spotted in freshly typed prose and absent from the roster. At most
// one unaccepted suggestion exists at a time.
type EntitySuggestion struct {
	Found       bool   `json:"found"`
	Kind        Kind   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

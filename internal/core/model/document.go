package model

// Beat is the smallest narrative unit inside a chapter. Draft holds the
// prose written against it, if any.
type Beat struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Draft       string `json:"draft,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
}

// Chapter holds an ordered sequence of beats. Order is narrative order and
// is preserved by every store operation.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Beats []Beat `json:"beats"`
}

// LoreEntry is a categorized worldbuilding fact, supplied as context to
// every generative call.
type LoreEntry struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Document is a whole-store snapshot: the unit of API reads, project
// persistence and analysis input.
type Document struct {
	Chapters   []Chapter     `json:"chapters"`
	Characters []Character   `json:"characters"`
	Locations  []Location    `json:"locations"`
	Lore       []LoreEntry   `json:"lore"`
	Scratchpad string        `json:"scratchpad"`
	Settings   WorldSettings `json:"settings"`
}

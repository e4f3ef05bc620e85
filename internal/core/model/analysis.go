package model

// StoryAnalysis is the result of a full-manuscript consistency pass. It is
// ephemeral: replaced wholesale on each run, never merged, and nothing in it
// reaches the canonical collections until explicitly inscribed.
type StoryAnalysis struct {
	Consistency        string              `json:"consistency"`
	Suggestions        []string            `json:"suggestions"`
	SuggestedBeats     []ProposedBeat      `json:"suggested_beats"`
	ChapterFlow        string              `json:"chapter_flow"`
	ProposedLore       []ProposedLore      `json:"proposed_lore"`
	ProposedCharacters []ProposedCharacter `json:"proposed_characters"`
	ProposedLocations  []ProposedLocation  `json:"proposed_locations"`
}

type ProposedBeat struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProposedLore struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

type ProposedCharacter struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Rationale   string   `json:"rationale"`
}

type ProposedLocation struct {
	Name        string `json:"name"`
	Atmosphere  string `json:"atmosphere"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
}

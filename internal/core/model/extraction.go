package model

// ExtractedManuscript is the structured result of importing a plain-text
// manuscript. None of its objects carry ids: the store mints fresh ones on
// merge so an import can never collide with pre-existing data.
type ExtractedManuscript struct {
	Chapters   []ExtractedChapter   `json:"chapters"`
	Characters []ExtractedCharacter `json:"characters"`
	Locations  []ExtractedLocation  `json:"locations"`
}

type ExtractedChapter struct {
	Title string          `json:"title"`
	Beats []ExtractedBeat `json:"beats"`
}

type ExtractedBeat struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Draft       string `json:"draft"`
}

type ExtractedCharacter struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
}

type ExtractedLocation struct {
	Name        string `json:"name"`
	Atmosphere  string `json:"atmosphere"`
	Description string `json:"description"`
}

package model

// Kind discriminates the top-level collections for generic operations like
// deletion and proposal acceptance.
type Kind string

const (
	KindCharacter Kind = "character"
	KindLocation  Kind = "location"
	KindLore      Kind = "lore"
	KindChapter   Kind = "chapter"
)

// DefaultRole is assigned to characters created without an explicit role,
// including every accepted suggestion.
const DefaultRole = "Secondary"

type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	ImageURL    string   `json:"image_url,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`
}

type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Atmosphere  string `json:"atmosphere"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Rationale   string `json:"rationale,omitempty"`
}

package model

// WorldSettings parameterizes every generative request. Levels are 0-100.
type WorldSettings struct {
	Genre          string `json:"genre"`
	FantasyLevel   int    `json:"fantasy_level"`
	TechLevel      int    `json:"tech_level"`
	Tone           string `json:"tone"`
	ProseStyle     string `json:"prose_style"`
	Language       string `json:"language"`
	CriticismLevel int    `json:"criticism_level"`
}

func DefaultSettings() WorldSettings {
	return WorldSettings{
		Genre:          "Fantasy",
		FantasyLevel:   50,
		TechLevel:      30,
		Tone:           "Hopeful",
		ProseStyle:     "Evocative",
		Language:       "English",
		CriticismLevel: 50,
	}
}

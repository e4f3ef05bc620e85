// Package analysis runs the full-manuscript consistency pass. The result is
// a derived artifact: it replaces the previous one wholesale and none of it
// becomes canonical until the user inscribes an item.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core/common"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/inkwellhq/inkwell/internal/llm"
)

type Analyzer struct {
	LLM     llm.TextClient
	Prompts config.AnalysisPrompts
}

func NewAnalyzer(llmClient llm.TextClient, prompts config.AnalysisPrompts) *Analyzer {
	return &Analyzer{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Analyze sends the manuscript plus the full document state and world
// settings to the gateway and parses the structured critique.
func (a *Analyzer) Analyze(ctx context.Context, manuscript string, doc model.Document) (*model.StoryAnalysis, error) {
	prompt := fmt.Sprintf(a.Prompts.Plot,
		settingsContext(doc.Settings),
		stateContext(doc),
		manuscript,
	)

	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	result, err := common.ParseJSON[model.StoryAnalysis](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	return &result, nil
}

func settingsContext(ws model.WorldSettings) string {
	return fmt.Sprintf(
		"Genre: %s\nFantasy level: %d/100\nTech level: %d/100\nTone: %s\nProse style: %s\nLanguage: %s\nCriticism level: %d/100",
		ws.Genre, ws.FantasyLevel, ws.TechLevel, ws.Tone, ws.ProseStyle, ws.Language, ws.CriticismLevel,
	)
}

// stateContext serializes chapters, rosters and lore so the critique can
// reference them by name.
func stateContext(doc model.Document) string {
	var sb strings.Builder

	sb.WriteString("Chapters:\n")
	for _, ch := range doc.Chapters {
		sb.WriteString(fmt.Sprintf("- %s\n", ch.Title))
		for _, b := range ch.Beats {
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", b.Title, b.Description))
		}
	}

	sb.WriteString("Characters:\n")
	for _, c := range doc.Characters {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", c.Name, c.Role, c.Description))
	}

	sb.WriteString("Locations:\n")
	for _, l := range doc.Locations {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", l.Name, l.Atmosphere, l.Description))
	}

	sb.WriteString("Lore:\n")
	for _, e := range doc.Lore {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", e.Category, e.Content))
	}

	return sb.String()
}

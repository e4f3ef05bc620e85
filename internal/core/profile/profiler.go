// Package profile enriches roster entries with generated descriptions and
// builds the prompts for portrait/scene image synthesis.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core/common"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/inkwellhq/inkwell/internal/llm"
)

type Profiler struct {
	LLM     llm.TextClient
	Prompts config.ProfilePrompts
}

func NewProfiler(llmClient llm.TextClient, prompts config.ProfilePrompts) *Profiler {
	return &Profiler{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

type CharacterProfile struct {
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Rationale   string   `json:"rationale"`
}

type LocationProfile struct {
	Description string `json:"description"`
	Atmosphere  string `json:"atmosphere"`
	Rationale   string `json:"rationale"`
}

// ProfileCharacter fills out a character's description, traits and rationale
// from its name and role, shaped by the world settings.
func (p *Profiler) ProfileCharacter(ctx context.Context, c model.Character, ws model.WorldSettings) (*CharacterProfile, error) {
	prompt := fmt.Sprintf(p.Prompts.Character, worldContext(ws), c.Name, c.Role, c.Description)

	response, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate character profile: %w", err)
	}

	result, err := common.ParseJSON[CharacterProfile](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse character profile: %w", err)
	}
	if result.Traits == nil {
		result.Traits = []string{}
	}

	return &result, nil
}

func (p *Profiler) ProfileLocation(ctx context.Context, l model.Location, ws model.WorldSettings) (*LocationProfile, error) {
	prompt := fmt.Sprintf(p.Prompts.Location, worldContext(ws), l.Name, l.Atmosphere, l.Description)

	response, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate location profile: %w", err)
	}

	result, err := common.ParseJSON[LocationProfile](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location profile: %w", err)
	}

	return &result, nil
}

// PortraitPrompt builds the image-synthesis prompt for a character. Pure
// string work; no gateway call.
func (p *Profiler) PortraitPrompt(c model.Character, ws model.WorldSettings) string {
	traits := strings.Join(c.Traits, ", ")
	return fmt.Sprintf(p.Prompts.Portrait, c.Name, c.Role, c.Description, traits, worldContext(ws))
}

func (p *Profiler) ScenePrompt(l model.Location, ws model.WorldSettings) string {
	return fmt.Sprintf(p.Prompts.Scene, l.Name, l.Atmosphere, l.Description, worldContext(ws))
}

func worldContext(ws model.WorldSettings) string {
	return fmt.Sprintf("%s world, fantasy %d/100, technology %d/100, tone %s",
		ws.Genre, ws.FantasyLevel, ws.TechLevel, ws.Tone)
}

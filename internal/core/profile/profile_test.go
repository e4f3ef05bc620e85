package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func testPrompts() config.ProfilePrompts {
	return config.ProfilePrompts{
		Character: "world: %s name: %s role: %s desc: %s",
		Location:  "world: %s name: %s mood: %s desc: %s",
		Portrait:  "portrait of %s, a %s. %s. traits: %s. setting: %s",
		Scene:     "scene of %s, %s. %s. setting: %s",
	}
}

func TestProfileCharacter(t *testing.T) {
	mockJSON := `{"description": "A smith who never settles.", "traits": ["restless", "loyal"], "rationale": "Fits the wandering motif."}`
	mockLLM := &MockLLMClient{Response: mockJSON}

	profiler := NewProfiler(mockLLM, testPrompts())

	result, err := profiler.ProfileCharacter(context.Background(),
		model.Character{Name: "Thorne", Role: "Secondary"},
		model.WorldSettings{Genre: "Fantasy"})

	assert.NoError(t, err)
	assert.Equal(t, "A smith who never settles.", result.Description)
	assert.Equal(t, []string{"restless", "loyal"}, result.Traits)
	assert.Equal(t, "Fits the wandering motif.", result.Rationale)
}

func TestProfileCharacterMissingTraitsDefaultsEmpty(t *testing.T) {
	mockLLM := &MockLLMClient{Response: `{"description": "d", "rationale": "r"}`}
	profiler := NewProfiler(mockLLM, testPrompts())

	result, err := profiler.ProfileCharacter(context.Background(), model.Character{Name: "Thorne"}, model.WorldSettings{})

	assert.NoError(t, err)
	assert.NotNil(t, result.Traits)
	assert.Empty(t, result.Traits)
}

func TestProfileLocation(t *testing.T) {
	mockJSON := `{"description": "A shallow crossing.", "atmosphere": "Misty", "rationale": "Recurs in chapter two."}`
	mockLLM := &MockLLMClient{Response: mockJSON}

	profiler := NewProfiler(mockLLM, testPrompts())

	result, err := profiler.ProfileLocation(context.Background(),
		model.Location{Name: "The Ford"},
		model.WorldSettings{Genre: "Fantasy"})

	assert.NoError(t, err)
	assert.Equal(t, "Misty", result.Atmosphere)
}

func TestProfileGatewayFailure(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("down")}
	profiler := NewProfiler(mockLLM, testPrompts())

	_, err := profiler.ProfileCharacter(context.Background(), model.Character{}, model.WorldSettings{})
	assert.Error(t, err)

	_, err = profiler.ProfileLocation(context.Background(), model.Location{}, model.WorldSettings{})
	assert.Error(t, err)
}

func TestPortraitPromptMentionsEntityAndWorld(t *testing.T) {
	profiler := NewProfiler(&MockLLMClient{}, testPrompts())

	prompt := profiler.PortraitPrompt(
		model.Character{Name: "Thorne", Role: "Secondary", Traits: []string{"restless", "loyal"}},
		model.WorldSettings{Genre: "Fantasy", FantasyLevel: 70, TechLevel: 20, Tone: "Grim"})

	assert.True(t, strings.Contains(prompt, "Thorne"))
	assert.True(t, strings.Contains(prompt, "restless, loyal"))
	assert.True(t, strings.Contains(prompt, "Fantasy world"))
}

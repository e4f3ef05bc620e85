package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/stretchr/testify/assert"
)

// TestExtractManuscript ensures a structured LLM response is mapped onto the
// import payload, ids absent.
func TestExtractManuscript(t *testing.T) {
	mockJSON := `{
		"chapters": [
			{"title": "The Crossing", "beats": [
				{"title": "Arrival", "description": "Dusk at the ford", "draft": "They reached the ford at dusk."}
			]}
		],
		"characters": [{"name": "Mara", "role": "Protagonist", "description": "A salt trader", "traits": ["wary"]}],
		"locations": [{"name": "The Ford", "atmosphere": "Misty", "description": "A shallow crossing"}]
	}`

	mockLLM := &MockLLMClient{Response: mockJSON}
	extractor := NewExtractor(mockLLM, config.ExtractionPrompts{Manuscript: "extract: %s"})

	result, err := extractor.ExtractManuscript(context.Background(), "They reached the ford at dusk.")

	assert.NoError(t, err)
	assert.Len(t, result.Chapters, 1)
	assert.Len(t, result.Chapters[0].Beats, 1)
	assert.Equal(t, "They reached the ford at dusk.", result.Chapters[0].Beats[0].Draft)
	assert.Equal(t, "Mara", result.Characters[0].Name)
	assert.Equal(t, "The Ford", result.Locations[0].Name)
}

func TestExtractManuscriptGatewayFailure(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("unavailable")}
	extractor := NewExtractor(mockLLM, config.ExtractionPrompts{Manuscript: "%s"})

	result, err := extractor.ExtractManuscript(context.Background(), "text")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestExtractManuscriptMalformedResponse(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "not structured at all"}
	extractor := NewExtractor(mockLLM, config.ExtractionPrompts{Manuscript: "%s"})

	result, err := extractor.ExtractManuscript(context.Background(), "text")

	assert.Error(t, err)
	assert.Nil(t, result)
}

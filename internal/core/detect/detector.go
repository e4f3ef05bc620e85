package detect

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core/common"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/inkwellhq/inkwell/internal/llm"
)

// Sampling window for the prose-edit trigger. The modulo check fires roughly
// once per 350 characters of growth instead of on every keystroke. A paste
// that jumps past a whole window skips detection; that behavior is kept
// deliberately rather than replaced with a growth counter.
const (
	minProseLength = 50
	sampleWindow   = 350
	sampleWidth    = 20
)

// ShouldSample reports whether an edit that left the text in its current
// state warrants a detection request. Length is measured in runes, not bytes,
// so multi-byte prose samples on the same schedule as English.
func ShouldSample(text string) bool {
	length := utf8.RuneCountInString(text)
	return length > minProseLength && length%sampleWindow < sampleWidth
}

type Detector struct {
	LLM     llm.TextClient
	Prompts config.DetectorPrompts
}

func NewDetector(llmClient llm.TextClient, prompts config.DetectorPrompts) *Detector {
	return &Detector{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Detect asks the gateway whether the prose introduces a named character or
// location missing from the roster. A nil suggestion with nil error means
// nothing new was found. Callers own the fail-silent policy: a returned
// error is a detection miss, never a user-visible fault.
func (d *Detector) Detect(ctx context.Context, prose string, knownCharacters, knownLocations []string) (*model.EntitySuggestion, error) {
	exclusions := rosterList(knownCharacters, knownLocations)
	prompt := fmt.Sprintf(d.Prompts.Entity, exclusions, prose)

	response, err := d.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate detection result: %w", err)
	}

	result, err := common.ParseJSON[model.EntitySuggestion](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detection result: %w", err)
	}

	if !result.Found || result.Name == "" {
		return nil, nil
	}
	if result.Kind != model.KindCharacter && result.Kind != model.KindLocation {
		return nil, fmt.Errorf("detection returned unknown entity type %q", result.Kind)
	}

	return &result, nil
}

func rosterList(characters, locations []string) string {
	var sb strings.Builder
	sb.WriteString("Characters:\n")
	for _, n := range characters {
		sb.WriteString(fmt.Sprintf("- %s\n", n))
	}
	sb.WriteString("Locations:\n")
	for _, n := range locations {
		sb.WriteString(fmt.Sprintf("- %s\n", n))
	}
	return sb.String()
}

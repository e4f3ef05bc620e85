package extraction

import (
	"context"
	"fmt"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core/common"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/inkwellhq/inkwell/internal/llm"
)

type Extractor struct {
	LLM     llm.TextClient
	Prompts config.ExtractionPrompts
}

func NewExtractor(llmClient llm.TextClient, prompts config.ExtractionPrompts) *Extractor {
	return &Extractor{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// ExtractManuscript turns an imported plain-text manuscript into structured
// chapters, characters and locations. The result carries no ids; the store
// mints them on merge.
func (e *Extractor) ExtractManuscript(ctx context.Context, text string) (*model.ExtractedManuscript, error) {
	prompt := fmt.Sprintf(e.Prompts.Manuscript, text)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}

	result, err := common.ParseJSON[model.ExtractedManuscript](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}

	return &result, nil
}

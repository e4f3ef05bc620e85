// Package core owns the editing session: the document store plus every
// workflow that moves data between it and the generative gateway. All
// gateway-derived data is ephemeral until the user explicitly accepts it;
// acceptance always mints a fresh id.
package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core/analysis"
	"github.com/inkwellhq/inkwell/internal/core/detect"
	"github.com/inkwellhq/inkwell/internal/core/document"
	"github.com/inkwellhq/inkwell/internal/core/extraction"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/inkwellhq/inkwell/internal/core/profile"
	"github.com/inkwellhq/inkwell/internal/llm"
)

// Notifier receives workflow events for the presentation layer. Implemented
// by the server's websocket hub; nil means no one is listening.
type Notifier interface {
	Notify(event string, payload interface{})
}

type Inkwell struct {
	Store     *document.Store
	LLM       llm.TextClient
	ChatLLM   llm.ChatClient
	Images    llm.ImageClient
	Detector  *detect.Detector
	Analyzer  *analysis.Analyzer
	Extractor *extraction.Extractor
	Profiler  *profile.Profiler

	chatSystem string

	mu         sync.Mutex
	suggestion *model.EntitySuggestion
	analysis   *model.StoryAnalysis
	inflight   map[string]bool // entity id -> image request pending

	analyzing atomic.Bool
	notifier  Notifier
}

func NewInkwell(textClient llm.TextClient, chatClient llm.ChatClient, imageClient llm.ImageClient, cfg *config.Config) *Inkwell {
	return &Inkwell{
		Store:      document.NewStore(),
		LLM:        textClient,
		ChatLLM:    chatClient,
		Images:     imageClient,
		Detector:   detect.NewDetector(textClient, cfg.Detector),
		Analyzer:   analysis.NewAnalyzer(textClient, cfg.Analysis),
		Extractor:  extraction.NewExtractor(textClient, cfg.Extraction),
		Profiler:   profile.NewProfiler(textClient, cfg.Profile),
		chatSystem: cfg.Chat.System,
		inflight:   make(map[string]bool),
	}
}

func (ink *Inkwell) SetNotifier(n Notifier) {
	ink.notifier = n
}

func (ink *Inkwell) notify(event string, payload interface{}) {
	if ink.notifier != nil {
		ink.notifier.Notify(event, payload)
	}
}

// UpdateBeatDraft applies the edit, then samples the new text for incidental
// entities. Returns false when either id is unknown (the edit is dropped and
// nothing fires).
func (ink *Inkwell) UpdateBeatDraft(chapterID, beatID, text string) bool {
	if !ink.Store.UpdateBeatDraft(chapterID, beatID, text) {
		return false
	}
	ink.maybeDetect(text)
	return true
}

func (ink *Inkwell) UpdateScratchpad(text string) {
	ink.Store.SetScratchpad(text)
	ink.maybeDetect(text)
}

// maybeDetect runs detection in the background when the sampling window is
// hit. The request outlives the HTTP request that triggered it, so it runs
// on a fresh context. Failures are swallowed: a detection miss is invisible.
func (ink *Inkwell) maybeDetect(text string) {
	if !detect.ShouldSample(text) {
		return
	}

	characters, locations := ink.Store.RosterNames()
	go func() {
		sugg, err := ink.Detector.Detect(context.Background(), text, characters, locations)
		if err != nil || sugg == nil {
			return
		}

		// Last write wins; an unaccepted prior suggestion is overwritten.
		ink.mu.Lock()
		ink.suggestion = sugg
		ink.mu.Unlock()

		ink.notify("suggestion", sugg)
	}()
}

func (ink *Inkwell) Suggestion() *model.EntitySuggestion {
	ink.mu.Lock()
	defer ink.mu.Unlock()
	return ink.suggestion
}

// AcceptSuggestion inscribes the pending suggestion into the canonical
// collections with a freshly minted id, then clears the slot. Returns false
// when no suggestion is pending.
func (ink *Inkwell) AcceptSuggestion() bool {
	ink.mu.Lock()
	sugg := ink.suggestion
	ink.suggestion = nil
	ink.mu.Unlock()

	if sugg == nil {
		return false
	}

	switch sugg.Kind {
	case model.KindLocation:
		ink.Store.InsertLocation(model.Location{
			ID:          uuid.New().String(),
			Name:        sugg.Name,
			Description: sugg.Description,
		})
	default:
		ink.Store.InsertCharacter(model.Character{
			ID:          uuid.New().String(),
			Name:        sugg.Name,
			Role:        model.DefaultRole,
			Description: sugg.Description,
			Traits:      []string{},
		})
	}
	return true
}

// RejectSuggestion discards the pending suggestion without a trace.
func (ink *Inkwell) RejectSuggestion() {
	ink.mu.Lock()
	ink.suggestion = nil
	ink.mu.Unlock()
}

// Analyze runs the full-manuscript consistency pass. On success the previous
// analysis is replaced wholesale; on failure it is left untouched and the
// error is reported to the caller. Concurrent runs are not excluded at the
// data level — the last writer wins — but the in-flight flag lets the UI
// show a single loading state.
func (ink *Inkwell) Analyze(ctx context.Context) (*model.StoryAnalysis, error) {
	ink.analyzing.Store(true)
	defer ink.analyzing.Store(false)

	doc := ink.Store.Snapshot()
	result, err := ink.Analyzer.Analyze(ctx, ink.Store.ManuscriptText(), doc)
	if err != nil {
		return nil, fmt.Errorf("analysis did not complete: %w", err)
	}

	ink.mu.Lock()
	ink.analysis = result
	ink.mu.Unlock()

	ink.notify("analysis", result)
	return result, nil
}

func (ink *Inkwell) Analyzing() bool {
	return ink.analyzing.Load()
}

func (ink *Inkwell) Analysis() *model.StoryAnalysis {
	ink.mu.Lock()
	defer ink.mu.Unlock()
	return ink.analysis
}

// Inscribe copies one item of the current analysis into the canonical store
// with a fresh id. kind selects the proposal list; index addresses the item;
// chapterID is required only for beats.
func (ink *Inkwell) Inscribe(kind model.Kind, index int, chapterID string) error {
	ink.mu.Lock()
	current := ink.analysis
	ink.mu.Unlock()

	if current == nil {
		return fmt.Errorf("no analysis to inscribe from")
	}

	switch kind {
	case model.KindCharacter:
		if index < 0 || index >= len(current.ProposedCharacters) {
			return fmt.Errorf("no proposed character at index %d", index)
		}
		p := current.ProposedCharacters[index]
		role := p.Role
		if role == "" {
			role = model.DefaultRole
		}
		traits := p.Traits
		if traits == nil {
			traits = []string{}
		}
		ink.Store.InsertCharacter(model.Character{
			ID:          uuid.New().String(),
			Name:        p.Name,
			Role:        role,
			Description: p.Description,
			Traits:      traits,
			Rationale:   p.Rationale,
		})

	case model.KindLocation:
		if index < 0 || index >= len(current.ProposedLocations) {
			return fmt.Errorf("no proposed location at index %d", index)
		}
		p := current.ProposedLocations[index]
		ink.Store.InsertLocation(model.Location{
			ID:          uuid.New().String(),
			Name:        p.Name,
			Atmosphere:  p.Atmosphere,
			Description: p.Description,
			Rationale:   p.Rationale,
		})

	case model.KindLore:
		if index < 0 || index >= len(current.ProposedLore) {
			return fmt.Errorf("no proposed lore at index %d", index)
		}
		p := current.ProposedLore[index]
		ink.Store.AddLore(p.Category, p.Content)

	case model.KindChapter: // a suggested beat lands in an existing chapter
		if index < 0 || index >= len(current.SuggestedBeats) {
			return fmt.Errorf("no suggested beat at index %d", index)
		}
		p := current.SuggestedBeats[index]
		b, ok := ink.Store.AddBeat(chapterID)
		if !ok {
			return fmt.Errorf("chapter %s not found", chapterID)
		}
		ink.Store.UpdateBeat(chapterID, b.ID, p.Title, p.Description, false)

	default:
		return fmt.Errorf("cannot inscribe kind %q", kind)
	}

	return nil
}

// ImportManuscript extracts structure from a plain-text manuscript and
// merges it into the store, re-keying everything.
func (ink *Inkwell) ImportManuscript(ctx context.Context, text string) error {
	result, err := ink.Extractor.ExtractManuscript(ctx, text)
	if err != nil {
		return fmt.Errorf("import did not complete: %w", err)
	}

	ink.Store.ImportExtracted(*result)
	return nil
}

// EnrichCharacter generates a profile for the character and writes it back,
// provided the character still exists when the call returns.
func (ink *Inkwell) EnrichCharacter(ctx context.Context, id string) error {
	c, ok := ink.Store.Character(id)
	if !ok {
		return fmt.Errorf("character %s not found", id)
	}

	p, err := ink.Profiler.ProfileCharacter(ctx, c, ink.Store.Settings())
	if err != nil {
		return fmt.Errorf("profile did not complete: %w", err)
	}

	if ink.Store.ApplyCharacterProfile(id, p.Description, p.Traits, p.Rationale) {
		ink.notify("profile", map[string]string{"kind": string(model.KindCharacter), "id": id})
	}
	return nil
}

func (ink *Inkwell) EnrichLocation(ctx context.Context, id string) error {
	l, ok := ink.Store.Location(id)
	if !ok {
		return fmt.Errorf("location %s not found", id)
	}

	p, err := ink.Profiler.ProfileLocation(ctx, l, ink.Store.Settings())
	if err != nil {
		return fmt.Errorf("profile did not complete: %w", err)
	}

	if ink.Store.ApplyLocationProfile(id, p.Description, p.Atmosphere, p.Rationale) {
		ink.notify("profile", map[string]string{"kind": string(model.KindLocation), "id": id})
	}
	return nil
}

// GeneratePortrait starts an asynchronous portrait request for a character.
// Several requests may be in flight at once, each keyed by entity id; a
// result arriving after the entity was banished is dropped by the store's
// existence check. There is no cancellation.
func (ink *Inkwell) GeneratePortrait(id string) error {
	if ink.Images == nil {
		return fmt.Errorf("image generation not supported by configured provider")
	}
	c, ok := ink.Store.Character(id)
	if !ok {
		return fmt.Errorf("character %s not found", id)
	}

	prompt := ink.Profiler.PortraitPrompt(c, ink.Store.Settings())
	ink.startImage(id, prompt, "1:1", ink.Store.SetCharacterImage)
	return nil
}

func (ink *Inkwell) GenerateScene(id string) error {
	if ink.Images == nil {
		return fmt.Errorf("image generation not supported by configured provider")
	}
	l, ok := ink.Store.Location(id)
	if !ok {
		return fmt.Errorf("location %s not found", id)
	}

	prompt := ink.Profiler.ScenePrompt(l, ink.Store.Settings())
	ink.startImage(id, prompt, "16:9", ink.Store.SetLocationImage)
	return nil
}

func (ink *Inkwell) startImage(id, prompt, aspectRatio string, writeBack func(string, string) bool) {
	ink.mu.Lock()
	ink.inflight[id] = true
	ink.mu.Unlock()

	go func() {
		defer func() {
			ink.mu.Lock()
			delete(ink.inflight, id)
			ink.mu.Unlock()
		}()

		raw, err := ink.Images.GenerateImage(context.Background(), prompt, aspectRatio)
		if err != nil {
			log.Printf("image generation for %s failed: %v", id, err)
			return
		}

		url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
		if !writeBack(id, url) {
			// Entity banished mid-flight; discard.
			return
		}
		ink.notify("image", map[string]string{"id": id})
	}()
}

// ImagePending reports whether a portrait/scene request is in flight for the
// entity, for the presentation layer's spinners.
func (ink *Inkwell) ImagePending(id string) bool {
	ink.mu.Lock()
	defer ink.mu.Unlock()
	return ink.inflight[id]
}

// Chat holds a muse conversation grounded in the world settings and lore.
func (ink *Inkwell) Chat(ctx context.Context, history []llm.ChatMessage, message string) (string, error) {
	if ink.ChatLLM == nil {
		return "", fmt.Errorf("chat not supported by configured provider")
	}

	doc := ink.Store.Snapshot()
	system := fmt.Sprintf(ink.chatSystem, chatContext(doc))
	reply, err := ink.ChatLLM.Chat(ctx, history, message, system)
	if err != nil {
		return "", fmt.Errorf("chat did not complete: %w", err)
	}
	return reply, nil
}

func chatContext(doc model.Document) string {
	ctx := fmt.Sprintf("Genre: %s. Tone: %s. Language: %s.\n",
		doc.Settings.Genre, doc.Settings.Tone, doc.Settings.Language)
	for _, e := range doc.Lore {
		ctx += fmt.Sprintf("Lore [%s]: %s\n", e.Category, e.Content)
	}
	return ctx
}

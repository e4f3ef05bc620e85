// Package document holds the authoritative in-memory collections of a
// writing session. The source design assumed a single-threaded event loop;
// here every operation runs under one RWMutex so concurrent HTTP handlers
// and background gateway completions see a serialized store.
package document

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell/internal/core/model"
)

type Store struct {
	mu         sync.RWMutex
	chapters   []model.Chapter
	characters []model.Character
	locations  []model.Location
	lore       []model.LoreEntry
	scratchpad string
	settings   model.WorldSettings
}

func NewStore() *Store {
	return &Store{
		settings: model.DefaultSettings(),
	}
}

func newID() string {
	return uuid.New().String()
}

// AddChapter appends a chapter seeded with a single empty beat.
func (s *Store) AddChapter() model.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := model.Chapter{
		ID:    newID(),
		Title: fmt.Sprintf("Chapter %d", len(s.chapters)+1),
		Beats: []model.Beat{
			{
				ID:          newID(),
				Title:       "Opening beat",
				Description: "Where this chapter begins.",
			},
		},
	}
	s.chapters = append(s.chapters, ch)
	return ch
}

// AddBeat appends a beat to the identified chapter. Returns false if the
// chapter does not exist.
func (s *Store) AddBeat(chapterID string) (model.Beat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.chapters {
		if s.chapters[i].ID == chapterID {
			b := model.Beat{
				ID:    newID(),
				Title: fmt.Sprintf("Beat %d", len(s.chapters[i].Beats)+1),
			}
			s.chapters[i].Beats = append(s.chapters[i].Beats, b)
			return b, true
		}
	}
	return model.Beat{}, false
}

// UpdateBeat replaces the title, description and completed flag of a beat.
// Unknown ids are a silent no-op.
func (s *Store) UpdateBeat(chapterID, beatID, title, description string, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b := s.findBeat(chapterID, beatID); b != nil {
		b.Title = title
		b.Description = description
		b.Completed = completed
		return true
	}
	return false
}

// UpdateBeatDraft replaces the drafted prose of a beat. Unknown ids are a
// silent no-op; the store itself never reacts to the new text — the
// incidental-entity trigger belongs to the orchestrator.
func (s *Store) UpdateBeatDraft(chapterID, beatID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b := s.findBeat(chapterID, beatID); b != nil {
		b.Draft = text
		return true
	}
	return false
}

// findBeat must be called with the lock held.
func (s *Store) findBeat(chapterID, beatID string) *model.Beat {
	for i := range s.chapters {
		if s.chapters[i].ID != chapterID {
			continue
		}
		for j := range s.chapters[i].Beats {
			if s.chapters[i].Beats[j].ID == beatID {
				return &s.chapters[i].Beats[j]
			}
		}
	}
	return nil
}

func (s *Store) DeleteBeat(chapterID, beatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.chapters {
		if s.chapters[i].ID != chapterID {
			continue
		}
		for j := range s.chapters[i].Beats {
			if s.chapters[i].Beats[j].ID == beatID {
				s.chapters[i].Beats = append(s.chapters[i].Beats[:j], s.chapters[i].Beats[j+1:]...)
				return true
			}
		}
	}
	return false
}

func (s *Store) AddCharacter() model.Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Character{
		ID:     newID(),
		Name:   "New Character",
		Role:   model.DefaultRole,
		Traits: []string{},
	}
	s.characters = append(s.characters, c)
	return c
}

// InsertCharacter appends a fully formed character minted elsewhere (accepted
// suggestion, inscribed proposal). The id must come from this process, never
// from gateway output.
func (s *Store) InsertCharacter(c model.Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters = append(s.characters, c)
}

func (s *Store) UpdateCharacter(c model.Character) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID == c.ID {
			s.characters[i] = c
			return true
		}
	}
	return false
}

func (s *Store) AddLocation() model.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := model.Location{
		ID:   newID(),
		Name: "New Location",
	}
	s.locations = append(s.locations, l)
	return l
}

func (s *Store) InsertLocation(l model.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = append(s.locations, l)
}

func (s *Store) UpdateLocation(l model.Location) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.locations {
		if s.locations[i].ID == l.ID {
			s.locations[i] = l
			return true
		}
	}
	return false
}

func (s *Store) AddLore(category, content string) model.LoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := model.LoreEntry{
		ID:       newID(),
		Category: category,
		Content:  content,
	}
	s.lore = append(s.lore, e)
	return e
}

func (s *Store) UpdateLore(e model.LoreEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lore {
		if s.lore[i].ID == e.ID {
			s.lore[i] = e
			return true
		}
	}
	return false
}

// Delete removes the identified entity from its collection. Unknown kinds
// and absent ids are silent no-ops; nothing cascades — deleting a chapter
// never touches characters, and prose mentions are left dangling.
func (s *Store) Delete(kind model.Kind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case model.KindChapter:
		for i := range s.chapters {
			if s.chapters[i].ID == id {
				s.chapters = append(s.chapters[:i], s.chapters[i+1:]...)
				return true
			}
		}
	case model.KindCharacter:
		for i := range s.characters {
			if s.characters[i].ID == id {
				s.characters = append(s.characters[:i], s.characters[i+1:]...)
				return true
			}
		}
	case model.KindLocation:
		for i := range s.locations {
			if s.locations[i].ID == id {
				s.locations = append(s.locations[:i], s.locations[i+1:]...)
				return true
			}
		}
	case model.KindLore:
		for i := range s.lore {
			if s.lore[i].ID == id {
				s.lore = append(s.lore[:i], s.lore[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (s *Store) Character(id string) (model.Character, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.characters {
		if c.ID == id {
			return c, true
		}
	}
	return model.Character{}, false
}

func (s *Store) Location(id string) (model.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.locations {
		if l.ID == id {
			return l, true
		}
	}
	return model.Location{}, false
}

// SetCharacterImage records the result of an asynchronous portrait request.
// Returns false when the character was deleted while the request was in
// flight, in which case the result must be discarded.
func (s *Store) SetCharacterImage(id, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID == id {
			s.characters[i].ImageURL = url
			return true
		}
	}
	return false
}

func (s *Store) SetLocationImage(id, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.locations {
		if s.locations[i].ID == id {
			s.locations[i].ImageURL = url
			return true
		}
	}
	return false
}

// ApplyCharacterProfile writes an enrichment result back, guarded by the
// same existence check as image completions.
func (s *Store) ApplyCharacterProfile(id, description string, traits []string, rationale string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID == id {
			s.characters[i].Description = description
			s.characters[i].Traits = traits
			s.characters[i].Rationale = rationale
			return true
		}
	}
	return false
}

func (s *Store) ApplyLocationProfile(id, description, atmosphere, rationale string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.locations {
		if s.locations[i].ID == id {
			s.locations[i].Description = description
			s.locations[i].Atmosphere = atmosphere
			s.locations[i].Rationale = rationale
			return true
		}
	}
	return false
}

func (s *Store) Scratchpad() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scratchpad
}

func (s *Store) SetScratchpad(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scratchpad = text
}

func (s *Store) Settings() model.WorldSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) UpdateSettings(ws model.WorldSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = ws
}

// RosterNames returns the current character and location names, used as the
// detector's exclusion set.
func (s *Store) RosterNames() (characters []string, locations []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.characters {
		characters = append(characters, c.Name)
	}
	for _, l := range s.locations {
		locations = append(locations, l.Name)
	}
	return characters, locations
}

// ManuscriptText concatenates drafted prose in chapter order then beat
// order. When no chapters exist the scratchpad stands in for the manuscript.
func (s *Store) ManuscriptText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chapters) == 0 {
		return s.scratchpad
	}

	var sb strings.Builder
	for _, ch := range s.chapters {
		for _, b := range ch.Beats {
			if b.Draft == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(b.Draft)
		}
	}
	return sb.String()
}

// ImportExtracted merges an extraction result into the store. Every nested
// object gets a fresh id: extraction payloads (like all gateway output) are
// never trusted to carry stable or non-colliding keys.
func (s *Store) ImportExtracted(ex model.ExtractedManuscript) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range ex.Chapters {
		chapter := model.Chapter{
			ID:    newID(),
			Title: ch.Title,
		}
		for _, b := range ch.Beats {
			chapter.Beats = append(chapter.Beats, model.Beat{
				ID:          newID(),
				Title:       b.Title,
				Description: b.Description,
				Draft:       b.Draft,
			})
		}
		s.chapters = append(s.chapters, chapter)
	}

	for _, c := range ex.Characters {
		role := c.Role
		if role == "" {
			role = model.DefaultRole
		}
		traits := c.Traits
		if traits == nil {
			traits = []string{}
		}
		s.characters = append(s.characters, model.Character{
			ID:          newID(),
			Name:        c.Name,
			Role:        role,
			Description: c.Description,
			Traits:      traits,
		})
	}

	for _, l := range ex.Locations {
		s.locations = append(s.locations, model.Location{
			ID:          newID(),
			Name:        l.Name,
			Atmosphere:  l.Atmosphere,
			Description: l.Description,
		})
	}
}

// Snapshot deep-copies the whole store for API reads, analysis input and
// project persistence.
func (s *Store) Snapshot() model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := model.Document{
		Chapters:   make([]model.Chapter, len(s.chapters)),
		Characters: make([]model.Character, len(s.characters)),
		Locations:  make([]model.Location, len(s.locations)),
		Lore:       make([]model.LoreEntry, len(s.lore)),
		Scratchpad: s.scratchpad,
		Settings:   s.settings,
	}
	for i, ch := range s.chapters {
		doc.Chapters[i] = ch
		doc.Chapters[i].Beats = append([]model.Beat(nil), ch.Beats...)
	}
	for i, c := range s.characters {
		doc.Characters[i] = c
		doc.Characters[i].Traits = append([]string(nil), c.Traits...)
	}
	copy(doc.Locations, s.locations)
	copy(doc.Lore, s.lore)
	return doc
}

// Restore replaces the whole store with a previously saved snapshot. The
// document is deep-copied on the way in, mirroring Snapshot, so the caller's
// copy and the store never alias each other's slices.
func (s *Store) Restore(doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chapters = make([]model.Chapter, len(doc.Chapters))
	for i, ch := range doc.Chapters {
		s.chapters[i] = ch
		s.chapters[i].Beats = append([]model.Beat(nil), ch.Beats...)
	}
	s.characters = make([]model.Character, len(doc.Characters))
	for i, c := range doc.Characters {
		s.characters[i] = c
		s.characters[i].Traits = append([]string(nil), c.Traits...)
	}
	s.locations = append([]model.Location(nil), doc.Locations...)
	s.lore = append([]model.LoreEntry(nil), doc.Lore...)
	s.scratchpad = doc.Scratchpad
	s.settings = doc.Settings
}

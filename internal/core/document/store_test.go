package document

import (
	"testing"

	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestAddChapterSeedsOneBeat(t *testing.T) {
	s := NewStore()

	ch := s.AddChapter()

	assert.NotEmpty(t, ch.ID)
	assert.Len(t, ch.Beats, 1)
	assert.NotEmpty(t, ch.Beats[0].ID)
}

func TestMintedIDsAreUniquePerCollection(t *testing.T) {
	s := NewStore()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ch := s.AddChapter()
		c := s.AddCharacter()
		l := s.AddLocation()

		for _, id := range []string{ch.ID, ch.Beats[0].ID, c.ID, l.ID} {
			assert.False(t, seen[id], "id %s minted twice", id)
			seen[id] = true
		}
	}
}

func TestUpdateBeatDraftUnknownIDsIsNoOp(t *testing.T) {
	s := NewStore()
	ch := s.AddChapter()

	assert.False(t, s.UpdateBeatDraft("nope", ch.Beats[0].ID, "text"))
	assert.False(t, s.UpdateBeatDraft(ch.ID, "nope", "text"))

	doc := s.Snapshot()
	assert.Equal(t, "", doc.Chapters[0].Beats[0].Draft)

	assert.True(t, s.UpdateBeatDraft(ch.ID, ch.Beats[0].ID, "Thorne walked in."))
	doc = s.Snapshot()
	assert.Equal(t, "Thorne walked in.", doc.Chapters[0].Beats[0].Draft)
}

func TestDeleteIsNoOpWhenAbsent(t *testing.T) {
	s := NewStore()
	c := s.AddCharacter()

	assert.False(t, s.Delete(model.KindCharacter, "missing"))
	assert.False(t, s.Delete(model.KindLocation, c.ID))
	assert.Len(t, s.Snapshot().Characters, 1)

	assert.True(t, s.Delete(model.KindCharacter, c.ID))
	assert.Empty(t, s.Snapshot().Characters)
}

func TestDeleteChapterLeavesCharactersAlone(t *testing.T) {
	s := NewStore()
	ch := s.AddChapter()
	s.AddCharacter()

	assert.True(t, s.Delete(model.KindChapter, ch.ID))

	doc := s.Snapshot()
	assert.Empty(t, doc.Chapters)
	assert.Len(t, doc.Characters, 1)
}

func TestImportExtractedNeverReusesExistingIDs(t *testing.T) {
	s := NewStore()
	existing := s.AddChapter()
	existingChar := s.AddCharacter()

	before := map[string]bool{
		existing.ID:          true,
		existing.Beats[0].ID: true,
		existingChar.ID:      true,
	}

	s.ImportExtracted(model.ExtractedManuscript{
		Chapters: []model.ExtractedChapter{
			{Title: "The Crossing", Beats: []model.ExtractedBeat{
				{Title: "Arrival", Draft: "They reached the ford at dusk."},
				{Title: "The toll"},
			}},
		},
		Characters: []model.ExtractedCharacter{{Name: "Mara"}},
		Locations:  []model.ExtractedLocation{{Name: "The Ford", Atmosphere: "Misty"}},
	})

	doc := s.Snapshot()
	assert.Len(t, doc.Chapters, 2)
	assert.Len(t, doc.Characters, 2)
	assert.Len(t, doc.Locations, 1)

	imported := doc.Chapters[1]
	assert.False(t, before[imported.ID])
	for _, b := range imported.Beats {
		assert.False(t, before[b.ID])
		assert.NotEmpty(t, b.ID)
	}
	assert.False(t, before[doc.Characters[1].ID])
	assert.False(t, before[doc.Locations[0].ID])

	// Imported characters get the default role and a non-nil trait set.
	assert.Equal(t, model.DefaultRole, doc.Characters[1].Role)
	assert.NotNil(t, doc.Characters[1].Traits)
}

func TestManuscriptTextChapterOrderThenBeatOrder(t *testing.T) {
	s := NewStore()
	ch1 := s.AddChapter()
	ch2 := s.AddChapter()
	b2, ok := s.AddBeat(ch1.ID)
	assert.True(t, ok)

	s.UpdateBeatDraft(ch1.ID, ch1.Beats[0].ID, "First.")
	s.UpdateBeatDraft(ch1.ID, b2.ID, "Second.")
	s.UpdateBeatDraft(ch2.ID, ch2.Beats[0].ID, "Third.")

	assert.Equal(t, "First.\n\nSecond.\n\nThird.", s.ManuscriptText())
}

func TestManuscriptTextFallsBackToScratchpad(t *testing.T) {
	s := NewStore()
	s.SetScratchpad("Loose notes about the ford.")

	assert.Equal(t, "Loose notes about the ford.", s.ManuscriptText())
}

func TestStaleWriteBacksAreDropped(t *testing.T) {
	s := NewStore()
	c := s.AddCharacter()
	l := s.AddLocation()

	s.Delete(model.KindCharacter, c.ID)
	s.Delete(model.KindLocation, l.ID)

	assert.False(t, s.SetCharacterImage(c.ID, "data:image/png;base64,xxx"))
	assert.False(t, s.SetLocationImage(l.ID, "data:image/png;base64,xxx"))
	assert.False(t, s.ApplyCharacterProfile(c.ID, "desc", []string{"grim"}, "why"))
	assert.False(t, s.ApplyLocationProfile(l.ID, "desc", "mood", "why"))

	doc := s.Snapshot()
	assert.Empty(t, doc.Characters)
	assert.Empty(t, doc.Locations)
}

func TestSnapshotIsDetachedFromStore(t *testing.T) {
	s := NewStore()
	ch := s.AddChapter()

	doc := s.Snapshot()
	doc.Chapters[0].Beats[0].Draft = "mutated copy"

	assert.True(t, s.UpdateBeatDraft(ch.ID, ch.Beats[0].ID, "real draft"))
	assert.Equal(t, "mutated copy", doc.Chapters[0].Beats[0].Draft)
	assert.Equal(t, "real draft", s.Snapshot().Chapters[0].Beats[0].Draft)
}

func TestRestoreIsDetachedFromCaller(t *testing.T) {
	s := NewStore()

	saved := model.Document{
		Chapters: []model.Chapter{
			{ID: "ch-1", Title: "The Crossing", Beats: []model.Beat{
				{ID: "b-1", Title: "Arrival", Draft: "original"},
			}},
		},
		Characters: []model.Character{{ID: "c-1", Name: "Mara", Traits: []string{"wary"}}},
	}
	s.Restore(saved)

	// Store mutations must not leak into the caller's document.
	assert.True(t, s.UpdateBeatDraft("ch-1", "b-1", "written after restore"))
	assert.Equal(t, "original", saved.Chapters[0].Beats[0].Draft)

	// And mutating the caller's copy must not leak into the store.
	saved.Chapters[0].Beats[0].Title = "renamed outside"
	saved.Characters[0].Traits[0] = "changed outside"

	doc := s.Snapshot()
	assert.Equal(t, "Arrival", doc.Chapters[0].Beats[0].Title)
	assert.Equal(t, []string{"wary"}, doc.Characters[0].Traits)
}

func TestRestoreReplacesEverything(t *testing.T) {
	s := NewStore()
	s.AddChapter()
	s.AddCharacter()

	saved := model.Document{
		Scratchpad: "restored",
		Settings:   model.WorldSettings{Genre: "Noir", CriticismLevel: 80, Language: "English"},
	}
	s.Restore(saved)

	doc := s.Snapshot()
	assert.Empty(t, doc.Chapters)
	assert.Empty(t, doc.Characters)
	assert.Equal(t, "restored", doc.Scratchpad)
	assert.Equal(t, "Noir", doc.Settings.Genre)
}

package store

import (
	"path/filepath"
	"testing"

	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	ps, err := Open(filepath.Join(t.TempDir(), "inkwell.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func sampleDocument() model.Document {
	return model.Document{
		Chapters: []model.Chapter{
			{ID: "ch-1", Title: "The Crossing", Beats: []model.Beat{
				{ID: "b-1", Title: "Arrival", Draft: "They reached the ford at dusk."},
			}},
		},
		Characters: []model.Character{{ID: "c-1", Name: "Mara", Role: "Protagonist", Traits: []string{"wary"}}},
		Lore:       []model.LoreEntry{{ID: "l-1", Category: "Customs", Content: "Salt is currency."}},
		Scratchpad: "loose notes",
		Settings:   model.DefaultSettings(),
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ps := openTestStore(t)

	info, err := ps.Save("Ford drafts", sampleDocument())
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)

	doc, err := ps.Load(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Crossing", doc.Chapters[0].Title)
	assert.Equal(t, "They reached the ford at dusk.", doc.Chapters[0].Beats[0].Draft)
	assert.Equal(t, []string{"wary"}, doc.Characters[0].Traits)
	assert.Equal(t, "loose notes", doc.Scratchpad)
}

func TestOverwriteReplacesSnapshot(t *testing.T) {
	ps := openTestStore(t)

	info, err := ps.Save("Ford drafts", sampleDocument())
	require.NoError(t, err)

	updated := sampleDocument()
	updated.Scratchpad = "revised notes"
	_, err = ps.Overwrite(info.ID, "Ford drafts v2", updated)
	require.NoError(t, err)

	doc, err := ps.Load(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised notes", doc.Scratchpad)

	infos, err := ps.List()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
	assert.Equal(t, "Ford drafts v2", infos[0].Name)
}

func TestLoadMissingProject(t *testing.T) {
	ps := openTestStore(t)

	_, err := ps.Load("missing")
	assert.Error(t, err)
}

func TestListAndDelete(t *testing.T) {
	ps := openTestStore(t)

	a, err := ps.Save("A", sampleDocument())
	require.NoError(t, err)
	_, err = ps.Save("B", sampleDocument())
	require.NoError(t, err)

	infos, err := ps.List()
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	require.NoError(t, ps.Delete(a.ID))
	infos, err = ps.List()
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	// Deleting an absent project is not an error.
	assert.NoError(t, ps.Delete("missing"))
}

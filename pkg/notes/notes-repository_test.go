package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwgoh/birding/pkg/testutil"
)

func sampleNoteData(speciesId int64) NoteData {
	return NoteData{
		Habitat:       "coastal scrub",
		DateTime:      "2023-02-01T08:15",
		Appearance:    "white eye ring",
		Behaviour:     "gleaning insects",
		Vocalisations: "rising trill",
		FlockSize:     4,
		SpeciesId:     speciesId,
	}
}

func TestAddAttributesNoteToAuthor(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	speciesId := testutil.SeedSpecies(t, storage.Connection, "Olive-backed Sunbird", "Cinnyris jugularis")
	userId := testutil.SeedUser(t, storage.Connection, "bernice@example.com", "digest")

	noteId, err := nr.Add(sampleNoteData(speciesId), userId)
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CountAttributions(t, storage.Connection, noteId))

	authorId, err := nr.GetAuthor(noteId)
	require.NoError(t, err)
	assert.Equal(t, userId, authorId)
}

func TestAddWithoutAuthorLeavesNoteUnattributed(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	speciesId := testutil.SeedSpecies(t, storage.Connection, "Collared Kingfisher", "Todiramphus chloris")

	noteId, err := nr.Add(sampleNoteData(speciesId), 0)
	require.NoError(t, err)

	assert.Equal(t, 0, testutil.CountAttributions(t, storage.Connection, noteId))

	_, err = nr.GetAuthor(noteId)
	assert.ErrorIs(t, err, ErrUnattributed)
}

func TestAddFormatsDateAtWriteTime(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	speciesId := testutil.SeedSpecies(t, storage.Connection, "Asian Koel", "Eudynamys scolopaceus")

	noteId, err := nr.Add(sampleNoteData(speciesId), 0)
	require.NoError(t, err)

	note, err := nr.Get(noteId)
	require.NoError(t, err)
	assert.Equal(t, "01 Feb 2023 08:15", note.Date)
}

func TestGetWithSpeciesReportsNotFound(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	_, err := nr.GetWithSpecies(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoundTrip(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	speciesId := testutil.SeedSpecies(t, storage.Connection, "Pacific Swallow", "Hirundo tahitica")
	noteId, err := nr.Add(sampleNoteData(speciesId), 0)
	require.NoError(t, err)

	updated := NoteData{
		Habitat:       "reservoir edge",
		DateTime:      "2023-03-05T17:40",
		Appearance:    "rusty forehead",
		Behaviour:     "hawking over water",
		Vocalisations: "soft twitter",
		FlockSize:     12,
		SpeciesId:     speciesId,
	}
	require.NoError(t, nr.Update(noteId, updated))

	note, err := nr.Get(noteId)
	require.NoError(t, err)
	assert.Equal(t, Note{
		Id:            noteId,
		Habitat:       "reservoir edge",
		Date:          "05 Mar 2023 05:40",
		Appearance:    "rusty forehead",
		Behaviour:     "hawking over water",
		Vocalisations: "soft twitter",
		FlockSize:     12,
		SpeciesId:     speciesId,
	}, note)
}

func TestDeleteRemovesAttributionAlongsideNote(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	speciesId := testutil.SeedSpecies(t, storage.Connection, "White-breasted Waterhen", "Amaurornis phoenicurus")
	userId := testutil.SeedUser(t, storage.Connection, "bernice@example.com", "digest")

	noteId, err := nr.Add(sampleNoteData(speciesId), userId)
	require.NoError(t, err)

	require.NoError(t, nr.Delete(noteId))

	_, err = nr.Get(noteId)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, testutil.CountAttributions(t, storage.Connection, noteId))
}

func TestListForUserReturnsOnlyAttributedNotes(t *testing.T) {
	storage := testutil.OpenStorage(t)
	nr := NewRepository(storage.Connection)

	speciesId := testutil.SeedSpecies(t, storage.Connection, "Common Iora", "Aegithina tiphia")
	author := testutil.SeedUser(t, storage.Connection, "author@example.com", "digest")
	other := testutil.SeedUser(t, storage.Connection, "other@example.com", "digest")

	mine, err := nr.Add(sampleNoteData(speciesId), author)
	require.NoError(t, err)
	_, err = nr.Add(sampleNoteData(speciesId), other)
	require.NoError(t, err)
	_, err = nr.Add(sampleNoteData(speciesId), 0)
	require.NoError(t, err)

	observations, err := nr.ListForUser(author)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, mine, observations[0].Id)
}

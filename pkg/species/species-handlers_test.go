package species

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwgoh/birding/pkg/auth"
	"github.com/bwgoh/birding/pkg/rest"
	"github.com/bwgoh/birding/pkg/testutil"
)

func newTestServer(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()

	storage := testutil.OpenStorage(t)

	engine, err := rest.New(rest.Config{Logger: testutil.DiscardLogger()})
	require.NoError(t, err)

	sessions := auth.NewSessions([]byte("0123456789abcdef0123456789abcdef"), nil)
	RegisterHandlers(engine, NewRepository(storage.Connection), sessions)

	return rest.MethodOverride(engine.Handler()), storage.Connection
}

func TestAddSpeciesRedirectsToItsPage(t *testing.T) {
	handler, db := newTestServer(t)

	form := url.Values{"speciesname": {"Blue-throated Bee-eater"}, "scientificnm": {"Merops viridis"}}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, testutil.PostForm("/species", form))

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/species/1", recorder.Header().Get("Location"))

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM species WHERE id = 1").Scan(&name))
	assert.Equal(t, "Blue-throated Bee-eater", name)
}

func TestSpeciesPageRendersItsNotes(t *testing.T) {
	handler, db := newTestServer(t)

	sunbird := testutil.SeedSpecies(t, db, "Crimson Sunbird", "Aethopyga siparaja")
	testutil.SeedNote(t, db, sunbird)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/species/1", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Crimson Sunbird")
	assert.Contains(t, recorder.Body.String(), "mangrove")
}

func TestSpeciesPageWithoutNotesRendersEmptyState(t *testing.T) {
	handler, db := newTestServer(t)

	testutil.SeedSpecies(t, db, "Crimson Sunbird", "Aethopyga siparaja")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/species/1", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "There are no notes from that species")
}

func TestAllSpeciesListsCatalogue(t *testing.T) {
	handler, db := newTestServer(t)

	testutil.SeedSpecies(t, db, "Crimson Sunbird", "Aethopyga siparaja")
	testutil.SeedSpecies(t, db, "House Swift", "Apus nipalensis")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/species/all", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Crimson Sunbird")
	assert.Contains(t, recorder.Body.String(), "House Swift")
}

func TestUpdateSpeciesThroughMethodOverride(t *testing.T) {
	handler, db := newTestServer(t)

	testutil.SeedSpecies(t, db, "Crimson Sunbird", "Aethopyga siparaja")

	form := url.Values{
		"_method":      {"PUT"},
		"speciesname":  {"Crimson Sunbird"},
		"scientificnm": {"A. siparaja"},
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, testutil.PostForm("/species/1", form))

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/species/all", recorder.Header().Get("Location"))

	var scientificName string
	require.NoError(t, db.QueryRow("SELECT scientific_name FROM species WHERE id = 1").Scan(&scientificName))
	assert.Equal(t, "A. siparaja", scientificName)
}

func TestDeleteSpeciesThroughMethodOverride(t *testing.T) {
	handler, db := newTestServer(t)

	testutil.SeedSpecies(t, db, "Crimson Sunbird", "Aethopyga siparaja")

	form := url.Values{"_method": {"DELETE"}}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, testutil.PostForm("/species/1", form))

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/note/all", recorder.Header().Get("Location"))

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM species").Scan(&count))
	assert.Equal(t, 0, count)
}

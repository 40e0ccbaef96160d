// Package testutil gathers the helpers feature tests share: an in-memory
// database with the production schema, form request builders and seeders.
package testutil

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/bwgoh/birding/pkg/auth"
	"github.com/bwgoh/birding/pkg/storage/sqlite"
)

// memoryDBCounter disambiguates the shared-cache memory databases handed to
// concurrently running tests.
var memoryDBCounter atomic.Int64

// OpenStorage builds a fresh in-memory database carrying the full schema.
func OpenStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// a plain :memory: path would hand every pooled connection its own empty
	// database; a uniquely named shared-cache one survives the pool
	path := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", memoryDBCounter.Add(1))

	storage, err := sqlite.New(logger, path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// a single connection sidesteps sqlite's write locking between tests' statements
	storage.Connection.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

// DiscardLogger returns a logger whose output goes nowhere.
func DiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// SeedUser inserts an account and returns its id.
func SeedUser(t *testing.T, db *sql.DB, email, hashedPassword string) int64 {
	t.Helper()
	result, err := db.Exec("INSERT INTO users (email, password) VALUES (?, ?)", email, hashedPassword)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// SeedSpecies inserts a catalogue entry and returns its id.
func SeedSpecies(t *testing.T, db *sql.DB, name, scientificName string) int64 {
	t.Helper()
	result, err := db.Exec("INSERT INTO species (name, scientific_name) VALUES (?, ?)", name, scientificName)
	if err != nil {
		t.Fatalf("failed to seed species: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// SeedNote inserts an observation with canned fields and returns its id.
func SeedNote(t *testing.T, db *sql.DB, speciesId int64) int64 {
	t.Helper()
	result, err := db.Exec(`
		INSERT INTO notes (habitat, date, appearance, behaviour, vocalisations, flocksize, species_id)
		VALUES ('mangrove', '01 Feb 2023 08:15', 'grey crown', 'foraging', 'harsh kek', 3, ?)`,
		speciesId)
	if err != nil {
		t.Fatalf("failed to seed note: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// AttributeNote links a note to its author.
func AttributeNote(t *testing.T, db *sql.DB, userId, noteId int64) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO users_notes (user_id, note_id) VALUES (?, ?)", userId, noteId); err != nil {
		t.Fatalf("failed to attribute note: %v", err)
	}
}

// CountAttributions reports how many users_notes rows reference the note.
func CountAttributions(t *testing.T, db *sql.DB, noteId int64) (count int) {
	t.Helper()
	if err := db.QueryRow("SELECT count(*) FROM users_notes WHERE note_id = ?", noteId).Scan(&count); err != nil {
		t.Fatalf("failed to count attributions: %v", err)
	}
	return count
}

// PostForm builds a form-encoded POST request.
func PostForm(path string, form url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

// SignIn stamps the request with a signed session cookie for the given user.
func SignIn(t *testing.T, sessions *auth.Sessions, request *http.Request, userId int64, username string) {
	t.Helper()
	recorder := httptest.NewRecorder()
	if err := sessions.Issue(recorder, auth.Session{UserId: userId, Username: username}); err != nil {
		t.Fatalf("failed to issue test session: %v", err)
	}
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
}

// CarryCookies copies the cookies a previous response set onto the request.
func CarryCookies(request *http.Request, recorder *httptest.ResponseRecorder) {
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
}

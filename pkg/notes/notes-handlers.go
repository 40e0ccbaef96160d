package notes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bwgoh/birding/pkg/auth"
	"github.com/bwgoh/birding/pkg/rest"
	"github.com/bwgoh/birding/pkg/species"
	"github.com/bwgoh/birding/pkg/views"
)

func RegisterHandlers(engine rest.Engine, nr NoteRepository, sr species.SpeciesRepository, sessions *auth.Sessions) {
	engine.Get("/note", getNoteForm(sr, sessions))
	engine.Post("/note", addNote(nr, sessions))
	// httprouter rejects a static /note/all next to /note/:id, so the wildcard
	// route dispatches the literal itself
	engine.Get("/note/:id", getNote(nr, sessions))
	engine.Get("/note/:id/edit", editNoteForm(nr, sr, sessions))
	engine.Put("/note/:id", updateNote(nr, sessions))
	engine.Delete("/note/:id", deleteNote(nr, sessions))
}

var (
	errNoSession = errors.New("login required")
	errForbidden = errors.New("requester is not the note's author")
)

// mutationPermission is the single policy deciding whether the requester may
// alter a note: a session is required, and attributed notes yield only to
// their recorded author. Unattributed notes belong to nobody, so any signed-in
// user may maintain them.
func mutationPermission(nr NoteRepository, session auth.Session, authenticated bool, noteId int64) error {
	if !authenticated {
		return errNoSession
	}
	authorId, err := nr.GetAuthor(noteId)
	if errors.Is(err, ErrUnattributed) {
		return nil
	}
	if err != nil {
		return err
	}
	if authorId != session.UserId {
		return errForbidden
	}
	return nil
}

// denyMutation renders the denial matching the failed permission check.
func denyMutation(writer http.ResponseWriter, request *http.Request, permissionErr error, username string) {
	switch {
	case errors.Is(permissionErr, errNoSession):
		views.Error(writer, "Please Login! Permission Denied!", username)
	case errors.Is(permissionErr, errForbidden):
		views.Error(writer, "Permission Denied!", username)
	default:
		views.Unavailable(writer, rest.GetLogger(request), permissionErr)
	}
}

// getNoteForm renders the submission form, along with the catalogue of species to pick from.
func getNoteForm(sr species.SpeciesRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		catalogue, err := sr.GetAll()
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		var session, _ = sessions.Resolve(request)
		views.Render(writer, "note-form", struct {
			Species  []species.Species
			Username string
		}{catalogue, session.Username})
	}
}

// addNote stores a new observation; requests carrying a session also record
// its author, while anonymous submissions remain legitimate and unattributed.
func addNote(nr NoteRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, authenticated = sessions.Resolve(request)

		var data = parseNoteForm(request)
		if err := data.Validate(); err != nil {
			views.Error(writer, err.Error(), session.Username)
			return
		}

		var authorId int64
		if authenticated {
			authorId = session.UserId
		}

		id, err := nr.Add(data, authorId)
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, fmt.Sprintf("/note/%d", id), http.StatusFound)
	}
}

func getNote(nr NoteRepository, sessions *auth.Sessions) http.HandlerFunc {
	var allNotes = getAllNotes(nr, sessions)
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, _ = sessions.Resolve(request)

		if rest.GetParam(request, "id") == "all" {
			allNotes(writer, request)
			return
		}

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No notes matches search", session.Username)
			return
		}

		note, err := nr.GetWithSpecies(id)
		if errors.Is(err, ErrNotFound) {
			views.Error(writer, "No notes matches search", session.Username)
			return
		} else if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		views.Render(writer, "note", struct {
			Note     NoteWithSpecies
			Username string
		}{note, session.Username})
	}
}

func getAllNotes(nr NoteRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, _ = sessions.Resolve(request)

		observations, err := nr.GetAll()
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}
		if len(observations) == 0 {
			views.Error(writer, "There are no notes", session.Username)
			return
		}

		views.Render(writer, "notes", struct {
			Notes    []Note
			Username string
		}{observations, session.Username})
	}
}

func editNoteForm(nr NoteRepository, sr species.SpeciesRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, authenticated = sessions.Resolve(request)

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No notes matches search", session.Username)
			return
		}

		if err = mutationPermission(nr, session, authenticated, id); err != nil {
			denyMutation(writer, request, err, session.Username)
			return
		}

		note, err := nr.Get(id)
		if errors.Is(err, ErrNotFound) {
			views.Error(writer, "No notes matches search", session.Username)
			return
		} else if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		catalogue, err := sr.GetAll()
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		views.Render(writer, "note-edit", struct {
			Note     Note
			Species  []species.Species
			Username string
		}{note, catalogue, session.Username})
	}
}

func updateNote(nr NoteRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, authenticated = sessions.Resolve(request)

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No notes matches search", session.Username)
			return
		}

		if err = mutationPermission(nr, session, authenticated, id); err != nil {
			denyMutation(writer, request, err, session.Username)
			return
		}

		var data = parseNoteForm(request)
		if err = data.Validate(); err != nil {
			views.Error(writer, err.Error(), session.Username)
			return
		}

		if err = nr.Update(id, data); err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, fmt.Sprintf("/note/%d", id), http.StatusFound)
	}
}

func deleteNote(nr NoteRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, authenticated = sessions.Resolve(request)

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No notes matches search", session.Username)
			return
		}

		if err = mutationPermission(nr, session, authenticated, id); err != nil {
			denyMutation(writer, request, err, session.Username)
			return
		}

		if err = nr.Delete(id); err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, "/note/all", http.StatusFound)
	}
}

func parseNoteForm(request *http.Request) NoteData {
	flockSize, _ := strconv.Atoi(request.PostFormValue("flocksize"))
	speciesId, _ := strconv.ParseInt(request.PostFormValue("species"), 10, 64)
	return NoteData{
		Habitat:       request.PostFormValue("habitat"),
		DateTime:      request.PostFormValue("date_time"),
		Appearance:    request.PostFormValue("appearance"),
		Behaviour:     request.PostFormValue("behaviour"),
		Vocalisations: request.PostFormValue("vocalisations"),
		FlockSize:     flockSize,
		SpeciesId:     speciesId,
	}
}

func parseId(request *http.Request) (int64, error) {
	return strconv.ParseInt(rest.GetParam(request, "id"), 10, 64)
}

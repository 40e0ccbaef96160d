package species

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bwgoh/birding/pkg/auth"
	"github.com/bwgoh/birding/pkg/rest"
	"github.com/bwgoh/birding/pkg/views"
)

func RegisterHandlers(engine rest.Engine, sr SpeciesRepository, sessions *auth.Sessions) {
	engine.Get("/species", getSpeciesForm(sessions))
	engine.Post("/species", addSpecies(sr))
	// httprouter rejects a static /species/all next to /species/:id, so the
	// wildcard route dispatches the literal itself
	engine.Get("/species/:id", getSpeciesNotes(sr, sessions))
	engine.Get("/species/:id/edit", editSpeciesForm(sr, sessions))
	engine.Put("/species/:id", updateSpecies(sr))
	engine.Delete("/species/:id", deleteSpecies(sr))
}

// getSpeciesForm renders the empty species submission form.
func getSpeciesForm(sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var session, _ = sessions.Resolve(request)
		views.Render(writer, "species-form", struct {
			Username string
		}{session.Username})
	}
}

func addSpecies(sr SpeciesRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var data = SpeciesData{
			Name:           request.PostFormValue("speciesname"),
			ScientificName: request.PostFormValue("scientificnm"),
		}
		if err := data.Validate(); err != nil {
			views.Error(writer, err.Error(), "")
			return
		}

		id, err := sr.Add(data)
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, fmt.Sprintf("/species/%d", id), http.StatusFound)
	}
}

func getAllSpecies(sr SpeciesRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		catalogue, err := sr.GetAll()
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		var session, _ = sessions.Resolve(request)
		views.Render(writer, "species", struct {
			Species  []Species
			Username string
		}{catalogue, session.Username})
	}
}

// getSpeciesNotes lists the notes recorded for one species, filtered by the
// species id carried in the path.
func getSpeciesNotes(sr SpeciesRepository, sessions *auth.Sessions) http.HandlerFunc {
	var allSpecies = getAllSpecies(sr, sessions)
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, _ = sessions.Resolve(request)

		if rest.GetParam(request, "id") == "all" {
			allSpecies(writer, request)
			return
		}

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "There are no notes from that species", session.Username)
			return
		}

		entry, err := sr.Get(id)
		if errors.Is(err, ErrNotFound) {
			views.Error(writer, "There are no notes from that species", session.Username)
			return
		} else if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		observations, err := sr.GetNotes(id)
		if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}
		if len(observations) == 0 {
			views.Error(writer, "There are no notes from that species", session.Username)
			return
		}

		views.Render(writer, "species-notes", struct {
			SpeciesName string
			Notes       []SpeciesNote
			Username    string
		}{entry.Name, observations, session.Username})
	}
}

func editSpeciesForm(sr SpeciesRepository, sessions *auth.Sessions) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var session, _ = sessions.Resolve(request)

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No species matches search", session.Username)
			return
		}

		entry, err := sr.Get(id)
		if errors.Is(err, ErrNotFound) {
			views.Error(writer, "No species matches search", session.Username)
			return
		} else if err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		views.Render(writer, "species-edit", struct {
			Species  Species
			Username string
		}{entry, session.Username})
	}
}

func updateSpecies(sr SpeciesRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No species matches search", "")
			return
		}

		var data = SpeciesData{
			Name:           request.PostFormValue("speciesname"),
			ScientificName: request.PostFormValue("scientificnm"),
		}
		if err = data.Validate(); err != nil {
			views.Error(writer, err.Error(), "")
			return
		}

		if err = sr.Update(id, data); err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, "/species/all", http.StatusFound)
	}
}

func deleteSpecies(sr SpeciesRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		id, err := parseId(request)
		if err != nil {
			views.Error(writer, "No species matches search", "")
			return
		}

		if err = sr.Delete(id); err != nil {
			views.Unavailable(writer, rest.GetLogger(request), err)
			return
		}

		http.Redirect(writer, request, "/note/all", http.StatusFound)
	}
}

func parseId(request *http.Request) (int64, error) {
	return strconv.ParseInt(rest.GetParam(request, "id"), 10, 64)
}

// Package views renders the application's server-side HTML, playing the same
// role a JSON emission package would in an API: handlers pick a view and a
// payload, the package deals with status codes and encoding.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.gohtml
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.gohtml"))

// errorData feeds the shared error view, used for empty states, permission
// denials and storage failures alike.
type errorData struct {
	Text     string
	Username string
}

// Render executes the named view against the payload, with a 200 status.
func Render(writer http.ResponseWriter, name string, payload any) {
	render(writer, http.StatusOK, name, payload)
}

// Error renders the shared error view with a human readable message.
// Empty result sets aren't failures, hence the deliberate 200 status.
func Error(writer http.ResponseWriter, text string, username string) {
	render(writer, http.StatusOK, "error", errorData{Text: text, Username: username})
}

// Unavailable reports a storage failure with a 503 response, logging the culprit.
func Unavailable(writer http.ResponseWriter, logger logrus.FieldLogger, err error) {
	if logger != nil {
		logger.WithError(err).Error("storage failure")
	}
	render(writer, http.StatusServiceUnavailable, "error", errorData{Text: "Service temporarily unavailable."})
}

// render buffers the execution so a template fault never leaks a half-written
// page after the status line has gone out.
func render(writer http.ResponseWriter, status int, name string, payload any) {
	var buffer bytes.Buffer
	if err := templates.ExecuteTemplate(&buffer, name+".gohtml", payload); err != nil {
		http.Error(writer, "error while rendering view", http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

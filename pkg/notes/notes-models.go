package notes

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Note is a single bird observation. Date holds the display-formatted string
// produced at write time, not a canonical timestamp.
type Note struct {
	Id            int64
	Habitat       string
	Date          string
	Appearance    string
	Behaviour     string
	Vocalisations string
	FlockSize     int
	SpeciesId     int64
}

// NoteWithSpecies joins a note with the name of the species it records.
type NoteWithSpecies struct {
	Note
	SpeciesName string
}

// NoteData carries the submitted fields for additions and edits.
type NoteData struct {
	Habitat       string
	DateTime      string
	Appearance    string
	Behaviour     string
	Vocalisations string
	FlockSize     int
	SpeciesId     int64
}

func (data NoteData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Habitat, validation.Required, validation.Length(1, 200)),
		validation.Field(&data.DateTime, validation.Required),
		validation.Field(&data.SpeciesId, validation.Required, validation.Min(1)),
		validation.Field(&data.FlockSize, validation.Min(0)),
	)
}

// displayLayout renders dates as `02 Jan 2006 03:04` across all views.
const displayLayout = "02 Jan 2006 03:04"

// inputLayouts cover datetime-local form values and already formatted dates
// resubmitted through the edit form.
var inputLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	displayLayout,
}

// FormatObservedDate rewrites a submitted date to the display pattern, at
// write time. Values matching no known layout are stored as received.
func FormatObservedDate(raw string) string {
	for _, layout := range inputLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(displayLayout)
		}
	}
	return raw
}

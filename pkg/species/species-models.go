package species

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Species is a catalogue entry observation notes point to.
type Species struct {
	Id             int64
	Name           string
	ScientificName string
}

// SpeciesData carries the submitted fields for additions and edits.
type SpeciesData struct {
	Name           string
	ScientificName string
}

func (data SpeciesData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&data.ScientificName, validation.Required, validation.Length(1, 100)),
	)
}

// SpeciesNote is a note row listed on a species page; the join lives in this
// package so the notes package needn't be imported.
type SpeciesNote struct {
	Id        int64
	Habitat   string
	Date      string
	FlockSize int
}

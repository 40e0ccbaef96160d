package species

import (
	"database/sql"
	"errors"
)

type SpeciesRepository interface {
	GetAll() ([]Species, error)
	Get(id int64) (Species, error)
	Add(data SpeciesData) (int64, error)
	Update(id int64, data SpeciesData) error
	Delete(id int64) error
	GetNotes(speciesId int64) ([]SpeciesNote, error)
}

type speciesRepository struct {
	Connection *sql.DB
}

var ErrNotFound = errors.New("species not found")

func NewRepository(connection *sql.DB) SpeciesRepository {
	return &speciesRepository{connection}
}

func (sr *speciesRepository) GetAll() (catalogue []Species, err error) {
	rows, err := sr.Connection.Query("SELECT id, name, scientific_name FROM species")
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		var entry Species
		if err = rows.Scan(&entry.Id, &entry.Name, &entry.ScientificName); err != nil {
			return catalogue, err
		}
		catalogue = append(catalogue, entry)
	}

	if err = rows.Err(); err != nil {
		return catalogue, err
	}
	if err = rows.Close(); err != nil {
		return catalogue, err
	}

	return catalogue, err
}

// Get either returns the species matching the id, or ErrNotFound.
func (sr *speciesRepository) Get(id int64) (entry Species, err error) {
	if err = sr.Connection.QueryRow(
		"SELECT id, name, scientific_name FROM species WHERE id = ?", id).Scan(
		&entry.Id,
		&entry.Name,
		&entry.ScientificName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry, ErrNotFound
		}
		return entry, err
	}
	return entry, nil
}

func (sr *speciesRepository) Add(data SpeciesData) (int64, error) {
	result, err := sr.Connection.Exec(
		"INSERT INTO species (name, scientific_name) VALUES (?, ?)",
		data.Name, data.ScientificName)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (sr *speciesRepository) Update(id int64, data SpeciesData) error {
	_, err := sr.Connection.Exec(
		"UPDATE species SET name = ?, scientific_name = ? WHERE id = ?",
		data.Name, data.ScientificName, id)
	return err
}

// Delete removes the catalogue entry; notes referring to it are left in place,
// as observations outlive catalogue mistakes.
func (sr *speciesRepository) Delete(id int64) error {
	_, err := sr.Connection.Exec("DELETE FROM species WHERE id = ?", id)
	return err
}

// GetNotes lists the observation notes recorded for the given species.
func (sr *speciesRepository) GetNotes(speciesId int64) (observations []SpeciesNote, err error) {
	rows, err := sr.Connection.Query(`
		SELECT notes.id, notes.habitat, notes.date, notes.flocksize
		FROM notes JOIN species ON notes.species_id = species.id
		WHERE notes.species_id = ?`,
		speciesId,
	)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		var observation SpeciesNote
		if err = rows.Scan(&observation.Id, &observation.Habitat, &observation.Date, &observation.FlockSize); err != nil {
			return observations, err
		}
		observations = append(observations, observation)
	}

	if err = rows.Err(); err != nil {
		return observations, err
	}
	if err = rows.Close(); err != nil {
		return observations, err
	}

	return observations, nil
}

package notes

import (
	"database/sql"
	"errors"
)

type NoteRepository interface {
	GetAll() ([]Note, error)
	Get(id int64) (Note, error)
	GetWithSpecies(id int64) (NoteWithSpecies, error)
	Add(data NoteData, authorId int64) (int64, error)
	Update(id int64, data NoteData) error
	Delete(id int64) error
	GetAuthor(noteId int64) (int64, error)
	ListForUser(userId int64) ([]Note, error)
}

type noteRepository struct {
	Connection *sql.DB
}

var (
	ErrNotFound     = errors.New("note not found")
	ErrUnattributed = errors.New("note has no recorded author")
)

func NewRepository(connection *sql.DB) NoteRepository {
	return &noteRepository{connection}
}

const noteColumns = "id, habitat, date, appearance, behaviour, vocalisations, flocksize, species_id"

func (nr *noteRepository) GetAll() (observations []Note, err error) {
	rows, err := nr.Connection.Query("SELECT " + noteColumns + " FROM notes")
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		var note Note
		if err = scanNote(rows, &note); err != nil {
			return observations, err
		}
		observations = append(observations, note)
	}

	if err = rows.Err(); err != nil {
		return observations, err
	}
	if err = rows.Close(); err != nil {
		return observations, err
	}

	return observations, err
}

// Get either returns the bare note matching the id, or ErrNotFound.
func (nr *noteRepository) Get(id int64) (note Note, err error) {
	if err = nr.Connection.QueryRow(
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id).Scan(
		&note.Id,
		&note.Habitat,
		&note.Date,
		&note.Appearance,
		&note.Behaviour,
		&note.Vocalisations,
		&note.FlockSize,
		&note.SpeciesId,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return note, ErrNotFound
		}
		return note, err
	}
	return note, nil
}

// GetWithSpecies joins the note with its species name, or reports ErrNotFound.
func (nr *noteRepository) GetWithSpecies(id int64) (note NoteWithSpecies, err error) {
	if err = nr.Connection.QueryRow(`
		SELECT notes.id, notes.habitat, notes.date, notes.appearance, notes.behaviour,
		       notes.vocalisations, notes.flocksize, notes.species_id, species.name
		FROM notes JOIN species ON notes.species_id = species.id
		WHERE notes.id = ?`, id).Scan(
		&note.Id,
		&note.Habitat,
		&note.Date,
		&note.Appearance,
		&note.Behaviour,
		&note.Vocalisations,
		&note.FlockSize,
		&note.SpeciesId,
		&note.SpeciesName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return note, ErrNotFound
		}
		return note, err
	}
	return note, nil
}

// Add inserts the note and, when an author is known, its attribution row; the
// two writes share a transaction so a note never ends up half attributed.
// An authorId of zero records an anonymous observation.
func (nr *noteRepository) Add(data NoteData, authorId int64) (id int64, err error) {
	tx, err := nr.Connection.Begin()
	if err != nil {
		return 0, err
	}

	// rolling back after a commit is a safe NOP
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
		INSERT INTO notes (habitat, date, appearance, behaviour, vocalisations, flocksize, species_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.Habitat,
		FormatObservedDate(data.DateTime),
		data.Appearance,
		data.Behaviour,
		data.Vocalisations,
		data.FlockSize,
		data.SpeciesId,
	)
	if err != nil {
		return 0, err
	}

	if id, err = result.LastInsertId(); err != nil {
		return 0, err
	}

	if authorId > 0 {
		if _, err = tx.Exec(
			"INSERT INTO users_notes (user_id, note_id) VALUES (?, ?)", authorId, id); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

func (nr *noteRepository) Update(id int64, data NoteData) error {
	_, err := nr.Connection.Exec(`
		UPDATE notes
		SET habitat = ?, date = ?, appearance = ?, behaviour = ?, vocalisations = ?, flocksize = ?, species_id = ?
		WHERE id = ?`,
		data.Habitat,
		FormatObservedDate(data.DateTime),
		data.Appearance,
		data.Behaviour,
		data.Vocalisations,
		data.FlockSize,
		data.SpeciesId,
		id,
	)
	return err
}

// Delete removes the note along with its attribution row, in one transaction,
// so neither can outlive the other.
func (nr *noteRepository) Delete(id int64) error {
	tx, err := nr.Connection.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec("DELETE FROM notes WHERE id = ?", id); err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM users_notes WHERE note_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// GetAuthor resolves the note's recorded author, or ErrUnattributed when the
// note was submitted anonymously.
func (nr *noteRepository) GetAuthor(noteId int64) (authorId int64, err error) {
	if err = nr.Connection.QueryRow(
		"SELECT user_id FROM users_notes WHERE note_id = ?", noteId).Scan(&authorId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUnattributed
		}
		return 0, err
	}
	return authorId, nil
}

// ListForUser fetches the notes attributed to the given user, for the profile page.
func (nr *noteRepository) ListForUser(userId int64) (observations []Note, err error) {
	rows, err := nr.Connection.Query(`
		SELECT notes.id, notes.habitat, notes.date, notes.appearance, notes.behaviour,
		       notes.vocalisations, notes.flocksize, notes.species_id
		FROM notes JOIN users_notes ON users_notes.note_id = notes.id
		WHERE users_notes.user_id = ?`,
		userId,
	)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		var note Note
		if err = scanNote(rows, &note); err != nil {
			return observations, err
		}
		observations = append(observations, note)
	}

	if err = rows.Err(); err != nil {
		return observations, err
	}
	if err = rows.Close(); err != nil {
		return observations, err
	}

	return observations, nil
}

func scanNote(rows *sql.Rows, note *Note) error {
	return rows.Scan(
		&note.Id,
		&note.Habitat,
		&note.Date,
		&note.Appearance,
		&note.Behaviour,
		&note.Vocalisations,
		&note.FlockSize,
		&note.SpeciesId,
	)
}

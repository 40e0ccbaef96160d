package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type UserRepository interface {
	FindByEmail(email string) (User, error)
	Register(email, hashedPassword string) (int64, error)
}

type userRepository struct {
	Connection *sql.DB
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email has already been signed up")
)

func NewRepository(connection *sql.DB) UserRepository {
	return &userRepository{connection}
}

// FindByEmail either returns the user matching the email, or ErrNotFound.
func (ur *userRepository) FindByEmail(email string) (user User, err error) {
	if err = ur.Connection.QueryRow(
		"SELECT id, email, password FROM users WHERE email = ?", email).Scan(
		&user.Id,
		&user.Email,
		&user.Password,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, err
	}
	return user, nil
}

// Register inserts a new account and returns its id. The email uniqueness
// constraint catches the race two concurrent signups can slip through the
// handler's pre-check.
func (ur *userRepository) Register(email, hashedPassword string) (int64, error) {
	result, err := ur.Connection.Exec(
		"INSERT INTO users (email, password) VALUES (?, ?)", email, hashedPassword)

	// detect uniqueness violations which signal that the email is taken
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, fmt.Errorf("couldn't register %q: %w", email, err)
	}

	return result.LastInsertId()
}

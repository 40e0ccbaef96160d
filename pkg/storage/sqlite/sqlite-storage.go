package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Storage wraps the single sqlite connection pool shared by all repositories.
// The pool is handed to repository constructors explicitly; no package holds it as a singleton.
type Storage struct {
	Connection *sql.DB
}

// New opens the database at the given path, building the schema for new files
// and verifying existing ones against the embedded definition.
func New(logger logrus.FieldLogger, path string) (*Storage, error) {

	logger.Println("initialising SQLite DB")

	var connection *sql.DB
	var err error

	// the database already exists, check for its contents
	if _, statErr := os.Stat(path); statErr == nil {
		connection, err = getValidConnection(path)
		if err != nil {
			logger.WithError(err).Error("error while verifying existing database")
			return nil, err
		}
	} else {
		// create the file and initialise the schema; mind the explicit need for foreign keys constraints
		connection, err = sql.Open("sqlite3", getConnectionString(path))
		if err != nil {
			logger.WithError(err).Error("error while creating new database")
			return nil, err
		}
		if _, err = connection.Exec(schema); err != nil {
			logger.WithError(err).Error("error while building database schema")
			return nil, err
		}
	}

	// opening the DB will fail silently when the package is compiled without CGO_ENABLED
	if err = connection.Ping(); err != nil {
		return nil, err
	}

	return &Storage{Connection: connection}, nil
}

func (s *Storage) Close() error {
	return s.Connection.Close()
}

func getValidConnection(path string) (connection *sql.DB, err error) {
	connection, err = sql.Open("sqlite3", getConnectionString(path))
	if err != nil {
		return nil, err
	}

	// build the desired schema in memory for comparison
	desired, err := sql.Open("sqlite3", getConnectionString(":memory:"))
	if err != nil {
		return nil, err
	}
	if _, err = desired.Exec(schema); err != nil {
		return nil, err
	}

	desiredTables, err := mapSchema(desired)
	if err != nil {
		return nil, err
	}
	actualTables, err := mapSchema(connection)
	if err != nil {
		return nil, err
	}

	// the database already exists and its schema matches the desired one
	if sameSchemaMap(desiredTables, actualTables) {
		return connection, nil
	}
	return nil, errors.New("schema mismatch")
}

func mapSchema(connection *sql.DB) (tables map[string]string, err error) {

	rows, err := connection.Query(`SELECT name, sql FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}

	// in-memory and on-file sqlite schemas can differ in whitespace, depending on the hosting platform
	var replacer = strings.NewReplacer(
		"\n\t\t", "",
		"\r\n\t\t", "",
		"\r\n", "",
		"\n", "",
	)

	tables = make(map[string]string)
	var name, sqlCode string
	for rows.Next() {
		if err = rows.Scan(&name, &sqlCode); err != nil {
			return tables, err
		}
		tables[name] = replacer.Replace(sqlCode)
	}

	if err = rows.Err(); err != nil {
		return tables, err
	}
	if err = rows.Close(); err != nil {
		return tables, err
	}

	return tables, err
}

func sameSchemaMap(first, second map[string]string) bool {
	// the second map might be larger than the first, hence the additional length check
	if len(first) != len(second) {
		return false
	}
	for firstKey, firstValue := range first {
		if secondValue, found := second[firstKey]; !found || secondValue != firstValue {
			return false
		}
	}
	return true
}

// getConnectionString provides a configuration string that enables foreign keys constraints
func getConnectionString(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_fk=on"
	}
	return path + "?_fk=on"
}

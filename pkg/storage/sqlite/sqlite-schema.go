package sqlite

// Referential integrity between notes, species and users is deliberately loose:
// species can be removed while notes still point at them, matching the
// application's behaviour. The email uniqueness constraint is the exception,
// as it closes the signup race the application-level pre-check leaves open.
const schema = `
BEGIN TRANSACTION;

CREATE TABLE
	IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);

CREATE TABLE
	IF NOT EXISTS species (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		scientific_name TEXT NOT NULL
	);

CREATE TABLE
	IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		habitat TEXT NOT NULL,
		date TEXT NOT NULL,
		appearance TEXT,
		behaviour TEXT,
		vocalisations TEXT,
		flocksize INTEGER NOT NULL DEFAULT 1,
		species_id INTEGER NOT NULL
	);

CREATE TABLE
	IF NOT EXISTS users_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		note_id INTEGER NOT NULL
	);

COMMIT;
`

package database

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mtihani/portal/core"
)

// Open connects to the configured Postgres database.
func Open() (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", core.Conf.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	return db, nil
}

var schema = `
CREATE TABLE IF NOT EXISTS "user" (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	username      TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	roles         TEXT NOT NULL DEFAULT '',
	password_hash BYTEA,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_login    TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
);

CREATE TABLE IF NOT EXISTS timetable_entry (
	id       SERIAL PRIMARY KEY,
	program  TEXT NOT NULL,
	semester INT NOT NULL,
	subject  TEXT NOT NULL,
	code     TEXT NOT NULL,
	date     TIMESTAMPTZ NOT NULL,
	slot     TEXT NOT NULL,
	venue    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS marks_entry (
	id         SERIAL PRIMARY KEY,
	student_id INT NOT NULL REFERENCES "user" (id),
	subject    TEXT NOT NULL,
	code       TEXT NOT NULL,
	score      INT NOT NULL,
	out_of     INT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'draft',
	entered_by INT NOT NULL REFERENCES "user" (id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS hall_ticket (
	id          SERIAL PRIMARY KEY,
	student_id  INT NOT NULL REFERENCES "user" (id),
	program     TEXT NOT NULL,
	semester    INT NOT NULL,
	seat_number TEXT NOT NULL,
	venue       TEXT NOT NULL,
	issued_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (student_id, semester)
);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return errors.Wrap(err, "migrating schema")
}

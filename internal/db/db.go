package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the tables on startup when they do not exist yet.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stranke (
		id BIGSERIAL PRIMARY KEY,
		ime TEXT NOT NULL,
		priimek TEXT NOT NULL,
		naslov TEXT NOT NULL DEFAULT '',
		telefon TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		opombe TEXT NOT NULL DEFAULT '',
		datum_dodajanja TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS oprema (
		id BIGSERIAL PRIMARY KEY,
		stranka_id BIGINT NOT NULL REFERENCES stranke (id) ON DELETE CASCADE,
		tip_opreme TEXT NOT NULL,
		znamka TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		serijska_stevilka TEXT NOT NULL DEFAULT '',
		datum_nakupa DATE,
		garancija_do DATE,
		opombe TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS vzdrzevalni_nalogi (
		id BIGSERIAL PRIMARY KEY,
		stranka_id BIGINT NOT NULL REFERENCES stranke (id) ON DELETE CASCADE,
		oprema_id BIGINT REFERENCES oprema (id) ON DELETE SET NULL,
		naslov TEXT NOT NULL,
		opis TEXT NOT NULL DEFAULT '',
		datum_ustvarjanja TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		datum_nacrtovanega_vzdrzevanja DATE,
		datum_izvedbe DATE,
		status TEXT NOT NULL DEFAULT 'nacrtovan',
		prioriteta TEXT NOT NULL DEFAULT 'srednja',
		rezervni_deli TEXT NOT NULL DEFAULT '',
		opombe TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS slike (
		id BIGSERIAL PRIMARY KEY,
		nalog_id BIGINT NOT NULL REFERENCES vzdrzevalni_nalogi (id) ON DELETE CASCADE,
		ime_datoteke TEXT NOT NULL,
		pot TEXT NOT NULL,
		datum_dodajanja TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS obvestila (
		id BIGSERIAL PRIMARY KEY,
		nalog_id BIGINT NOT NULL REFERENCES vzdrzevalni_nalogi (id) ON DELETE CASCADE,
		tip TEXT NOT NULL,
		naslov TEXT NOT NULL,
		sporocilo TEXT NOT NULL DEFAULT '',
		datum_posiljanja TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'ne_poslano'
	)`,
}

func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

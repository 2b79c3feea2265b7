package migrate

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"
)

// Up applies goose migrations from dir to the database behind connString.
func Up(connString, dir string) error {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return errors.New("opening db for migrations error: " + err.Error())
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		return errors.New("setting migrations dialect error: " + err.Error())
	}
	if err = goose.Up(db, dir); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}

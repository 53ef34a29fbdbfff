// Package sqlite is a SQLite implementation of the server's persistence
// layer, with one database file holding sessions and their command history.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"modernc.org/sqlite"

	"github.com/tmoresby/clork/server/dao"
)

type store struct {
	dbFilename string

	db *sql.DB

	sessions *SessionsDB
	commands *CommandsDB
}

// NewDatastore opens (creating if needed) the server database in the given
// directory.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "clork.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.sessions = &SessionsDB{db: st.db}
	if err := st.sessions.init(); err != nil {
		return nil, err
	}

	st.commands = &CommandsDB{db: st.db}
	if err := st.commands.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Sessions() dao.SessionRepository {
	return s.sessions
}

func (s *store) Commands() dao.CommandRepository {
	return s.commands
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

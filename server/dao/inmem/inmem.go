// Package inmem is an in-memory implementation of the server's persistence
// layer. Data lives only as long as the process; it is the store used when no
// database path is configured, and the store tests run against.
package inmem

import (
	"github.com/tmoresby/clork/server/dao"
)

type store struct {
	sessions *SessionsRepo
	commands *CommandsRepo
}

// NewDatastore creates a new empty in-memory store.
func NewDatastore() dao.Store {
	return &store{
		sessions: newSessionsRepo(),
		commands: newCommandsRepo(),
	}
}

func (s *store) Sessions() dao.SessionRepository {
	return s.sessions
}

func (s *store) Commands() dao.CommandRepository {
	return s.commands
}

func (s *store) Close() error {
	return nil
}

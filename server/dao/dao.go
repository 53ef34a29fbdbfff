// Package dao provides data abstraction objects and database connection
// functions for the Clork server's persistence layer.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence layer of the server. Each repository covers one
// entity type; Close must be called before disposal.
type Store interface {
	Sessions() SessionRepository
	Commands() CommandRepository

	// Close closes any connections and releases all resources of the store.
	Close() error
}

// Session is one playthrough of a game world. The live game state is held by
// the server; the session row identifies the playthrough and which world it
// runs.
type Session struct {
	ID        uuid.UUID
	WorldFile string
	Created   time.Time
}

// Command is one accepted command within a session, with the narration it
// produced. Seq orders commands within their session, starting at 1.
type Command struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Seq       int
	Input     string
	Output    string
	Created   time.Time
}

// SessionRepository stores and retrieves sessions.
type SessionRepository interface {
	// Create saves a new session. The ID and Created fields are assigned by
	// the store; values in the passed-in entity are ignored.
	Create(ctx context.Context, s Session) (Session, error)

	// GetByID retrieves the session with the given ID. Returns ErrNotFound
	// if there is no such session.
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)

	// GetAll retrieves every session, oldest first.
	GetAll(ctx context.Context) ([]Session, error)

	// Delete removes the session with the given ID, returning it as it was
	// just before removal. Returns ErrNotFound if there is no such session.
	Delete(ctx context.Context, id uuid.UUID) (Session, error)
}

// CommandRepository stores the commands of sessions.
type CommandRepository interface {
	// Create saves a new command. The ID, Seq, and Created fields are
	// assigned by the store.
	Create(ctx context.Context, c Command) (Command, error)

	// GetAllBySession retrieves every command of a session, in Seq order.
	GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]Command, error)
}

// Package server implements an HTTP REST server that runs Clork game
// sessions. A session is anonymous: creating one returns its ID, and knowing
// the ID is what grants access to it. Commands posted to a session are run
// through the same parser and game engine as the CLI and their transcript is
// persisted, so a session can be resumed after a server restart by replaying
// it.
package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tmoresby/clork/server/dao"
	"github.com/tmoresby/clork/server/dao/inmem"
	"github.com/tmoresby/clork/server/dao/sqlite"
)

// Server is an HTTP REST server that provides Clork game sessions. The
// zero value of a Server should not be used directly; call New to get one
// ready for use.
type Server struct {
	router chi.Router
	db     dao.Store

	// worldFile is the world every new session runs.
	worldFile string

	mu   sync.Mutex
	live map[uuid.UUID]*liveSession
}

// New creates a new Server that runs the world at worldFile. If dbDir is
// non-empty, sessions and their transcripts persist to a SQLite database in
// that directory; otherwise everything is held in memory.
func New(worldFile string, dbDir string) (*Server, error) {
	s := &Server{
		worldFile: worldFile,
		live:      map[uuid.UUID]*liveSession{},
	}

	// fail fast on an unloadable world instead of on the first session
	if _, err := newLiveSession(worldFile); err != nil {
		return nil, fmt.Errorf("loading world %q: %w", worldFile, err)
	}

	var err error
	if dbDir != "" {
		s.db, err = sqlite.NewDatastore(dbDir)
		if err != nil {
			return nil, err
		}
	} else {
		s.db = inmem.NewDatastore()
	}

	s.initRoutes()

	return s, nil
}

func (s *Server) initRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.ep(s.epCreateSession))
		r.Get("/", s.ep(s.epListSessions))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.ep(s.epGetSession))
			r.Delete("/", s.ep(s.epDeleteSession))
			r.Post("/commands", s.ep(s.epCreateCommand))
			r.Get("/commands", s.ep(s.epListCommands))
		})
	})

	r.Get("/info", s.ep(s.epGetInfo))

	s.router = r
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost".
// If port is less than 1, it will default to 8080.
func (s *Server) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, s.router))
}

// ServeHTTP makes the server usable directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// Close shuts down the persistence layer.
func (s *Server) Close() error {
	return s.db.Close()
}

// ep adapts an endpoint function to http.HandlerFunc, centralizing response
// writing and logging.
func (s *Server) ep(fn func(req *http.Request) EndpointResult) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		fn(req).writeResponse(w, req)
	}
}

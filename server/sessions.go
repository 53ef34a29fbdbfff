package server

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/cwf"
	"github.com/tmoresby/clork/internal/game"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/server/dao"
)

// responseOutputWidth is how wide session narration is wrapped. Clients get
// pre-wrapped text so a dumb terminal view can show it as-is.
const responseOutputWidth = 80

// liveSession is the in-memory game behind one session: the parser, its
// continuation state, and the mutable world. Access is serialized; players
// can only reasonably send one command at a time, and the game is not
// concurrency-safe.
type liveSession struct {
	mu sync.Mutex

	p     *parser.Parser
	cont  *parser.Continuation
	state *game.State
	buf   strings.Builder
}

func newLiveSession(worldFile string) (*liveSession, error) {
	wd, err := cwf.LoadResourceBundle(worldFile)
	if err != nil {
		return nil, err
	}

	ls := &liveSession{
		p:    parser.NewDefault(),
		cont: parser.NewContinuation(),
	}
	wd.RegisterVocab(ls.p.Vocabulary())

	ls.state, err = game.New(wd.Rooms, wd.Start, game.IODevice{
		Width: responseOutputWidth,
		Output: func(s string, a ...interface{}) error {
			if len(a) > 0 {
				s = fmt.Sprintf(s, a...)
			}
			ls.buf.WriteString(s)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	ls.state.Inventory = wd.Inventory
	ls.state.MaxScore = wd.MaxScore

	return ls, nil
}

// Intro is the narration a session opens with.
func (ls *liveSession) Intro() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.buf.Reset()
	if err := ls.state.LookAround(); err != nil {
		return ""
	}
	return strings.TrimSpace(ls.buf.String())
}

// Execute runs one line of player input and returns the narration it
// produced, including parse diagnostics and clarifying questions.
func (ls *liveSession) Execute(line string) string {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var outputs []string

	for {
		ls.buf.Reset()

		result, perr := ls.p.Parse(ls.state.Snapshot(), ls.cont, line)
		if perr != nil {
			outputs = append(outputs, perr.GameMessage())
			break
		}

		if result.Notice != "" {
			outputs = append(outputs, result.Notice)
		}

		cmd := result.Command
		if cmd.Verb == vocab.VerbQuit {
			outputs = append(outputs, "I can't QUIT here. Delete the session to end it.")
			break
		}

		if err := ls.state.Advance(cmd); err != nil {
			outputs = append(outputs, clerrors.GameMessage(err))
		} else {
			outputs = append(outputs, strings.TrimSpace(ls.buf.String()))
		}

		if result.Rest == "" {
			break
		}
		line = result.Rest
	}

	return strings.Join(outputs, "\n\n")
}

// RoomName is the name of the room the player is currently in.
func (ls *liveSession) RoomName() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.state.CurrentRoom.Name
}

// Progress reports the session's score and move count.
func (ls *liveSession) Progress() (score, moves int) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.state.Score, ls.state.Moves
}

// liveFor returns the live game for the given session, creating it by
// replaying the persisted transcript if the server has restarted since the
// session was last used.
func (s *Server) liveFor(ctx context.Context, sess dao.Session) (*liveSession, error) {
	s.mu.Lock()
	if ls, ok := s.live[sess.ID]; ok {
		s.mu.Unlock()
		return ls, nil
	}
	s.mu.Unlock()

	ls, err := newLiveSession(sess.WorldFile)
	if err != nil {
		return nil, err
	}

	history, err := s.db.Commands().GetAllBySession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range history {
		ls.Execute(c.Input)
	}

	s.mu.Lock()
	s.live[sess.ID] = ls
	s.mu.Unlock()

	return ls, nil
}

// dropLive forgets the live game for a session, if one is loaded.
func (s *Server) dropLive(id uuid.UUID) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
}

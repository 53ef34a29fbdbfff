// Package mlio runs the game over a JSON-lines protocol for machine agents.
// Instead of typed text, an agent sends one structured action per line and
// receives one observation per line, so no text parsing is needed on either
// side.
package mlio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/cwf"
	"github.com/tmoresby/clork/internal/game"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// Action is one structured command from an agent. Verb is required; the other
// fields depend on it. Object references are world labels, lower or upper
// case.
type Action struct {
	Verb      string `json:"verb"`
	Direction string `json:"direction,omitempty"`
	Direct    string `json:"direct-object,omitempty"`
	Prep      string `json:"prep,omitempty"`
	Indirect  string `json:"indirect-object,omitempty"`
}

// Session is one machine-driven playthrough. It owns its own game state; the
// game's narration is captured and returned in observations instead of being
// printed.
type Session struct {
	load  func() (cwf.WorldData, error)
	vocab *vocab.Registry

	state *game.State
	buf   strings.Builder

	rewards *rewardTracker
}

// NewSession creates a session. load provides a fresh world; it is called
// once immediately and again on every reset action. When useRewards is true,
// observations carry a reward breakdown and running session statistics.
func NewSession(load func() (cwf.WorldData, error), useRewards bool) (*Session, error) {
	s := &Session{
		load:  load,
		vocab: vocab.NewDefaultRegistry(),
	}
	if useRewards {
		s.rewards = newRewardTracker(nil)
	}

	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) reset() error {
	wd, err := s.load()
	if err != nil {
		return clerrors.WrapGamef(err, "The game world failed to load.")
	}
	wd.RegisterVocab(s.vocab)

	s.buf.Reset()
	s.state, err = game.New(wd.Rooms, wd.Start, game.IODevice{
		Width: 999,
		Output: func(str string, a ...interface{}) error {
			if len(a) > 0 {
				str = fmt.Sprintf(str, a...)
			}
			s.buf.WriteString(str)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("initializing game state: %w", err)
	}
	s.state.Inventory = wd.Inventory
	s.state.MaxScore = wd.MaxScore

	if s.rewards != nil {
		s.rewards.reset()
		s.rewards.observe(s.state, "", false)
	}

	return nil
}

// Run reads actions from r and writes observations to w until a quit action
// or end of input. The first observation is emitted before any action is
// read.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)

	if err := enc.Encode(s.observe("", false, false)); err != nil {
		return err
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var act Action
		if err := json.Unmarshal([]byte(line), &act); err != nil {
			if err := enc.Encode(s.observe(fmt.Sprintf("bad action: %v", err), true, false)); err != nil {
				return err
			}
			continue
		}

		obs, done := s.Step(act)
		if err := enc.Encode(obs); err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	return sc.Err()
}

// Step applies one action and returns the resulting observation. The second
// return value is true when the action ends the session.
func (s *Session) Step(act Action) (Observation, bool) {
	switch strings.ToLower(act.Verb) {
	case "quit":
		return s.observe("Goodbye.", false, true), true
	case "reset":
		if err := s.reset(); err != nil {
			return s.observe(clerrors.GameMessage(err), true, false), false
		}
		return s.observe("", false, false), false
	case "stats":
		return s.observe("", false, false), false
	}

	cmd, err := s.toCommand(act)
	if err == nil {
		s.buf.Reset()
		err = s.state.Advance(cmd)
	}

	if err != nil {
		msg := clerrors.GameMessage(err)
		if s.rewards != nil {
			s.rewards.observe(s.state, msg, true)
		}
		return s.observe(msg, true, false), false
	}

	msg := strings.TrimSpace(s.buf.String())
	if s.rewards != nil {
		s.rewards.observe(s.state, msg, false)
	}
	return s.observe(msg, false, false), false
}

// toCommand turns a structured action into the resolved command form the game
// executes. Object references resolve against the current scope only.
func (s *Session) toCommand(act Action) (parser.Command, error) {
	var cmd parser.Command

	ent, ok := s.vocab.Lookup(act.Verb)
	if !ok || ent.Roles&vocab.RoleVerb == 0 {
		return cmd, clerrors.Gamef("I don't know the verb %q.", act.Verb)
	}
	cmd.Verb = ent.Verb

	if act.Direction != "" {
		dir, ok := vocab.DirectionsByString[strings.ToUpper(act.Direction)]
		if !ok {
			return cmd, clerrors.Gamef("%q is not a direction.", act.Direction)
		}
		cmd.Direction = dir
		if cmd.Verb == vocab.VerbWalk {
			return cmd, nil
		}
	}

	snap := s.state.Snapshot()

	if act.Direct != "" {
		obj := snap.Find(strings.ToUpper(act.Direct))
		if obj == nil || obj.Has(world.FlagInvisible) {
			return cmd, clerrors.Gamef("You can't see any %s here!", strings.ToLower(act.Direct))
		}
		cmd.Direct = []*world.Object{obj}
	}

	if act.Prep != "" {
		pent, ok := s.vocab.Lookup(act.Prep)
		if !ok || pent.Roles&vocab.RolePrep == 0 {
			return cmd, clerrors.Gamef("%q is not a preposition.", act.Prep)
		}
		cmd.Prep = pent.Prep
	}

	if act.Indirect != "" {
		obj := snap.Find(strings.ToUpper(act.Indirect))
		if obj == nil || obj.Has(world.FlagInvisible) {
			return cmd, clerrors.Gamef("You can't see any %s here!", strings.ToLower(act.Indirect))
		}
		cmd.Indirect = []*world.Object{obj}
	}

	// PUT needs the direct object in hand first, same as the text parser's
	// implicit take
	if cmd.Verb == vocab.VerbPut && len(cmd.Direct) == 1 {
		obj := cmd.Direct[0]
		if !snap.Holds(obj.Label) {
			if !obj.Has(world.FlagTakeable) || obj.Has(world.FlagFixed) {
				return cmd, clerrors.Gamef("You can't take the %s.", obj.Name)
			}
			cmd.ImplicitTakes = []*world.Object{obj}
		}
	}

	return cmd, nil
}

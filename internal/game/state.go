// Package game executes resolved commands against the world: moving the
// player, shuffling objects between rooms, containers, and hands, and writing
// the narration. It never parses text; it receives commands the parser has
// already resolved to concrete objects.
package game

import (
	"fmt"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// State is the game's entire mutable state.
type State struct {
	// World is every room that exists, by label.
	World map[string]*world.Room

	// CurrentRoom is the room the player is in.
	CurrentRoom *world.Room

	// Inventory is what the player is carrying, in the order it was picked
	// up. The order is load-bearing: it is the held part of the scope
	// enumeration the parser disambiguates against.
	Inventory []*world.Object

	// Score and Moves are the running tallies shown by SCORE.
	Score int
	Moves int

	// MaxScore is the total attainable score, from the world definition.
	MaxScore int

	// handlers maps each verb to its implementation.
	handlers map[vocab.VerbID]Handler

	io IODevice
}

// IODevice is how the game reaches the player. Output is required; Input is
// only needed by callers that drive interactive prompts through the game.
type IODevice struct {
	// Width is how wide to wrap output lines. Values below 2 mean 80.
	Width int

	// Output sends a line of output. If s is empty, an empty line is sent.
	Output func(s string, a ...interface{}) error

	// Input reads one line of input, showing prompt first if it is not
	// blank.
	Input func(prompt string) (string, error)
}

// New creates a State over the given rooms and puts the player in the
// starting room. It performs basic sanity checks on the world being passed
// in.
func New(rooms map[string]*world.Room, startingRoom string, ioDev IODevice) (*State, error) {
	if ioDev.Width < 2 {
		ioDev.Width = 80
	}
	if ioDev.Output == nil {
		return nil, fmt.Errorf("io device must define an Output function")
	}

	gs := &State{
		World:    rooms,
		handlers: defaultHandlers(),
		io:       ioDev,
	}

	var ok bool
	gs.CurrentRoom, ok = rooms[startingRoom]
	if !ok {
		return nil, fmt.Errorf("starting room with label %q does not exist in passed-in rooms", startingRoom)
	}

	return gs, nil
}

// Snapshot gives the parser's view of what the player can currently see and
// hold.
func (gs *State) Snapshot() world.Snapshot {
	return world.Snapshot{
		Held: gs.Inventory,
		Room: gs.CurrentRoom,
	}
}

// holds reports whether the object is directly in the player's hands.
func (gs *State) holds(label string) bool {
	for _, o := range gs.Inventory {
		if o.Label == label {
			return true
		}
	}
	return false
}

// detach removes the object from wherever it currently is: the player's
// hands, a held container, the room floor, or a room container. It returns
// whether the object was found anywhere.
func (gs *State) detach(obj *world.Object) bool {
	for i, o := range gs.Inventory {
		if o.Label == obj.Label {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			return true
		}
	}
	for _, c := range gs.Inventory {
		if containerHas(c, obj.Label) {
			c.RemoveContent(obj.Label)
			return true
		}
	}
	if gs.CurrentRoom != nil {
		for _, o := range gs.CurrentRoom.Objects {
			if o.Label == obj.Label {
				gs.CurrentRoom.RemoveObject(obj.Label)
				return true
			}
		}
		for _, c := range gs.CurrentRoom.Objects {
			if containerHas(c, obj.Label) {
				c.RemoveContent(obj.Label)
				return true
			}
		}
	}
	return false
}

func containerHas(c *world.Object, label string) bool {
	for _, inner := range c.Contents {
		if inner.Label == label {
			return true
		}
	}
	return false
}

// findObject searches every room and the inventory for the object with the
// given label, for exit guards that can live anywhere.
func (gs *State) findObject(label string) *world.Object {
	for _, o := range gs.Inventory {
		if o.Label == label {
			return o
		}
		if found := findIn(o, label); found != nil {
			return found
		}
	}
	for _, r := range gs.World {
		for _, o := range r.Objects {
			if o.Label == label {
				return o
			}
			if found := findIn(o, label); found != nil {
				return found
			}
		}
	}
	return nil
}

func findIn(c *world.Object, label string) *world.Object {
	for _, inner := range c.Contents {
		if inner.Label == label {
			return inner
		}
		if found := findIn(inner, label); found != nil {
			return found
		}
	}
	return nil
}

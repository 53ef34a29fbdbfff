package game

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/util"
	"github.com/tmoresby/clork/internal/world"
)

// ExecuteCommandGo executes a movement command and returns the description of
// the room arrived in.
func (gs *State) ExecuteCommandGo(cmd parser.Command) (string, error) {
	exit := gs.CurrentRoom.ExitFor(cmd.Direction)
	if exit == nil {
		return "", clerrors.Gamef("You can't go that way.")
	}

	switch exit.Kind {
	case world.ExitBlocked:
		msg := exit.FailMessage
		if msg == "" {
			msg = "Something is blocking the way."
		}
		return "", clerrors.Game(msg, "")
	case world.ExitConditional:
		guard := gs.findObject(exit.GuardLabel)
		if guard == nil || !guard.Has(exit.GuardFlag) {
			msg := exit.FailMessage
			if msg == "" {
				msg = "The way is shut."
			}
			return "", clerrors.Game(msg, "")
		}
	case world.ExitNormal, world.ExitOneWay:
		// plain travel
	}

	dest, ok := gs.World[exit.Dest]
	if !ok {
		return "", clerrors.Game(
			"You can't go that way.",
			fmt.Sprintf("exit %s of room %q leads to undefined room %q", exit.Direction, gs.CurrentRoom.Label, exit.Dest),
		)
	}
	gs.CurrentRoom = dest

	return gs.describeRoom(), nil
}

// LookAround writes the current room's description to the output device, as
// if the player had typed LOOK. Used to open a session.
func (gs *State) LookAround() error {
	output := rosed.Edit(gs.describeRoom()).
		WrapOpts(gs.io.Width, textFormatOptions).
		String()
	return gs.io.Output("\n" + output + "\n\n")
}

// describeRoom builds the narration for arriving in (or looking at) the
// current room: its name, its description, and what is lying around.
func (gs *State) describeRoom() string {
	out := gs.CurrentRoom.Name + "\n\n" + gs.CurrentRoom.Description

	var here []string
	for _, o := range gs.CurrentRoom.Objects {
		if o.Has(world.FlagInvisible) {
			continue
		}
		here = append(here, o.Name)
	}
	if len(here) > 0 {
		out += "\n\nYou can see " + util.MakeTextList(here, true) + " here."
	}

	return out
}

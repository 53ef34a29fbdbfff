package game

import (
	"fmt"
	"strings"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/util"
	"github.com/tmoresby/clork/internal/world"
)

// ExecuteCommandTake executes the TAKE command and returns the output. With
// several objects (from an ALL expansion) each gets its own line, labeled
// with its name.
func (gs *State) ExecuteCommandTake(cmd parser.Command) (string, error) {
	multi := len(cmd.Direct) > 1

	var lines []string
	for _, obj := range cmd.Direct {
		switch {
		case gs.holds(obj.Label):
			if !multi {
				return "", clerrors.Gamef("You already have the %s.", obj.Name)
			}
			lines = append(lines, obj.Name+": You already have that.")
		case obj.Has(world.FlagFixed) || !obj.Has(world.FlagTakeable):
			if !multi {
				return "", clerrors.Gamef("You can't take the %s.", obj.Name)
			}
			lines = append(lines, obj.Name+": You can't take that.")
		default:
			gs.detach(obj)
			gs.Inventory = append(gs.Inventory, obj)
			if multi {
				lines = append(lines, obj.Name+": Taken.")
			} else {
				lines = append(lines, "Taken.")
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

// ExecuteCommandDrop executes the DROP command and returns the output.
func (gs *State) ExecuteCommandDrop(cmd parser.Command) (string, error) {
	multi := len(cmd.Direct) > 1

	var lines []string
	for _, obj := range cmd.Direct {
		if !gs.detach(obj) {
			if !multi {
				return "", clerrors.Gamef("You're not holding the %s.", obj.Name)
			}
			lines = append(lines, obj.Name+": You're not holding that.")
			continue
		}
		gs.CurrentRoom.Objects = append(gs.CurrentRoom.Objects, obj)
		if multi {
			lines = append(lines, obj.Name+": Dropped.")
		} else {
			lines = append(lines, "Dropped.")
		}
	}

	return strings.Join(lines, "\n"), nil
}

// ExecuteCommandPut executes the PUT command and returns the output.
func (gs *State) ExecuteCommandPut(cmd parser.Command) (string, error) {
	if len(cmd.Indirect) != 1 {
		return "", clerrors.Gamef("You need to say where to put it.")
	}
	into := cmd.Indirect[0]

	if !into.Has(world.FlagContainer) && !into.Has(world.FlagSurface) {
		return "", clerrors.Gamef("You can't put things in the %s.", into.Name)
	}
	if !into.Accessible() {
		return "", clerrors.Gamef("The %s is closed.", into.Name)
	}

	multi := len(cmd.Direct) > 1
	prep := "in"
	if into.Has(world.FlagSurface) {
		prep = "on"
	}

	var lines []string
	for _, obj := range cmd.Direct {
		if obj.Label == into.Label {
			if !multi {
				return "", clerrors.Gamef("You can't put the %s %s itself!", obj.Name, prep)
			}
			lines = append(lines, obj.Name+": You can't put that in itself.")
			continue
		}
		gs.detach(obj)
		into.Contents = append(into.Contents, obj)
		if multi {
			lines = append(lines, obj.Name+": Done.")
		} else {
			lines = append(lines, fmt.Sprintf("You put the %s %s the %s.", obj.Name, prep, into.Name))
		}
	}

	return strings.Join(lines, "\n"), nil
}

// ExecuteCommandOpen executes the OPEN command and returns the output.
// Opening a container with something inside reveals the contents.
func (gs *State) ExecuteCommandOpen(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	if !obj.Has(world.FlagContainer) {
		return "", clerrors.Gamef("You can't open the %s.", obj.Name)
	}
	if obj.Has(world.FlagOpen) {
		return "", clerrors.Gamef("The %s is already open.", obj.Name)
	}

	obj.SetFlag(world.FlagOpen, true)

	if len(obj.Contents) > 0 {
		var names []string
		for _, inner := range obj.Contents {
			if inner.Has(world.FlagInvisible) {
				continue
			}
			names = append(names, inner.Name)
		}
		if len(names) > 0 {
			return fmt.Sprintf("Opening the %s reveals %s.",
				obj.Name, util.MakeTextList(names, true)), nil
		}
	}

	return "Opened.", nil
}

// ExecuteCommandClose executes the CLOSE command and returns the output.
func (gs *State) ExecuteCommandClose(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	if !obj.Has(world.FlagContainer) {
		return "", clerrors.Gamef("You can't close the %s.", obj.Name)
	}
	if !obj.Has(world.FlagOpen) {
		return "", clerrors.Gamef("The %s is already closed.", obj.Name)
	}

	obj.SetFlag(world.FlagOpen, false)

	return "Closed.", nil
}

// ExecuteCommandLight executes the LIGHT command and returns the output.
func (gs *State) ExecuteCommandLight(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	if !obj.Has(world.FlagLightable) {
		return "", clerrors.Gamef("You can't light the %s.", obj.Name)
	}
	if obj.Has(world.FlagLit) {
		return "", clerrors.Gamef("The %s is already on.", obj.Name)
	}

	obj.SetFlag(world.FlagLit, true)

	return fmt.Sprintf("The %s is now on.", obj.Name), nil
}

// ExecuteCommandDouse executes the DOUSE command and returns the output.
func (gs *State) ExecuteCommandDouse(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	if !obj.Has(world.FlagLightable) {
		return "", clerrors.Gamef("You can't turn the %s off.", obj.Name)
	}
	if !obj.Has(world.FlagLit) {
		return "", clerrors.Gamef("The %s is already off.", obj.Name)
	}

	obj.SetFlag(world.FlagLit, false)

	return fmt.Sprintf("The %s is now off.", obj.Name), nil
}

// ExecuteCommandAttack executes the ATTACK command and returns the output.
func (gs *State) ExecuteCommandAttack(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	if len(cmd.Indirect) == 1 {
		weapon := cmd.Indirect[0]
		return fmt.Sprintf("Attacking the %s with the %s accomplishes nothing.",
			obj.Name, weapon.Name), nil
	}

	return fmt.Sprintf("Attacking the %s with your bare hands is suicidal.", obj.Name), nil
}

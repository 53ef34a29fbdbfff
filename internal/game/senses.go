package game

import (
	"fmt"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/util"
	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// ExecuteCommandLook executes the LOOK command and returns the output. Bare
// LOOK describes the room; LOOK AT is an examine; LOOK IN peers into a
// container.
func (gs *State) ExecuteCommandLook(cmd parser.Command) (string, error) {
	if len(cmd.Direct) == 0 {
		return gs.describeRoom(), nil
	}

	if cmd.Prep == vocab.PrepIn {
		return gs.lookInside(cmd.Direct[0])
	}
	return gs.ExecuteCommandExamine(cmd)
}

func (gs *State) lookInside(obj *world.Object) (string, error) {
	if !obj.Has(world.FlagContainer) && !obj.Has(world.FlagSurface) {
		return "", clerrors.Gamef("You can't look inside the %s.", obj.Name)
	}
	if !obj.Accessible() {
		return "", clerrors.Gamef("The %s is closed.", obj.Name)
	}

	var names []string
	for _, inner := range obj.Contents {
		if inner.Has(world.FlagInvisible) {
			continue
		}
		names = append(names, inner.Name)
	}
	if len(names) == 0 {
		return fmt.Sprintf("The %s is empty.", obj.Name), nil
	}
	return fmt.Sprintf("The %s contains %s.", obj.Name, util.MakeTextList(names, true)), nil
}

// ExecuteCommandExamine executes the EXAMINE command and returns the output.
func (gs *State) ExecuteCommandExamine(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	out := obj.Description
	if out == "" {
		out = fmt.Sprintf("There's nothing special about the %s.", obj.Name)
	}

	if obj.Has(world.FlagLightable) {
		if obj.Has(world.FlagLit) {
			out += " It is on."
		} else {
			out += " It is off."
		}
	}

	if obj.Has(world.FlagContainer) && obj.Has(world.FlagOpen) && len(obj.Contents) > 0 {
		inside, err := gs.lookInside(obj)
		if err == nil {
			out += "\n\n" + inside
		}
	}

	return out, nil
}

// ExecuteCommandRead executes the READ command and returns the output.
func (gs *State) ExecuteCommandRead(cmd parser.Command) (string, error) {
	obj := cmd.Direct[0]

	if !obj.Has(world.FlagReadable) {
		return "", clerrors.Gamef("How does one read a %s?", obj.Name)
	}
	if obj.Text == "" {
		return "There's nothing written on it.", nil
	}

	return fmt.Sprintf("The %s reads:\n\n%s", obj.Name, obj.Text), nil
}

// ExecuteCommandInventory executes the INVENTORY command and returns the
// output.
func (gs *State) ExecuteCommandInventory(cmd parser.Command) (string, error) {
	if len(gs.Inventory) < 1 {
		return "You are empty-handed.", nil
	}

	var names []string
	for _, o := range gs.Inventory {
		name := o.Name
		if o.Accessible() && len(o.Contents) > 0 {
			var inner []string
			for _, c := range o.Contents {
				if c.Has(world.FlagInvisible) {
					continue
				}
				inner = append(inner, c.Name)
			}
			if len(inner) > 0 {
				name += fmt.Sprintf(" (containing %s)", util.MakeTextList(inner, true))
			}
		}
		names = append(names, name)
	}

	return "You are carrying:\n" + util.MakeTextList(names, true) + ".", nil
}

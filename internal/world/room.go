package world

// File room.go includes symbols for rooms and the exits between them.

import (
	"fmt"

	"github.com/tmoresby/clork/internal/vocab"
)

// ExitKind selects the behavior of an exit. The set of behaviors is closed;
// travel dispatches on it with a switch.
type ExitKind int

const (
	// ExitNormal is an ordinary two-way passage to another room.
	ExitNormal ExitKind = iota

	// ExitOneWay is a passage that cannot be re-traversed from the far side
	// (a maze chute, a ledge drop). Behaviorally the same as ExitNormal on
	// this side; the far room simply defines no matching exit.
	ExitOneWay

	// ExitConditional is a passage that only works while a guard object has
	// (or lacks) a particular flag, such as a door that must be open.
	ExitConditional

	// ExitBlocked always refuses travel with a message. Used for teasing
	// passages that never open.
	ExitBlocked
)

// Exit is a way out of a room in one compass direction.
type Exit struct {
	// Direction is the direction of travel this exit answers to.
	Direction vocab.Direction

	// Kind selects the exit's behavior.
	Kind ExitKind

	// Dest is the label of the destination room, for kinds that permit
	// travel.
	Dest string

	// GuardLabel is the label of the guard object for ExitConditional.
	GuardLabel string

	// GuardFlag is the flag the guard object must have for travel to work.
	GuardFlag Flag

	// FailMessage is shown when travel is refused (ExitBlocked, or
	// ExitConditional with the guard unsatisfied). If empty, a stock message
	// is used.
	FailMessage string
}

func (e Exit) String() string {
	return fmt.Sprintf("Exit(%s -> %s)", e.Direction, e.Dest)
}

// Room is one location in the game.
type Room struct {
	// Label is how the room is referred to programmatically. It must be
	// unique among all rooms and is upper-case.
	Label string

	// Name is the short name shown in the status and movement text.
	Name string

	// Description is what LOOK shows.
	Description string

	// Exits are the ways out, in definition order.
	Exits []Exit

	// Objects are the objects on the room floor, in definition order. The
	// order is stable and is the "room enumeration order" used by
	// disambiguation and ALL expansion.
	Objects []*Object
}

func (room *Room) String() string {
	return fmt.Sprintf("Room<%s %q>", room.Label, room.Name)
}

// ExitFor returns the exit answering to the given direction, or nil if the
// room has none.
func (room *Room) ExitFor(dir vocab.Direction) *Exit {
	for i := range room.Exits {
		if room.Exits[i].Direction == dir {
			return &room.Exits[i]
		}
	}
	return nil
}

// RemoveObject removes the object with the given label from the room floor.
// If no object by that label is on the floor, this has no effect.
func (room *Room) RemoveObject(label string) {
	idx := -1
	for i, o := range room.Objects {
		if o.Label == label {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	room.Objects = append(room.Objects[:idx], room.Objects[idx+1:]...)
}

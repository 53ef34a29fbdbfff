// Package world implements the object and room model that parsing resolves
// against. During a single parse the world is read-only; mutation happens in
// the game layer between parses.
package world

import (
	"fmt"
	"strings"
)

// File object.go holds symbols for game objects and their flags.

// Flag is a single boolean property of an object, stored in a fixed-size
// bitset.
type Flag uint16

const (
	// FlagTakeable marks an object that can be picked up.
	FlagTakeable Flag = 1 << iota

	// FlagInvisible marks an object that cannot be referred to or seen even
	// when it is in scope.
	FlagInvisible

	// FlagOpen marks a container or door that is currently open.
	FlagOpen

	// FlagContainer marks an object whose contents are in scope while it is
	// open.
	FlagContainer

	// FlagSurface marks an object whose contents are always in scope (a
	// table, a counter). Surfaces are treated as always open.
	FlagSurface

	// FlagFixed marks an object that can never be taken (scenery, fixtures).
	FlagFixed

	// FlagNoAll excludes an object from ALL expansion even when it is
	// otherwise eligible.
	FlagNoAll

	// FlagLightable marks an object that LIGHT and DOUSE apply to.
	FlagLightable

	// FlagLit marks a lightable object that is currently on.
	FlagLit

	// FlagReadable marks an object with text that READ applies to.
	FlagReadable
)

// Flags is a fixed-size set of Flag bits.
type Flags uint16

// Has returns whether the set includes the given flag.
func (f Flags) Has(fl Flag) bool {
	return f&Flags(fl) != 0
}

// With returns a copy of the set with the given flag added.
func (f Flags) With(fl Flag) Flags {
	return f | Flags(fl)
}

// Without returns a copy of the set with the given flag removed.
func (f Flags) Without(fl Flag) Flags {
	return f &^ Flags(fl)
}

// Object is a thing in the world the player can refer to. Objects carry two
// layers of flags: the static flags declared by the world definition, and a
// sparse set of runtime overrides. A flag whose override bit is not set falls
// back to the static default.
type Object struct {
	// Label is the canonical name of the object and the way it is indexed
	// programmatically. It is upper-case and unique within the world.
	Label string

	// Name is the short display name, as in "brass lantern".
	Name string

	// Description is what EXAMINE shows.
	Description string

	// Text is what READ shows, for readable objects.
	Text string

	// Nouns are the head-noun words that refer to this object.
	Nouns []string

	// Adjectives are the words that can qualify this object's nouns.
	Adjectives []string

	// Static is the flag set declared by the world definition.
	Static Flags

	// override and overrideMask are the sparse runtime layer: a flag bit is
	// overridden only when the corresponding mask bit is set.
	override     Flags
	overrideMask Flags

	// Contents are the objects inside (for containers) or on top (for
	// surfaces), in definition order.
	Contents []*Object
}

// Has reports the effective value of the given flag: the runtime override if
// one has been set, else the static default.
func (o *Object) Has(fl Flag) bool {
	if o.overrideMask.Has(fl) {
		return o.override.Has(fl)
	}
	return o.Static.Has(fl)
}

// SetFlag sets a runtime override for the given flag.
func (o *Object) SetFlag(fl Flag, on bool) {
	o.overrideMask = o.overrideMask.With(fl)
	if on {
		o.override = o.override.With(fl)
	} else {
		o.override = o.override.Without(fl)
	}
}

// ClearOverride removes any runtime override for the given flag, restoring
// the static default.
func (o *Object) ClearOverride(fl Flag) {
	o.overrideMask = o.overrideMask.Without(fl)
	o.override = o.override.Without(fl)
}

// Accessible returns whether the object's contents are currently reachable:
// true for surfaces and for open containers.
func (o *Object) Accessible() bool {
	return o.Has(FlagSurface) || (o.Has(FlagContainer) && o.Has(FlagOpen))
}

func (o *Object) String() string {
	return fmt.Sprintf("Object(%q, (%s))", o.Label, strings.Join(o.Nouns, ", "))
}

// RemoveContent removes the object with the given label from Contents. If no
// such object is inside, this has no effect.
func (o *Object) RemoveContent(label string) {
	idx := -1
	for i, c := range o.Contents {
		if c.Label == label {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	o.Contents = append(o.Contents[:idx], o.Contents[idx+1:]...)
}

package cwf

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// File marshaledtypes.go contains the structs that CWF files are directly
// unmarshaled into, along with their conversions to engine types. Labels and
// other symbols are normalized to upper-case during conversion so that the
// file author's casing never matters.

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

type topLevelWorldData struct {
	Format  string            `toml:"format"`
	Type    string            `toml:"type"`
	World   worldSection      `toml:"world"`
	Rooms   []marshaledRoom   `toml:"room"`
	Objects []marshaledObject `toml:"object"`
}

type worldSection struct {
	Start    string `toml:"start"`
	MaxScore int    `toml:"max_score"`
}

type marshaledRoom struct {
	Label       string          `toml:"label"`
	Name        string          `toml:"name"`
	Description string          `toml:"description"`
	Exits       []marshaledExit `toml:"exit"`
}

func (mr marshaledRoom) toRoom() (*world.Room, error) {
	r := &world.Room{
		Label:       strings.ToUpper(mr.Label),
		Name:        mr.Name,
		Description: mr.Description,
	}

	for _, me := range mr.Exits {
		e, err := me.toExit()
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", r.Label, err)
		}
		r.Exits = append(r.Exits, e)
	}

	return r, nil
}

type marshaledExit struct {
	Direction   string `toml:"direction"`
	Kind        string `toml:"kind"`
	Dest        string `toml:"dest"`
	Guard       string `toml:"guard"`
	GuardFlag   string `toml:"guard_flag"`
	FailMessage string `toml:"fail_message"`
}

func (me marshaledExit) toExit() (world.Exit, error) {
	var e world.Exit

	dir, ok := vocab.DirectionsByString[strings.ToUpper(me.Direction)]
	if !ok {
		return e, fmt.Errorf("exit: %q is not a valid direction", me.Direction)
	}
	e.Direction = dir

	kind, ok := exitKindsByName[strings.ToUpper(me.Kind)]
	if !ok {
		return e, fmt.Errorf("exit %s: %q is not a valid exit kind", dir, me.Kind)
	}
	e.Kind = kind

	e.Dest = strings.ToUpper(me.Dest)
	e.GuardLabel = strings.ToUpper(me.Guard)
	e.FailMessage = me.FailMessage

	if me.GuardFlag != "" {
		fl, ok := flagsByName[strings.ToUpper(me.GuardFlag)]
		if !ok {
			return e, fmt.Errorf("exit %s: %q is not a valid flag", dir, me.GuardFlag)
		}
		e.GuardFlag = fl
	}

	return e, nil
}

type marshaledObject struct {
	Label       string   `toml:"label"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Text        string   `toml:"text"`
	Nouns       []string `toml:"nouns"`
	Adjectives  []string `toml:"adjectives"`
	Flags       []string `toml:"flags"`

	// Location is either a room label or the label of a container object.
	// The special location "@PLAYER" puts the object in the starting
	// inventory.
	Location string `toml:"location"`
}

func (mo marshaledObject) toObject() (*world.Object, error) {
	o := &world.Object{
		Label:       strings.ToUpper(mo.Label),
		Name:        mo.Name,
		Description: mo.Description,
		Text:        mo.Text,
	}

	for _, n := range mo.Nouns {
		o.Nouns = append(o.Nouns, strings.ToUpper(n))
	}
	for _, a := range mo.Adjectives {
		o.Adjectives = append(o.Adjectives, strings.ToUpper(a))
	}

	for _, fname := range mo.Flags {
		fl, ok := flagsByName[strings.ToUpper(fname)]
		if !ok {
			return nil, fmt.Errorf("object %q: %q is not a valid flag", o.Label, fname)
		}
		o.Static = o.Static.With(fl)
	}

	return o, nil
}

// exitKindsByName maps the kind strings allowed in exit tables to their
// ExitKind. An empty kind means a normal exit.
var exitKindsByName = map[string]world.ExitKind{
	"":            world.ExitNormal,
	"NORMAL":      world.ExitNormal,
	"ONE_WAY":     world.ExitOneWay,
	"CONDITIONAL": world.ExitConditional,
	"BLOCKED":     world.ExitBlocked,
}

// flagsByName maps the flag strings allowed in object tables to their Flag.
var flagsByName = map[string]world.Flag{
	"TAKEABLE":  world.FlagTakeable,
	"INVISIBLE": world.FlagInvisible,
	"OPEN":      world.FlagOpen,
	"CONTAINER": world.FlagContainer,
	"SURFACE":   world.FlagSurface,
	"FIXED":     world.FlagFixed,
	"NO_ALL":    world.FlagNoAll,
	"LIGHTABLE": world.FlagLightable,
	"LIT":       world.FlagLit,
	"READABLE":  world.FlagReadable,
}

func scanFileInfo(data []byte) (FileInfo, error) {
	var info FileInfo
	if _, err := toml.Decode(string(data), &info); err != nil {
		return info, fmt.Errorf("scanning file info: %w", err)
	}
	if strings.ToUpper(info.Format) != "CLORK" {
		return info, fmt.Errorf("file does not appear to be in CWF format (format = %q)", info.Format)
	}
	return info, nil
}

func unmarshalManifest(data []byte) (topLevelManifest, error) {
	var tlm topLevelManifest
	if _, err := toml.Decode(string(data), &tlm); err != nil {
		return tlm, err
	}
	return tlm, nil
}

func unmarshalWorldData(data []byte) (topLevelWorldData, error) {
	var tlw topLevelWorldData
	if _, err := toml.Decode(string(data), &tlw); err != nil {
		return tlw, err
	}
	return tlw, nil
}

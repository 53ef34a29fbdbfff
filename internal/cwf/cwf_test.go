package cwf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

const validWorldFile = `
format = "clork"
type = "data"

[world]
start = "west-of-house"
max_score = 350

[[room]]
label = "west-of-house"
name = "West of House"
description = "You are standing in an open field west of a white house."

[[room.exit]]
direction = "north"
dest = "north-of-house"

[[room.exit]]
direction = "east"
kind = "conditional"
dest = "kitchen"
guard = "front-door"
guard_flag = "open"
fail_message = "The door is boarded shut."

[[room.exit]]
direction = "south"
kind = "blocked"
fail_message = "The forest is too thick that way."

[[room]]
label = "north-of-house"
name = "North of House"
description = "You are facing the north side of a white house."

[[room]]
label = "kitchen"
name = "Kitchen"
description = "You are in the kitchen of the white house."

[[object]]
label = "front-door"
name = "front door"
nouns = ["door"]
adjectives = ["front"]
flags = ["container", "fixed"]
location = "west-of-house"

[[object]]
label = "mailbox"
name = "small mailbox"
nouns = ["mailbox", "box"]
adjectives = ["small"]
flags = ["container", "fixed", "open"]
location = "west-of-house"

[[object]]
label = "leaflet"
name = "leaflet"
nouns = ["leaflet"]
flags = ["takeable", "readable"]
text = "WELCOME TO CLORK!"
location = "mailbox"

[[object]]
label = "sword"
name = "elvish sword"
nouns = ["sword"]
adjectives = ["elvish"]
flags = ["takeable"]
location = "@PLAYER"
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_LoadWorldDataFile(t *testing.T) {
	assert := assert.New(t)

	path := writeTempFile(t, "world.cwf", validWorldFile)

	wd, err := LoadWorldDataFile(path)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("WEST-OF-HOUSE", wd.Start)
	assert.Equal(350, wd.MaxScore)
	assert.Len(wd.Rooms, 3)

	start := wd.Rooms["WEST-OF-HOUSE"]
	if !assert.NotNil(start) {
		return
	}
	assert.Equal("West of House", start.Name)
	assert.Len(start.Objects, 2)
	assert.Equal("FRONT-DOOR", start.Objects[0].Label)
	assert.Equal("MAILBOX", start.Objects[1].Label)

	// exits carry their kind and guard through
	east := start.ExitFor(vocab.DirEast)
	if assert.NotNil(east) {
		assert.Equal(world.ExitConditional, east.Kind)
		assert.Equal("FRONT-DOOR", east.GuardLabel)
		assert.Equal(world.FlagOpen, east.GuardFlag)
	}
	south := start.ExitFor(vocab.DirSouth)
	if assert.NotNil(south) {
		assert.Equal(world.ExitBlocked, south.Kind)
		assert.Equal("The forest is too thick that way.", south.FailMessage)
	}

	// containment and starting inventory resolve
	mailbox := start.Objects[1]
	if assert.Len(mailbox.Contents, 1) {
		assert.Equal("LEAFLET", mailbox.Contents[0].Label)
		assert.Equal("WELCOME TO CLORK!", mailbox.Contents[0].Text)
	}
	if assert.Len(wd.Inventory, 1) {
		assert.Equal("SWORD", wd.Inventory[0].Label)
		assert.True(wd.Inventory[0].Has(world.FlagTakeable))
	}
}

func Test_LoadWorldDataFile_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		mutation string
	}{
		{
			name: "missing start room",
			mutation: `
format = "clork"
type = "data"

[world]
start = "nowhere"

[[room]]
label = "somewhere"
name = "Somewhere"
`,
		},
		{
			name: "exit to undefined room",
			mutation: `
format = "clork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"

[[room.exit]]
direction = "north"
dest = "the-moon"
`,
		},
		{
			name: "unknown flag",
			mutation: `
format = "clork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"

[[object]]
label = "thing"
name = "thing"
nouns = ["thing"]
flags = ["sparkly"]
location = "here"
`,
		},
		{
			name: "object location does not exist",
			mutation: `
format = "clork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"

[[object]]
label = "thing"
name = "thing"
nouns = ["thing"]
location = "elsewhere"
`,
		},
		{
			name: "object inside non-container",
			mutation: `
format = "clork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"

[[object]]
label = "rock"
name = "rock"
nouns = ["rock"]
location = "here"

[[object]]
label = "thing"
name = "thing"
nouns = ["thing"]
location = "rock"
`,
		},
		{
			name: "duplicate object label",
			mutation: `
format = "clork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"

[[object]]
label = "thing"
name = "thing"
nouns = ["thing"]
location = "here"

[[object]]
label = "thing"
name = "other thing"
nouns = ["thing"]
location = "here"
`,
		},
		{
			name: "wrong format header",
			mutation: `
format = "zork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			path := writeTempFile(t, "bad.cwf", tc.mutation)

			_, err := LoadResourceBundle(path)
			assert.Error(err)
		})
	}
}

func Test_LoadManifestFile(t *testing.T) {
	assert := assert.New(t)

	path := writeTempFile(t, "game.cwf", `
format = "clork"
type = "manifest"
files = ["rooms.cwf", "objects.cwf"]
`)

	manif, err := LoadManifestFile(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]string{"rooms.cwf", "objects.cwf"}, manif.Files)
}

func Test_LoadResourceBundle_Manifest(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	manifest := `
format = "clork"
type = "manifest"
files = ["rooms.cwf", "objects.cwf"]
`
	rooms := `
format = "clork"
type = "data"

[world]
start = "here"

[[room]]
label = "here"
name = "Here"
`
	objects := `
format = "clork"
type = "data"

[[object]]
label = "thing"
name = "thing"
nouns = ["thing"]
flags = ["takeable"]
location = "here"
`

	for name, content := range map[string]string{
		"game.cwf": manifest, "rooms.cwf": rooms, "objects.cwf": objects,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	wd, err := LoadResourceBundle(filepath.Join(dir, "game.cwf"))
	if !assert.NoError(err) {
		return
	}

	assert.Equal("HERE", wd.Start)
	here := wd.Rooms["HERE"]
	if assert.NotNil(here) && assert.Len(here.Objects, 1) {
		assert.Equal("THING", here.Objects[0].Label)
	}
}

func Test_LoadResourceBundle_ManifestErrors(t *testing.T) {
	t.Run("empty manifest", func(t *testing.T) {
		assert := assert.New(t)

		path := writeTempFile(t, "empty.cwf", `
format = "clork"
type = "manifest"
files = []
`)

		_, err := LoadResourceBundle(path)
		assert.ErrorIs(err, ErrManifestEmpty)
	})

	t.Run("circular manifest", func(t *testing.T) {
		assert := assert.New(t)

		path := writeTempFile(t, "loop.cwf", `
format = "clork"
type = "manifest"
files = ["loop.cwf"]
`)

		_, err := LoadResourceBundle(path)
		assert.ErrorIs(err, ErrManifestCircularRef)
	})
}

func Test_RegisterVocab(t *testing.T) {
	assert := assert.New(t)

	path := writeTempFile(t, "world.cwf", validWorldFile)
	wd, err := LoadWorldDataFile(path)
	if !assert.NoError(err) {
		return
	}

	reg := vocab.NewDefaultRegistry()
	wd.RegisterVocab(reg)

	// nouns of objects nested in containers register too
	ent, ok := reg.Lookup("leaflet")
	if assert.True(ok) {
		assert.Contains(ent.NounOf, "LEAFLET")
	}
	ent, ok = reg.Lookup("elvish")
	if assert.True(ok) {
		assert.Contains(ent.AdjectiveOf, "SWORD")
	}
}

func Test_CompiledRoundTrip(t *testing.T) {
	assert := assert.New(t)

	src := writeTempFile(t, "world.cwf", validWorldFile)
	wd, err := LoadWorldDataFile(src)
	if !assert.NoError(err) {
		return
	}

	compiled := filepath.Join(t.TempDir(), "world.cwc")
	if !assert.NoError(WriteCompiled(compiled, wd)) {
		return
	}

	got, err := ReadCompiled(compiled)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(wd.Start, got.Start)
	assert.Equal(wd.MaxScore, got.MaxScore)
	assert.Len(got.Rooms, len(wd.Rooms))

	start := got.Rooms["WEST-OF-HOUSE"]
	if !assert.NotNil(start) {
		return
	}
	assert.Equal([]string{"FRONT-DOOR", "MAILBOX"}, objectLabels(start.Objects))

	east := start.ExitFor(vocab.DirEast)
	if assert.NotNil(east) {
		assert.Equal(world.ExitConditional, east.Kind)
		assert.Equal("FRONT-DOOR", east.GuardLabel)
		assert.Equal("The door is boarded shut.", east.FailMessage)
	}

	mailbox := start.Objects[1]
	if assert.Len(mailbox.Contents, 1) {
		assert.Equal("WELCOME TO CLORK!", mailbox.Contents[0].Text)
	}
	if assert.Len(got.Inventory, 1) {
		assert.Equal("SWORD", got.Inventory[0].Label)
	}
}

func Test_ReadCompiled_RejectsGarbage(t *testing.T) {
	assert := assert.New(t)

	path := writeTempFile(t, "junk.cwc", "this is not a compiled world")

	_, err := ReadCompiled(path)
	assert.Error(err)
}

func objectLabels(objs []*world.Object) []string {
	var labels []string
	for _, o := range objs {
		labels = append(labels, o.Label)
	}
	return labels
}

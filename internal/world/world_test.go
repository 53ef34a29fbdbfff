package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Object_flagOverrides(t *testing.T) {
	testCases := []struct {
		name     string
		static   Flags
		setup    func(o *Object)
		flag     Flag
		expect   bool
	}{
		{
			name:   "static default, no override",
			static: Flags(FlagTakeable),
			setup:  func(o *Object) {},
			flag:   FlagTakeable,
			expect: true,
		},
		{
			name:   "override on top of unset static",
			static: 0,
			setup:  func(o *Object) { o.SetFlag(FlagOpen, true) },
			flag:   FlagOpen,
			expect: true,
		},
		{
			name:   "override forces static flag off",
			static: Flags(FlagTakeable),
			setup:  func(o *Object) { o.SetFlag(FlagTakeable, false) },
			flag:   FlagTakeable,
			expect: false,
		},
		{
			name:   "clearing override falls back to static",
			static: Flags(FlagLit),
			setup: func(o *Object) {
				o.SetFlag(FlagLit, false)
				o.ClearOverride(FlagLit)
			},
			flag:   FlagLit,
			expect: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			o := &Object{Label: "THING", Static: tc.static}
			tc.setup(o)

			assert.Equal(tc.expect, o.Has(tc.flag))
		})
	}
}

func testSnapshot() Snapshot {
	sack := &Object{
		Label:  "SACK",
		Name:   "brown sack",
		Static: Flags(FlagTakeable | FlagContainer | FlagOpen),
		Contents: []*Object{
			{Label: "GARLIC", Name: "clove of garlic", Static: Flags(FlagTakeable)},
		},
	}
	trophyCase := &Object{
		Label:  "CASE",
		Name:   "trophy case",
		Static: Flags(FlagContainer | FlagFixed),
		Contents: []*Object{
			{Label: "MAP", Name: "ancient map", Static: Flags(FlagTakeable | FlagReadable)},
		},
	}
	room := &Room{
		Label: "LIVING-ROOM",
		Name:  "Living Room",
		Objects: []*Object{
			{Label: "LAMP", Name: "brass lantern", Static: Flags(FlagTakeable | FlagLightable)},
			trophyCase,
			{Label: "RUG", Name: "oriental rug", Static: Flags(FlagFixed)},
			{Label: "GRUE", Name: "lurking grue", Static: Flags(FlagInvisible)},
		},
	}

	return Snapshot{
		Held: []*Object{
			{Label: "SWORD", Name: "elvish sword", Static: Flags(FlagTakeable)},
			sack,
		},
		Room: room,
	}
}

func Test_Snapshot_InScope_order(t *testing.T) {
	assert := assert.New(t)

	snap := testSnapshot()

	var labels []string
	for _, o := range snap.InScope(Anywhere) {
		labels = append(labels, o.Label)
	}

	// held, carried-container contents, floor, then closed case contents
	// excluded; invisible grue excluded.
	assert.Equal([]string{"SWORD", "SACK", "GARLIC", "LAMP", "CASE", "RUG"}, labels)
}

func Test_Snapshot_InScope_closedContainerHidesContents(t *testing.T) {
	assert := assert.New(t)

	snap := testSnapshot()
	snap.Room.Objects[1].SetFlag(FlagOpen, true)

	var labels []string
	for _, o := range snap.InScope(InRoomContainer) {
		labels = append(labels, o.Label)
	}
	assert.Equal([]string{"MAP"}, labels)

	snap.Room.Objects[1].SetFlag(FlagOpen, false)
	assert.Empty(snap.InScope(InRoomContainer))
}

func Test_Snapshot_WhereOf(t *testing.T) {
	assert := assert.New(t)

	snap := testSnapshot()

	loc, ok := snap.WhereOf("SWORD")
	assert.True(ok)
	assert.Equal(InHands, loc)

	loc, ok = snap.WhereOf("GARLIC")
	assert.True(ok)
	assert.Equal(InCarried, loc)

	loc, ok = snap.WhereOf("LAMP")
	assert.True(ok)
	assert.Equal(OnFloor, loc)

	_, ok = snap.WhereOf("MAP")
	assert.False(ok, "contents of a closed container are not in scope")
}

func Test_Room_ExitFor(t *testing.T) {
	assert := assert.New(t)

	room := &Room{
		Label: "KITCHEN",
		Exits: []Exit{
			{Direction: 1, Dest: "ATTIC"},
		},
	}

	assert.NotNil(room.ExitFor(1))
	assert.Nil(room.ExitFor(2))
}

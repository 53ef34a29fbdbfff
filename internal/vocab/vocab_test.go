package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Registry_Lookup_caseInsensitive(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{name: "all lower", query: "lantern"},
		{name: "all upper", query: "LANTERN"},
		{name: "mixed", query: "LaNtErN"},
		{name: "leading space", query: "  lantern"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewRegistry()
			r.AddObjectWords("LAMP", []string{"lantern"}, nil)

			ent, ok := r.Lookup(tc.query)

			assert.True(ok)
			assert.Equal("LANTERN", ent.Word)
			assert.True(ent.Roles.Has(RoleNoun))
			assert.Equal([]string{"LAMP"}, ent.NounOf)
		})
	}
}

func Test_Registry_rolesMergeNotOverwrite(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	// "LIGHT" is simultaneously a verb, a noun of the lamp, and an adjective
	// of the feather.
	r.AddVerb(VerbLight, "LIGHT")
	r.AddObjectWords("LAMP", []string{"LIGHT"}, nil)
	r.AddObjectWords("FEATHER", nil, []string{"LIGHT"})

	ent, ok := r.Lookup("light")
	assert.True(ok)
	assert.True(ent.Roles.Has(RoleVerb))
	assert.True(ent.Roles.Has(RoleNoun))
	assert.True(ent.Roles.Has(RoleAdjective))
	assert.Equal(VerbLight, ent.Verb)
	assert.Equal([]string{"LAMP"}, ent.NounOf)
	assert.Equal([]string{"FEATHER"}, ent.AdjectiveOf)
}

func Test_Registry_AddObjectWords_idempotent(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	r.AddObjectWords("MAILBOX", []string{"MAILBOX", "BOX"}, []string{"SMALL"})
	r.AddObjectWords("MAILBOX", []string{"MAILBOX", "BOX"}, []string{"SMALL"})

	ent, ok := r.Lookup("BOX")
	assert.True(ok)
	assert.Equal([]string{"MAILBOX"}, ent.NounOf)

	adjEnt, ok := r.Lookup("SMALL")
	assert.True(ok)
	assert.Equal([]string{"MAILBOX"}, adjEnt.AdjectiveOf)
}

func Test_Registry_sharedNoun_registrationOrder(t *testing.T) {
	assert := assert.New(t)

	r := NewRegistry()

	r.AddObjectWords("RED-BOOK", []string{"BOOK"}, []string{"RED"})
	r.AddObjectWords("BLUE-BOOK", []string{"BOOK"}, []string{"BLUE"})

	ent, ok := r.Lookup("BOOK")
	assert.True(ok)
	assert.Equal([]string{"RED-BOOK", "BLUE-BOOK"}, ent.NounOf)
}

func Test_NewDefaultRegistry(t *testing.T) {
	assert := assert.New(t)

	r := NewDefaultRegistry()

	ent, ok := r.Lookup("g")
	assert.True(ok)
	assert.Equal(VerbAgain, ent.Verb)

	ent, ok = r.Lookup("north")
	assert.True(ok)
	assert.True(ent.Roles.Has(RoleDirection))
	assert.Equal(DirNorth, ent.Direction)

	// "IN" is both a preposition and a direction.
	ent, ok = r.Lookup("in")
	assert.True(ok)
	assert.True(ent.Roles.Has(RolePrep))
	assert.True(ent.Roles.Has(RoleDirection))

	ent, ok = r.Lookup("the")
	assert.True(ok)
	assert.True(ent.Roles.Has(RoleBuzz))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmoresby/clork/internal/vocab"
)

func Test_SyntaxTable_Match(t *testing.T) {
	st := DefaultSyntaxTable()

	testCases := []struct {
		name        string
		verb        vocab.VerbID
		clauses     []Clause
		wantSlots   int
		wantErr     bool
		wantCond    Condition
		wantMissing int
		wantPrompt  string
	}{
		{
			name:      "take with one object",
			verb:      vocab.VerbTake,
			clauses:   []Clause{{Noun: "LAMP"}},
			wantSlots: 1,
		},
		{
			name: "take from a container",
			verb: vocab.VerbTake,
			clauses: []Clause{
				{Noun: "GARLIC"},
				{Noun: "SACK", Prep: vocab.PrepFrom},
			},
			wantSlots: 2,
		},
		{
			name: "put picks the pattern by preposition",
			verb: vocab.VerbPut,
			clauses: []Clause{
				{Noun: "LAMP"},
				{Noun: "TABLE", Prep: vocab.PrepOn},
			},
			wantSlots: 2,
		},
		{
			name:      "bare look",
			verb:      vocab.VerbLook,
			clauses:   nil,
			wantSlots: 0,
		},
		{
			name:      "zero-object verb",
			verb:      vocab.VerbInventory,
			clauses:   nil,
			wantSlots: 0,
		},
		{
			name:        "take with nothing prompts",
			verb:        vocab.VerbTake,
			clauses:     nil,
			wantErr:     true,
			wantCond:    CondIncomplete,
			wantMissing: 0,
			wantPrompt:  "What do you want to take?",
		},
		{
			name:        "put with only a direct object prompts",
			verb:        vocab.VerbPut,
			clauses:     []Clause{{Adjectives: []string{"BRASS"}, Noun: "LAMP"}},
			wantErr:     true,
			wantCond:    CondIncomplete,
			wantMissing: 1,
			wantPrompt:  "What do you want to put the brass lamp in?",
		},
		{
			name:     "preposition no pattern accepts",
			verb:     vocab.VerbTake,
			clauses:  []Clause{{Noun: "LAMP", Prep: vocab.PrepUnder}},
			wantErr:  true,
			wantCond: CondNoSyntaxMatch,
		},
		{
			name:     "unregistered verb",
			verb:     vocab.VerbNone,
			clauses:  []Clause{{Noun: "LAMP"}},
			wantErr:  true,
			wantCond: CondNoSyntaxMatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			pat, missing, perr := st.Match(tc.verb, tc.clauses)

			if tc.wantErr {
				if !assert.NotNil(perr) {
					return
				}
				assert.Equal(tc.wantCond, perr.Cond)
				if tc.wantCond == CondIncomplete {
					assert.Equal(tc.wantMissing, missing)
					assert.Equal(tc.wantPrompt, perr.Prompt)
				}
				return
			}
			if !assert.Nil(perr) {
				return
			}
			assert.Len(pat.Slots, tc.wantSlots)
		})
	}
}

func Test_SyntaxTable_FirstMatchWins(t *testing.T) {
	assert := assert.New(t)
	st := DefaultSyntaxTable()

	// examine registers a bare-object pattern before its AT pattern; a plain
	// clause must land on the first
	pat, _, perr := st.Match(vocab.VerbExamine, []Clause{{Noun: "LAMP"}})

	if !assert.Nil(perr) {
		return
	}
	if !assert.Len(pat.Slots, 1) {
		return
	}
	assert.Equal(vocab.PrepNone, pat.Slots[0].Prep)
}

func Test_SyntaxTable_PatternsFor(t *testing.T) {
	assert := assert.New(t)
	st := NewSyntaxTable()

	one := Pattern{Slots: []SlotSpec{{}}}
	two := Pattern{Slots: []SlotSpec{{}, {Prep: vocab.PrepIn}}}
	st.Register(vocab.VerbPut, two)
	st.Register(vocab.VerbPut, one)

	// declaration order survives separate Register calls; Match walks the
	// same slice
	pats := st.PatternsFor(vocab.VerbPut)
	if !assert.Len(pats, 2) {
		return
	}
	assert.Len(pats[0].Slots, 2)
	assert.Len(pats[1].Slots, 1)

	assert.Empty(st.PatternsFor(vocab.VerbRead))
}

func Test_SyntaxTable_TakesLiteral(t *testing.T) {
	assert := assert.New(t)
	st := DefaultSyntaxTable()

	assert.True(st.TakesLiteral(vocab.VerbSay))
	assert.False(st.TakesLiteral(vocab.VerbTake))
}

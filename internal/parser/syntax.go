package parser

// File syntax.go has the syntax matcher: the stage that checks the extracted
// verb and clause shape against the verb's registered patterns and selects
// the slot constraints for object resolution.

import (
	"fmt"
	"strings"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// SlotSpec is the constraint set for one noun slot of a syntax pattern.
type SlotSpec struct {
	// Prep is the preposition that must introduce the clause filling this
	// slot, or PrepNone.
	Prep vocab.Prep

	// Where is the location mask an object must satisfy to fill the slot.
	Where world.Where

	// AutoTake permits the resolver to synthesize an implicit take when the
	// slot requires holding and the object is merely in scope.
	AutoTake bool

	// Many permits ALL and multi-object expansion in this slot.
	Many bool

	// Have requires the actor to end up holding the object (directly, or
	// via auto-take).
	Have bool
}

// Pattern is one registered acceptable shape for a verb: its slots in order,
// or a literal-text marker for quote verbs like SAY.
type Pattern struct {
	// Slots are the noun slots, at most two. Slot 0 is the direct object,
	// slot 1 the indirect object.
	Slots []SlotSpec

	// TakesLiteral marks a verb whose argument is raw text rather than noun
	// clauses.
	TakesLiteral bool
}

// SyntaxTable holds the registered patterns of every verb, in declaration
// order. The matcher commits to the first structural match, so verbs should
// declare their most specific patterns first.
type SyntaxTable struct {
	patterns map[vocab.VerbID][]Pattern
}

// NewSyntaxTable creates an empty SyntaxTable.
func NewSyntaxTable() *SyntaxTable {
	return &SyntaxTable{
		patterns: make(map[vocab.VerbID][]Pattern),
	}
}

// Register appends patterns for the verb, after any already declared.
func (st *SyntaxTable) Register(verb vocab.VerbID, patterns ...Pattern) {
	st.patterns[verb] = append(st.patterns[verb], patterns...)
}

// PatternsFor returns the verb's patterns in declaration order.
func (st *SyntaxTable) PatternsFor(verb vocab.VerbID) []Pattern {
	return st.patterns[verb]
}

// TakesLiteral reports whether any of the verb's patterns accepts literal
// text.
func (st *SyntaxTable) TakesLiteral(verb vocab.VerbID) bool {
	for _, p := range st.patterns[verb] {
		if p.TakesLiteral {
			return true
		}
	}
	return false
}

// Match selects the first registered pattern structurally matching the given
// clause shape. When no pattern matches fully but one matches as a prefix
// with its next slot empty, Match returns a CondIncomplete error along with
// that pattern and the index of the missing slot, so the pipeline can seed
// an orphan record and prompt the player.
func (st *SyntaxTable) Match(verb vocab.VerbID, clauses []Clause) (Pattern, int, *Error) {
	pats, ok := st.patterns[verb]
	if !ok || len(pats) == 0 {
		return Pattern{}, -1, &Error{Cond: CondNoSyntaxMatch}
	}

	var nearMiss *Pattern

	for i := range pats {
		pat := pats[i]
		if pat.TakesLiteral {
			continue
		}

		if len(clauses) == len(pat.Slots) && slotsMatch(pat.Slots, clauses) {
			return pat, -1, nil
		}

		// a prefix match one clause short seeds orphan completion
		if nearMiss == nil && len(clauses) == len(pat.Slots)-1 && slotsMatch(pat.Slots[:len(clauses)], clauses) {
			nearMiss = &pats[i]
		}
	}

	if nearMiss != nil {
		missing := len(clauses)
		return *nearMiss, missing, &Error{
			Cond:   CondIncomplete,
			Prompt: orphanPrompt(verb, *nearMiss, clauses, missing),
		}
	}

	return Pattern{}, -1, &Error{Cond: CondNoSyntaxMatch}
}

func slotsMatch(slots []SlotSpec, clauses []Clause) bool {
	for i := range slots {
		if slots[i].Prep != clauses[i].Prep {
			return false
		}
	}
	return true
}

// orphanPrompt builds the "What do you want to X?" question for a missing
// slot, echoing the words of any clause already filled.
func orphanPrompt(verb vocab.VerbID, pat Pattern, clauses []Clause, missing int) string {
	verbWord := strings.ToLower(verb.String())

	if missing == 0 {
		return fmt.Sprintf("What do you want to %s?", verbWord)
	}

	prep := strings.ToLower(pat.Slots[missing].Prep.String())
	direct := clauseWords(clauses[0])
	if direct == "" {
		pronoun := "it"
		if clauses[0].Quant == QuantAll {
			pronoun = "them"
		}
		return fmt.Sprintf("What do you want to %s %s %s?", verbWord, pronoun, prep)
	}
	return fmt.Sprintf("What do you want to %s the %s %s?", verbWord, direct, prep)
}

func clauseWords(cl Clause) string {
	parts := make([]string, 0, len(cl.Adjectives)+1)
	for _, adj := range cl.Adjectives {
		parts = append(parts, strings.ToLower(adj))
	}
	if cl.Noun != "" {
		parts = append(parts, strings.ToLower(cl.Noun))
	}
	return strings.Join(parts, " ")
}

// DefaultSyntaxTable builds the engine's standard verb patterns. Within each
// verb the most specific shapes come first; the matcher commits to the first
// structural match.
func DefaultSyntaxTable() *SyntaxTable {
	st := NewSyntaxTable()

	reachable := world.Anywhere

	st.Register(vocab.VerbTake,
		Pattern{Slots: []SlotSpec{
			{Prep: vocab.PrepNone, Where: world.OnFloor | world.InRoomContainer | world.InCarried, Many: true},
			{Prep: vocab.PrepFrom, Where: reachable},
		}},
		Pattern{Slots: []SlotSpec{
			{Prep: vocab.PrepNone, Where: world.OnFloor | world.InRoomContainer | world.InCarried, Many: true},
		}},
	)
	st.Register(vocab.VerbDrop,
		Pattern{Slots: []SlotSpec{
			{Prep: vocab.PrepNone, Where: world.InHands | world.InCarried, Many: true, Have: true},
		}},
	)
	st.Register(vocab.VerbPut,
		Pattern{Slots: []SlotSpec{
			{Prep: vocab.PrepNone, Where: reachable, Many: true, Have: true, AutoTake: true},
			{Prep: vocab.PrepIn, Where: reachable},
		}},
		Pattern{Slots: []SlotSpec{
			{Prep: vocab.PrepNone, Where: reachable, Many: true, Have: true, AutoTake: true},
			{Prep: vocab.PrepOn, Where: reachable},
		}},
	)
	st.Register(vocab.VerbOpen,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable}}},
	)
	st.Register(vocab.VerbClose,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable}}},
	)
	st.Register(vocab.VerbLook,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepAt, Where: reachable}}},
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepIn, Where: reachable}}},
		Pattern{Slots: nil},
	)
	st.Register(vocab.VerbExamine,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable}}},
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepAt, Where: reachable}}},
	)
	st.Register(vocab.VerbRead,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable, Have: true, AutoTake: true}}},
	)
	st.Register(vocab.VerbLight,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable, Have: true, AutoTake: true}}},
	)
	st.Register(vocab.VerbDouse,
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable, Have: true, AutoTake: true}}},
	)
	st.Register(vocab.VerbAttack,
		Pattern{Slots: []SlotSpec{
			{Prep: vocab.PrepNone, Where: reachable},
			{Prep: vocab.PrepWith, Where: world.InHands, Have: true},
		}},
		Pattern{Slots: []SlotSpec{{Prep: vocab.PrepNone, Where: reachable}}},
	)
	st.Register(vocab.VerbSay,
		Pattern{TakesLiteral: true},
	)

	for _, v := range []vocab.VerbID{
		vocab.VerbInventory, vocab.VerbWait, vocab.VerbScore,
		vocab.VerbHelp, vocab.VerbQuit,
	} {
		st.Register(v, Pattern{Slots: nil})
	}

	return st
}

package vocab

// File verbs.go has the closed enumeration of verb identifiers the engine
// dispatches on, along with preposition identifiers. Verb handlers are looked
// up by VerbID, never by raw string.

import "fmt"

// VerbID identifies a verb action. The set is closed; game content attaches
// behavior to these identifiers rather than defining new ones.
type VerbID int

const (
	// VerbNone is the zero VerbID and is not a valid verb.
	VerbNone VerbID = iota

	VerbWalk
	VerbTake
	VerbDrop
	VerbPut
	VerbOpen
	VerbClose
	VerbLook
	VerbExamine
	VerbRead
	VerbInventory
	VerbLight
	VerbDouse
	VerbAttack
	VerbSay
	VerbWait
	VerbScore
	VerbHelp
	VerbQuit

	// VerbAgain and VerbOops are recognized at the top level of parsing and
	// never reach the dispatch layer.
	VerbAgain
	VerbOops
)

var verbNames = map[VerbID]string{
	VerbNone:      "NONE",
	VerbWalk:      "WALK",
	VerbTake:      "TAKE",
	VerbDrop:      "DROP",
	VerbPut:       "PUT",
	VerbOpen:      "OPEN",
	VerbClose:     "CLOSE",
	VerbLook:      "LOOK",
	VerbExamine:   "EXAMINE",
	VerbRead:      "READ",
	VerbInventory: "INVENTORY",
	VerbLight:     "LIGHT",
	VerbDouse:     "DOUSE",
	VerbAttack:    "ATTACK",
	VerbSay:       "SAY",
	VerbWait:      "WAIT",
	VerbScore:     "SCORE",
	VerbHelp:      "HELP",
	VerbQuit:      "QUIT",
	VerbAgain:     "AGAIN",
	VerbOops:      "OOPS",
}

func (v VerbID) String() string {
	if name, ok := verbNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VerbID(%d)", int(v))
}

// Prep identifies a preposition. The zero value PrepNone means "no
// preposition".
type Prep int

const (
	PrepNone Prep = iota
	PrepIn
	PrepOn
	PrepFrom
	PrepWith
	PrepTo
	PrepUnder
	PrepAt
	PrepOf
)

var prepNames = map[Prep]string{
	PrepNone:  "NONE",
	PrepIn:    "IN",
	PrepOn:    "ON",
	PrepFrom:  "FROM",
	PrepWith:  "WITH",
	PrepTo:    "TO",
	PrepUnder: "UNDER",
	PrepAt:    "AT",
	PrepOf:    "OF",
}

func (p Prep) String() string {
	if name, ok := prepNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Prep(%d)", int(p))
}

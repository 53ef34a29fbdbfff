package parser

// File errors.go defines the typed conditions a parse can end with. Every
// stage of the pipeline returns either a continuation value or exactly one of
// these; once a condition is produced no further stage runs, and no world or
// continuation state is left half-applied.

import (
	"fmt"
	"strings"

	"github.com/tmoresby/clork/internal/world"
)

// Condition identifies why a parse stopped.
type Condition int

const (
	// CondEmptyInput means the line contained no words at all.
	CondEmptyInput Condition = iota

	// CondUnknownWord means a word was not in the vocabulary and was not a
	// number. The error carries the token position for OOPS.
	CondUnknownWord

	// CondTooManyNouns means a third noun clause appeared in one sentence.
	CondTooManyNouns

	// CondBadOf means a malformed "X OF Y" construction.
	CondBadOf

	// CondCantUse means the word is in the vocabulary but is grammatically
	// inapplicable where it appeared.
	CondCantUse

	// CondNoSyntaxMatch means no registered syntax pattern for the verb
	// matched the sentence shape.
	CondNoSyntaxMatch

	// CondIncomplete means the shape was close but a noun slot was empty.
	// The pipeline has stored an orphan record; the message is the "What do
	// you want to X?" prompt.
	CondIncomplete

	// CondAmbiguousObject means a noun phrase matched several candidates and
	// disambiguation could not pick one. Carries the candidate list.
	CondAmbiguousObject

	// CondNotHere means the noun phrase matched nothing currently in scope.
	CondNotHere

	// CondCannotTake means an implicit take was required but the object
	// cannot be taken.
	CondCannotTake

	// CondNoAgain means AGAIN with no prior successful command.
	CondNoAgain

	// CondAgainFragment means AGAIN while a command is waiting for an
	// orphan completion.
	CondAgainFragment

	// CondAgainMistake means AGAIN immediately after a failed parse.
	CondAgainMistake

	// CondOopsFailed means OOPS with no recorded unknown word to correct.
	CondOopsFailed
)

var conditionNames = map[Condition]string{
	CondEmptyInput:      "empty-input",
	CondUnknownWord:     "unknown-word",
	CondTooManyNouns:    "too-many-nouns",
	CondBadOf:           "bad-of",
	CondCantUse:         "cant-use",
	CondNoSyntaxMatch:   "no-syntax-match",
	CondIncomplete:      "incomplete-command",
	CondAmbiguousObject: "ambiguous-object",
	CondNotHere:         "not-here",
	CondCannotTake:      "cannot-take",
	CondNoAgain:         "no-again",
	CondAgainFragment:   "again-fragment",
	CondAgainMistake:    "again-mistake",
	CondOopsFailed:      "oops-failed",
}

func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// Error is a parse failure. It terminates the current parse only; the engine
// reports GameMessage to the player and is immediately ready for the next
// line.
type Error struct {
	// Cond is the condition that stopped the parse.
	Cond Condition

	// Word is the offending word, where one exists (unknown-word, cant-use,
	// bad-of, not-here).
	Word string

	// Pos is the token position of the unknown word, for OOPS.
	Pos int

	// Candidates is the candidate object list for ambiguous-object.
	Candidates []*world.Object

	// Suggestions is the "did you mean" list for unknown-word, nearest
	// vocabulary words first.
	Suggestions []string

	// Prompt is the player-facing question for incomplete commands.
	Prompt string

	// Holding distinguishes the must-already-hold variant of cannot-take.
	Holding bool
}

func (e *Error) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("parse failed: %s (%q at %d)", e.Cond, e.Word, e.Pos)
	}
	return fmt.Sprintf("parse failed: %s", e.Cond)
}

// GameMessage gives the one-line diagnostic to show the player. The parser
// never writes this anywhere itself; rendering is the caller's job.
func (e *Error) GameMessage() string {
	switch e.Cond {
	case CondEmptyInput:
		return "I beg your pardon?"
	case CondUnknownWord:
		msg := fmt.Sprintf("I don't know the word %q.", strings.ToLower(e.Word))
		if len(e.Suggestions) > 0 {
			lowered := make([]string, len(e.Suggestions))
			for i := range e.Suggestions {
				lowered[i] = strings.ToLower(e.Suggestions[i])
			}
			msg += fmt.Sprintf(" (did you mean %q?)", strings.Join(lowered, `", "`))
		}
		return msg
	case CondTooManyNouns:
		return "There were too many nouns in that sentence."
	case CondBadOf:
		return fmt.Sprintf("I can't understand the way %q is used with \"OF\".", strings.ToLower(e.Word))
	case CondCantUse:
		return fmt.Sprintf("You used the word %q in a way that I don't understand.", strings.ToLower(e.Word))
	case CondNoSyntaxMatch:
		return "That sentence isn't one I recognize."
	case CondIncomplete:
		return e.Prompt
	case CondAmbiguousObject:
		names := make([]string, len(e.Candidates))
		for i := range e.Candidates {
			names[i] = "the " + e.Candidates[i].Name
		}
		return fmt.Sprintf("Which %s do you mean, %s?", strings.ToLower(e.Word), strings.Join(names, " or "))
	case CondNotHere:
		return fmt.Sprintf("You can't see any %s here!", strings.ToLower(e.Word))
	case CondCannotTake:
		if e.Holding {
			return fmt.Sprintf("You're not holding the %s.", strings.ToLower(e.Word))
		}
		return fmt.Sprintf("You can't take the %s.", strings.ToLower(e.Word))
	case CondNoAgain:
		return "There's no command to repeat."
	case CondAgainFragment:
		return "You can't repeat an incomplete command."
	case CondAgainMistake:
		return "It's hardly worth repeating a mistake."
	case CondOopsFailed:
		return "There was no mistake to correct."
	}
	return "I didn't understand that."
}

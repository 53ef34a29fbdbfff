package parser

// File continuation.go has the turn-spanning parser memory: the records that
// make orphan completion, AGAIN, and OOPS work. The state is an explicit
// value passed into every Parse call rather than ambient package state, so
// the parser stays testable in isolation and usable for speculative parsing
// against a scratch Continuation.

import (
	"github.com/tmoresby/clork/internal/vocab"
)

// replay is the snapshot AGAIN restores: the verb and bound clause shapes of
// the last successful parse. AGAIN re-enters the pipeline at the syntax
// matcher, so tokenization and clause parsing are skipped.
type replay struct {
	verb      vocab.VerbID
	clauses   []Clause
	direction vocab.Direction
	literal   string
	isLiteral bool
}

// attempt is the snapshot OOPS corrects: the canonical words of the last
// submitted input and the index of its first unknown word (-1 when every
// word was known).
type attempt struct {
	words      []string
	unknownIdx int
}

// Orphan is the record of an incomplete command waiting for exactly one more
// noun phrase.
type Orphan struct {
	// Verb is the verb of the partial command.
	Verb vocab.VerbID

	// Pattern is the syntax pattern the partial command matched as a
	// prefix.
	Pattern Pattern

	// Clauses are the noun clauses already filled, in slot order.
	Clauses []Clause

	// MissingSlot is the index of the slot awaiting a value.
	MissingSlot int
}

// Continuation is the parser's cross-turn state. The zero value is not
// usable; create one with NewContinuation.
type Continuation struct {
	lastSuccess *replay
	lastAttempt *attempt
	orphan      *Orphan

	// pronoun is the label of the current "it" referent.
	pronoun string

	// lastFailed is whether the most recent pipeline run ended in a typed
	// error, which blocks AGAIN.
	lastFailed bool

	// dismissedOrphan is whether the current run threw away a pending
	// orphan in favor of a fresh command. Parse resets it on entry and
	// turns it into a Notice on the way out.
	dismissedOrphan bool
}

// NewContinuation creates an empty Continuation, ready for the first parse
// of a session.
func NewContinuation() *Continuation {
	return &Continuation{}
}

// Pronoun returns the label of the current pronoun referent, or empty.
func (c *Continuation) Pronoun() string {
	return c.pronoun
}

// BindPronoun sets the pronoun referent to the object with the given label.
func (c *Continuation) BindPronoun(label string) {
	c.pronoun = label
}

// Orphaned returns whether a command is waiting for an orphan completion.
func (c *Continuation) Orphaned() bool {
	return c.orphan != nil
}

// recordAttempt snapshots the submitted words for OOPS. Called at the top of
// every pipeline run on fresh input, before the outcome is known.
func (c *Continuation) recordAttempt(words []string, unknownIdx int) {
	c.lastAttempt = &attempt{words: words, unknownIdx: unknownIdx}
}

// recordSuccess snapshots a successful parse for AGAIN and clears the
// failure flag.
func (c *Continuation) recordSuccess(r replay) {
	cp := r
	cp.clauses = append([]Clause(nil), r.clauses...)
	c.lastSuccess = &cp
	c.lastFailed = false
}

// recordFailure marks the most recent run as failed, blocking AGAIN until a
// successful parse happens.
func (c *Continuation) recordFailure() {
	c.lastFailed = true
}

// setOrphan stores the partial command awaiting one more noun phrase.
func (c *Continuation) setOrphan(o Orphan) {
	o.Clauses = append([]Clause(nil), o.Clauses...)
	c.orphan = &o
}

// takeOrphan removes and returns the pending orphan record, if any.
func (c *Continuation) takeOrphan() *Orphan {
	o := c.orphan
	c.orphan = nil
	return o
}

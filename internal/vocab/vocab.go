// Package vocab holds the game vocabulary: the mapping from surface words to
// the grammatical roles they can play and the semantic values attached to each
// role. The vocabulary is built once from the engine's verb definitions and is
// extended at runtime as game objects are registered.
package vocab

import (
	"sort"
	"strings"
)

// Role is a bitmask of the grammatical roles a word can play. A single word
// may hold several roles at once; for instance "LIGHT" may be both a verb and
// a noun referring to a lamp.
type Role uint8

const (
	// RoleVerb marks a word as a verb.
	RoleVerb Role = 1 << iota

	// RolePrep marks a word as a preposition.
	RolePrep

	// RoleAdjective marks a word as an adjective of at least one object.
	RoleAdjective

	// RoleNoun marks a word as a noun referring to at least one object.
	RoleNoun

	// RoleDirection marks a word as a direction of travel. Directions are a
	// closed grammatical category distinct from ordinary nouns; a bare
	// direction word is an immediate movement shortcut.
	RoleDirection

	// RoleBuzz marks a word as a buzz-word (an article such as "THE"), which
	// parsing skips without consuming anything.
	RoleBuzz
)

// Has returns whether r includes the given role.
func (r Role) Has(role Role) bool {
	return r&role != 0
}

// Entry is the vocabulary record for a single word. Roles is the set of roles
// the word can play; the remaining fields are only meaningful for entries
// whose Roles includes the corresponding role bit.
type Entry struct {
	// Word is the canonical (upper-case) form of the word.
	Word string

	// Roles is the set of roles this word can play.
	Roles Role

	// Verb is the verb this word invokes, if Roles includes RoleVerb.
	Verb VerbID

	// Prep is the preposition identifier, if Roles includes RolePrep.
	Prep Prep

	// Direction is the direction identifier, if Roles includes RoleDirection.
	Direction Direction

	// NounOf is the set of object labels this word can refer to as a head
	// noun, in registration order.
	NounOf []string

	// AdjectiveOf is the set of object labels this word can qualify as an
	// adjective, in registration order.
	AdjectiveOf []string
}

// Registry is the complete vocabulary for a session. Lookups are
// case-insensitive. The mapping is append-only: registration calls merge role
// sets into existing entries, they never overwrite them.
//
// A Registry is not safe for concurrent mutation, but the surrounding engine
// is single-threaded and all registration happens before parsing begins.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry creates an empty vocabulary Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Normalize gives the canonical form of a word as used for vocabulary keys.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

func (r *Registry) entryFor(word string) *Entry {
	norm := Normalize(word)
	ent, ok := r.entries[norm]
	if !ok {
		ent = &Entry{Word: norm}
		r.entries[norm] = ent
	}
	return ent
}

// Lookup finds the entry for the given word. The second return value is false
// if the word is not in the vocabulary at all.
func (r *Registry) Lookup(word string) (Entry, bool) {
	ent, ok := r.entries[Normalize(word)]
	if !ok {
		return Entry{}, false
	}
	return *ent, true
}

// AddVerb registers each of the given words as invoking the verb id. Words
// already present gain the verb role; their other roles are kept.
func (r *Registry) AddVerb(id VerbID, words ...string) {
	for _, w := range words {
		ent := r.entryFor(w)
		ent.Roles |= RoleVerb
		ent.Verb = id
	}
}

// AddPrep registers the given words as forms of the preposition p.
func (r *Registry) AddPrep(p Prep, words ...string) {
	for _, w := range words {
		ent := r.entryFor(w)
		ent.Roles |= RolePrep
		ent.Prep = p
	}
}

// AddDirection registers the given words as forms of the direction d.
func (r *Registry) AddDirection(d Direction, words ...string) {
	for _, w := range words {
		ent := r.entryFor(w)
		ent.Roles |= RoleDirection
		ent.Direction = d
	}
}

// AddBuzz registers the given words as buzz-words.
func (r *Registry) AddBuzz(words ...string) {
	for _, w := range words {
		ent := r.entryFor(w)
		ent.Roles |= RoleBuzz
	}
}

// AddBareNoun registers words as nouns with no object bindings. Used for
// pronouns and quantifier words, which the clause parser treats specially but
// which must still be recognized by the tokenizer.
func (r *Registry) AddBareNoun(words ...string) {
	for _, w := range words {
		ent := r.entryFor(w)
		ent.Roles |= RoleNoun
	}
}

// AddObjectWords merges the noun and adjective words of a game object into
// the vocabulary. It is idempotent: registering the same object twice does
// not duplicate any reference. It may be called at any time before a parse,
// including between turns as new objects are created.
func (r *Registry) AddObjectWords(label string, nouns []string, adjectives []string) {
	label = Normalize(label)

	for _, n := range nouns {
		ent := r.entryFor(n)
		ent.Roles |= RoleNoun
		if !containsString(ent.NounOf, label) {
			ent.NounOf = append(ent.NounOf, label)
		}
	}
	for _, adj := range adjectives {
		ent := r.entryFor(adj)
		ent.Roles |= RoleAdjective
		if !containsString(ent.AdjectiveOf, label) {
			ent.AdjectiveOf = append(ent.AdjectiveOf, label)
		}
	}
}

// Words returns every registered word in sorted order. It is intended for
// spell-suggestion scans and debug output, not for parsing.
func (r *Registry) Words() []string {
	words := make([]string, 0, len(r.entries))
	for w := range r.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of distinct words registered.
func (r *Registry) Len() int {
	return len(r.entries)
}

func containsString(sl []string, s string) bool {
	for i := range sl {
		if sl[i] == s {
			return true
		}
	}
	return false
}

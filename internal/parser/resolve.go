package parser

// File resolve.go has the object resolver: the stage that expands each noun
// clause into concrete objects, applying the slot's location constraints,
// ALL expansion, GWIM disambiguation, and implicit-take synthesis.

import (
	"strings"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// resolution is the resolver's output for a full pattern.
type resolution struct {
	direct   []*world.Object
	indirect []*world.Object

	// implicitTakes are objects the actor must pick up before the verb can
	// apply, in slot order.
	implicitTakes []*world.Object

	// emptyAll is set when an ALL clause matched nothing: a no-op success,
	// not an error.
	emptyAll bool
}

// resolveSlots expands every clause of a matched pattern. Slot 0 binds the
// direct objects, slot 1 the indirect objects.
func resolveSlots(snap world.Snapshot, cont *Continuation, verb vocab.VerbID, pat Pattern, clauses []Clause) (resolution, *Error) {
	var res resolution

	for i, spec := range pat.Slots {
		cl := clauses[i]

		objs, emptyAll, perr := resolveClause(snap, cont, verb, pat, clauses, i, cl, spec, res.direct)
		if perr != nil {
			return resolution{}, perr
		}
		if emptyAll {
			res.emptyAll = true
			continue
		}

		takes, perr := implicitTakes(snap, spec, objs)
		if perr != nil {
			return resolution{}, perr
		}
		res.implicitTakes = append(res.implicitTakes, takes...)

		if i == 0 {
			res.direct = objs
		} else {
			res.indirect = objs
		}
	}

	return res, nil
}

// resolveClause produces the object set for one clause in one slot. prior
// holds the objects already bound to earlier slots, which an elided clause
// must not re-bind.
func resolveClause(snap world.Snapshot, cont *Continuation, verb vocab.VerbID, pat Pattern, clauses []Clause, slot int, cl Clause, spec SlotSpec, prior []*world.Object) ([]*world.Object, bool, *Error) {
	if cl.Pronoun {
		return resolvePronoun(snap, cont, spec)
	}

	if cl.Quant == QuantAll {
		if !spec.Many {
			return nil, false, &Error{Cond: CondCantUse, Word: "ALL"}
		}
		objs := expandAll(snap, spec, cl)
		if len(objs) == 0 {
			return nil, true, nil
		}
		return objs, false, nil
	}

	candidates := matchingObjects(snap, spec.Where, cl)

	if cl.Elided {
		candidates = gwimFilter(cl.Prep, candidates, prior)
	}

	if len(candidates) == 0 {
		if cl.Elided {
			// end-on-preposition GWIM found nothing suitable; re-ask for the
			// missing piece instead of failing hard
			return nil, false, &Error{
				Cond:   CondIncomplete,
				Prompt: orphanPrompt(verb, pat, clauses[:slot], slot),
			}
		}
		// distinguish "not here" from "not holding"
		if spec.Have {
			if broader := matchingObjects(snap, world.Anywhere, cl); len(broader) > 0 {
				return nil, false, &Error{Cond: CondCannotTake, Word: broader[0].Name, Holding: true}
			}
		}
		return nil, false, &Error{Cond: CondNotHere, Word: clauseDisplayWord(cl)}
	}

	if len(candidates) == 1 {
		return candidates[:1], false, nil
	}

	// GWIM: prefer something already held
	var held []*world.Object
	for _, o := range candidates {
		if snap.Holds(o.Label) {
			held = append(held, o)
		}
	}
	if len(held) == 1 {
		return held, false, nil
	}

	// then the current pronoun referent
	if ref := cont.Pronoun(); ref != "" {
		for _, o := range candidates {
			if o.Label == ref {
				return []*world.Object{o}, false, nil
			}
		}
	}

	// a ONE quantifier, an adjective-only phrase, or an elided clause takes
	// the first candidate in enumeration order; an explicit noun that is
	// still ambiguous asks the player
	if cl.Quant == QuantOne || cl.Noun == "" || cl.Elided {
		return candidates[:1], false, nil
	}

	return nil, false, &Error{
		Cond:       CondAmbiguousObject,
		Word:       clauseDisplayWord(cl),
		Candidates: candidates,
	}
}

// resolvePronoun binds "IT" to the most recently referenced object.
func resolvePronoun(snap world.Snapshot, cont *Continuation, spec SlotSpec) ([]*world.Object, bool, *Error) {
	ref := cont.Pronoun()
	if ref == "" {
		return nil, false, &Error{Cond: CondNotHere, Word: "it"}
	}
	loc, ok := snap.WhereOf(ref)
	if !ok || !spec.Where.Has(loc) {
		obj := snap.Find(ref)
		name := "it"
		if obj != nil {
			name = obj.Name
		}
		if spec.Have && ok {
			return nil, false, &Error{Cond: CondCannotTake, Word: name, Holding: true}
		}
		return nil, false, &Error{Cond: CondNotHere, Word: name}
	}
	return []*world.Object{snap.Find(ref)}, false, nil
}

// gwimFilter narrows the candidates for a fully elided slot to objects the
// preposition makes sense with: open containers for IN, surfaces for ON.
// Objects already bound to an earlier slot are never candidates.
func gwimFilter(prep vocab.Prep, candidates, prior []*world.Object) []*world.Object {
	var objs []*world.Object
	for _, o := range candidates {
		if containsObject(prior, o) {
			continue
		}
		switch prep {
		case vocab.PrepIn:
			if !o.Has(world.FlagContainer) || !o.Has(world.FlagOpen) {
				continue
			}
		case vocab.PrepOn:
			if !o.Has(world.FlagSurface) {
				continue
			}
		}
		objs = append(objs, o)
	}
	return objs
}

func containsObject(objs []*world.Object, o *world.Object) bool {
	for i := range objs {
		if objs[i] == o {
			return true
		}
	}
	return false
}

// expandAll gives every object eligible for an ALL clause: in a matching
// location, matching the clause's words if it has any, takeable, and not
// flagged out of ALL. The result preserves scope enumeration order, so
// expansion is idempotent against an unchanged world.
func expandAll(snap world.Snapshot, spec SlotSpec, cl Clause) []*world.Object {
	var objs []*world.Object
	for _, o := range snap.InScope(spec.Where) {
		if o.Has(world.FlagNoAll) || o.Has(world.FlagFixed) || !o.Has(world.FlagTakeable) {
			continue
		}
		if (cl.Noun != "" || len(cl.Adjectives) > 0) && !clauseMatches(cl, o) {
			continue
		}
		objs = append(objs, o)
	}
	return objs
}

// matchingObjects gives the in-scope objects the clause's words refer to, in
// enumeration order.
func matchingObjects(snap world.Snapshot, where world.Where, cl Clause) []*world.Object {
	if cl.Noun == "" && len(cl.Adjectives) == 0 {
		// fully elided: every object in the slot's locations is a candidate
		return snap.InScope(where)
	}

	var objs []*world.Object
	for _, o := range snap.InScope(where) {
		if clauseMatches(cl, o) {
			objs = append(objs, o)
		}
	}
	return objs
}

// clauseMatches reports whether the clause's head noun and every adjective
// apply to the object.
func clauseMatches(cl Clause, o *world.Object) bool {
	if cl.Noun != "" && !wordIn(cl.Noun, o.Nouns) {
		return false
	}
	for _, adj := range cl.Adjectives {
		if !wordIn(adj, o.Adjectives) && !wordIn(adj, o.Nouns) {
			return false
		}
	}
	return true
}

// implicitTakes checks the must-hold constraint for each bound object and
// synthesizes the implicit take steps an auto-take slot permits.
func implicitTakes(snap world.Snapshot, spec SlotSpec, objs []*world.Object) ([]*world.Object, *Error) {
	if !spec.Have {
		return nil, nil
	}

	var takes []*world.Object
	for _, o := range objs {
		if snap.Holds(o.Label) {
			continue
		}
		if !spec.AutoTake {
			return nil, &Error{Cond: CondCannotTake, Word: o.Name, Holding: true}
		}
		if !o.Has(world.FlagTakeable) || o.Has(world.FlagFixed) {
			return nil, &Error{Cond: CondCannotTake, Word: o.Name}
		}
		takes = append(takes, o)
	}
	return takes, nil
}

func clauseDisplayWord(cl Clause) string {
	if cl.Noun != "" {
		return cl.Noun
	}
	if len(cl.Adjectives) > 0 {
		return strings.Join(cl.Adjectives, " ")
	}
	return "that"
}

func wordIn(w string, words []string) bool {
	for i := range words {
		if words[i] == w {
			return true
		}
	}
	return false
}

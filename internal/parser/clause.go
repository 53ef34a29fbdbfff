package parser

// File clause.go has the noun-clause parser: the stage that consumes a run of
// tokens and produces one noun clause (quantifier, adjectives, head noun,
// leading preposition).

import (
	"github.com/tmoresby/clork/internal/vocab"
)

// Quantifier is the optional quantifier on a noun clause.
type Quantifier int

const (
	// QuantNone means no quantifier; the clause names one specific object.
	QuantNone Quantifier = iota

	// QuantAll means the clause expands to every eligible object.
	QuantAll

	// QuantOne means the clause asks for any single matching object.
	QuantOne
)

// Clause is one parsed noun phrase.
type Clause struct {
	// Quant is the quantifier, if any.
	Quant Quantifier

	// Adjectives are the qualifying words, in input order.
	Adjectives []string

	// Noun is the head noun. Empty when the clause is adjective-only or
	// fully elided.
	Noun string

	// Prep is the preposition that introduced the clause, or PrepNone.
	Prep vocab.Prep

	// Elided marks a clause with no noun words at all: either a bare
	// quantifier ("TAKE ALL") or a trailing preposition awaiting GWIM
	// resolution ("PUT THE LAMP IN").
	Elided bool

	// Pronoun marks a clause whose head was the pronoun "IT".
	Pronoun bool
}

// quantifierFor maps quantifier words to their Quantifier; QuantNone for
// anything else.
func quantifierFor(word string) Quantifier {
	switch word {
	case "ALL", "EVERYTHING":
		return QuantAll
	case "ONE":
		return QuantOne
	}
	return QuantNone
}

// nounIntroducer reports whether the token can begin or continue a noun
// clause.
func nounIntroducer(tok Token) bool {
	if tok.Literal {
		return false
	}
	if tok.IsNumber {
		return true
	}
	if quantifierFor(tok.Word) != QuantNone {
		return true
	}
	return tok.Entry.Roles.Has(vocab.RoleNoun) ||
		tok.Entry.Roles.Has(vocab.RoleAdjective) ||
		tok.Entry.Roles.Has(vocab.RoleBuzz)
}

// parseClause consumes a noun clause from tokens starting at start. The lead
// preposition, if the caller already consumed one, is recorded on the
// resulting clause. It returns the clause and the index of the first token it
// did not consume.
//
// The grammar is greedy: a run of adjectives, then at most one head noun.
// "X OF Y" folds into a single clause, with X demoted to a qualifying word
// when it was itself a noun. Buzz-words are skipped without consuming a
// slot.
func parseClause(tokens []Token, start int, lead vocab.Prep) (Clause, int, *Error) {
	cl := Clause{Prep: lead}
	i := start

	// optional quantifier, optionally followed by OF ("ALL OF THE BOOKS")
	if i < len(tokens) {
		if q := quantifierFor(tokens[i].Word); q != QuantNone {
			cl.Quant = q
			i++
			if i < len(tokens) && tokens[i].Word == "OF" {
				i++
				if i >= len(tokens) || !nounIntroducer(tokens[i]) {
					return cl, i, &Error{Cond: CondBadOf, Word: tokens[i-1].Word}
				}
			}
		}
	}

	sawWords := false
	for i < len(tokens) {
		tok := tokens[i]

		if tok.Entry.Roles.Has(vocab.RoleBuzz) {
			i++
			continue
		}

		if tok.Word == "OF" {
			// "CLOVE OF GARLIC": the word before OF becomes a qualifier
			if cl.Noun == "" {
				return cl, i, &Error{Cond: CondBadOf, Word: tok.Word}
			}
			cl.Adjectives = append(cl.Adjectives, cl.Noun)
			cl.Noun = ""
			i++
			if i >= len(tokens) || !nounIntroducer(tokens[i]) {
				return cl, i, &Error{Cond: CondBadOf, Word: tok.Word}
			}
			continue
		}

		if !nounIntroducer(tok) {
			break
		}

		if tok.Word == "IT" {
			cl.Pronoun = true
			sawWords = true
			i++
			break
		}

		// the head noun is the last noun-capable word of the run; a word
		// that can serve as an adjective is demoted when another noun
		// follows it
		if cl.Noun != "" {
			prev := tokens[i-1]
			if prev.Entry.Roles.Has(vocab.RoleAdjective) {
				cl.Adjectives = append(cl.Adjectives, cl.Noun)
				cl.Noun = ""
			} else {
				break
			}
		}

		switch {
		case tok.IsNumber:
			cl.Noun = tok.Word
			sawWords = true
			i++
		case tok.Entry.Roles.Has(vocab.RoleNoun):
			cl.Noun = tok.Word
			sawWords = true
			i++
		case tok.Entry.Roles.Has(vocab.RoleAdjective):
			cl.Adjectives = append(cl.Adjectives, tok.Word)
			sawWords = true
			i++
		default:
			return cl, i, &Error{Cond: CondCantUse, Word: tok.Word}
		}
	}

	if !sawWords && cl.Quant == QuantNone {
		return cl, i, &Error{Cond: CondCantUse, Word: tokenWordAt(tokens, i)}
	}
	if !sawWords {
		// bare quantifier ("TAKE ALL"): identity is deferred entirely to the
		// resolver's visibility scan
		cl.Elided = true
	}

	return cl, i, nil
}

func tokenWordAt(tokens []Token, i int) string {
	if i >= 0 && i < len(tokens) {
		return tokens[i].Word
	}
	return ""
}

// Package parser implements the command interpreter pipeline: tokenization
// against a vocabulary, noun-clause extraction, syntax matching, and object
// resolution, along with the cross-turn continuation state behind orphan
// completion, AGAIN, and OOPS.
//
// The parser itself never mutates the world. It reads a Snapshot of what the
// actor can currently see and hold, and produces a Command for the game layer
// to execute, or a typed *Error describing exactly which stage rejected the
// input and why.
package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// maxSuggestions caps the "did you mean" list on unknown-word errors.
const maxSuggestions = 3

// Command is a fully resolved player command, ready for execution.
type Command struct {
	// Verb is the canonical verb.
	Verb vocab.VerbID

	// Direct and Indirect are the resolved objects for each slot. Direct
	// holds more than one object only after an ALL expansion.
	Direct   []*world.Object
	Indirect []*world.Object

	// ImplicitTakes are objects the actor must pick up first, announced as
	// "(first taking the ...)" before the verb applies.
	ImplicitTakes []*world.Object

	// Prep is the preposition of the matched pattern, where it has one, so
	// verbs like LOOK can tell their AT and IN forms apart.
	Prep vocab.Prep

	// Direction is set for movement commands in place of objects.
	Direction vocab.Direction

	// Literal is the raw text argument of a quote verb like SAY.
	Literal string

	// EmptyAll marks a command whose ALL clause matched nothing. Executing
	// it is a no-op with an explanatory message, not an error.
	EmptyAll bool
}

// Result is a successful parse: the command plus any unparsed remainder of
// the input line after a sentence separator.
type Result struct {
	Command Command

	// Rest is the rest of the input line after the first sentence separator,
	// to be parsed once the command has been executed.
	Rest string

	// Notice is a brief acknowledgment to show before the command's own
	// output. Set when the input abandoned a pending clarifying question in
	// favor of a fresh command.
	Notice string
}

// Parser runs the interpreter pipeline against a fixed vocabulary and syntax
// table. It is stateless across calls; all cross-turn memory lives in the
// Continuation the caller passes in.
type Parser struct {
	vocab  *vocab.Registry
	syntax *SyntaxTable
}

// New creates a Parser over the given vocabulary and syntax table.
func New(reg *vocab.Registry, st *SyntaxTable) *Parser {
	return &Parser{vocab: reg, syntax: st}
}

// NewDefault creates a Parser with the standard verb vocabulary and syntax
// patterns. Object words still need to be registered on its Vocabulary before
// they will parse.
func NewDefault() *Parser {
	return New(vocab.NewDefaultRegistry(), DefaultSyntaxTable())
}

// Vocabulary returns the registry the parser resolves words against, so
// world loaders can add object words to it.
func (p *Parser) Vocabulary() *vocab.Registry {
	return p.vocab
}

// Parse interprets one input line against the given world snapshot. It
// handles at most one sentence; when the line holds more, the remainder comes
// back in Result.Rest for the caller to submit after executing the command.
//
// Parsing the same line against the same snapshot and continuation state
// always produces the same outcome.
func (p *Parser) Parse(snap world.Snapshot, cont *Continuation, line string) (Result, *Error) {
	tokens := Tokenize(line, p.vocab)

	for len(tokens) > 0 && tokens[0].IsSeparator() {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		// not recorded as a failed attempt; a blank line is not a mistake
		return Result{}, &Error{Cond: CondEmptyInput}
	}

	sent := tokens
	rest := ""
	for i := range tokens {
		if tokens[i].IsSeparator() {
			sent = tokens[:i]
			rest = joinTokens(tokens[i+1:])
			break
		}
	}

	cont.dismissedOrphan = false

	cmd, perr := p.parseSentence(snap, cont, sent)
	if perr != nil {
		cont.recordFailure()
		return Result{}, perr
	}

	res := Result{Command: cmd, Rest: rest}
	if cont.dismissedOrphan {
		res.Notice = "(never mind)"
	}
	return res, nil
}

// parseSentence runs the pipeline over one separator-free sentence.
func (p *Parser) parseSentence(snap world.Snapshot, cont *Continuation, sent []Token) (Command, *Error) {
	first := sent[0]

	// OOPS and AGAIN act on the continuation records and never become
	// records themselves
	if first.Known && !first.Literal && first.Entry.Verb == vocab.VerbOops {
		return p.parseOops(snap, cont, sent)
	}
	if len(sent) == 1 && first.Known && !first.Literal && first.Entry.Verb == vocab.VerbAgain {
		return p.parseAgain(snap, cont)
	}

	cont.recordAttempt(words(sent), firstUnknown(sent))

	// a quote verb swallows the rest of the sentence verbatim, so unknown
	// words after it are not errors
	if first.Known && !first.Literal && first.Entry.Roles.Has(vocab.RoleVerb) && p.syntax.TakesLiteral(first.Entry.Verb) {
		if cont.Orphaned() {
			cont.takeOrphan()
			cont.dismissedOrphan = true
		}
		return p.parseLiteral(cont, first.Entry.Verb, sent)
	}

	if idx := firstUnknown(sent); idx >= 0 {
		return Command{}, &Error{
			Cond:        CondUnknownWord,
			Word:        strings.ToLower(sent[idx].Word),
			Pos:         idx,
			Suggestions: p.suggestions(sent[idx].Word),
		}
	}

	if cont.Orphaned() {
		if cmd, handled, perr := p.mergeOrphan(snap, cont, sent); handled {
			return cmd, perr
		}
		// new command supersedes the pending question
		cont.takeOrphan()
		cont.dismissedOrphan = true
	}

	// a bare direction is a walk
	if len(sent) == 1 && first.Entry.Roles.Has(vocab.RoleDirection) {
		return p.finishDirection(cont, first.Entry.Direction)
	}

	if !first.Entry.Roles.Has(vocab.RoleVerb) {
		return Command{}, &Error{Cond: CondNoSyntaxMatch, Word: strings.ToLower(first.Word)}
	}
	verb := first.Entry.Verb

	if verb == vocab.VerbWalk {
		return p.parseWalk(cont, sent)
	}

	clauses, perr := p.parseClauses(sent, 1)
	if perr != nil {
		return Command{}, perr
	}

	pat, missing, perr := p.syntax.Match(verb, clauses)
	if perr != nil {
		if perr.Cond == CondIncomplete && missing >= 0 {
			cont.setOrphan(Orphan{Verb: verb, Pattern: pat, Clauses: clauses, MissingSlot: missing})
		}
		return Command{}, perr
	}

	return p.finishResolve(snap, cont, verb, pat, clauses)
}

// parseClauses extracts the noun clauses of a sentence, starting after the
// verb. A trailing preposition yields an elided clause for GWIM to fill.
func (p *Parser) parseClauses(sent []Token, start int) ([]Clause, *Error) {
	var clauses []Clause
	i := start

	for i < len(sent) {
		if len(clauses) == 2 {
			return nil, &Error{Cond: CondTooManyNouns}
		}

		lead := vocab.PrepNone
		tok := sent[i]
		if tok.Entry.Roles.Has(vocab.RolePrep) && !nounIntroducer(tok) {
			lead = tok.Entry.Prep
			i++
			if i >= len(sent) {
				clauses = append(clauses, Clause{Prep: lead, Elided: true})
				break
			}
		}

		cl, next, perr := parseClause(sent, i, lead)
		if perr != nil {
			return nil, perr
		}
		if next == i {
			return nil, &Error{Cond: CondCantUse, Word: strings.ToLower(sent[i].Word)}
		}
		i = next
		clauses = append(clauses, cl)
	}

	return clauses, nil
}

// finishResolve runs object resolution and records the success for AGAIN and
// pronoun reference.
func (p *Parser) finishResolve(snap world.Snapshot, cont *Continuation, verb vocab.VerbID, pat Pattern, clauses []Clause) (Command, *Error) {
	res, perr := resolveSlots(snap, cont, verb, pat, clauses)
	if perr != nil {
		if perr.Cond == CondIncomplete {
			if idx := elidedSlot(clauses); idx >= 0 {
				cont.setOrphan(Orphan{Verb: verb, Pattern: pat, Clauses: clauses[:idx], MissingSlot: idx})
			}
		}
		return Command{}, perr
	}

	cmd := Command{
		Verb:          verb,
		Direct:        res.direct,
		Indirect:      res.indirect,
		ImplicitTakes: res.implicitTakes,
		EmptyAll:      res.emptyAll,
	}
	for _, spec := range pat.Slots {
		if spec.Prep != vocab.PrepNone {
			cmd.Prep = spec.Prep
			break
		}
	}

	if len(cmd.Direct) == 1 {
		cont.BindPronoun(cmd.Direct[0].Label)
	}
	cont.recordSuccess(replay{verb: verb, clauses: clauses})

	return cmd, nil
}

// elidedSlot finds the trailing elided clause left by an end-on-preposition
// sentence, or -1.
func elidedSlot(clauses []Clause) int {
	for i := range clauses {
		if clauses[i].Elided && clauses[i].Quant == QuantNone {
			return i
		}
	}
	return -1
}

// parseWalk handles movement. The verb takes a direction word, not a noun
// clause.
func (p *Parser) parseWalk(cont *Continuation, sent []Token) (Command, *Error) {
	i := 1
	for i < len(sent) {
		tok := sent[i]
		if tok.Entry.Roles.Has(vocab.RoleDirection) {
			return p.finishDirection(cont, tok.Entry.Direction)
		}
		if tok.Entry.Roles.Has(vocab.RoleBuzz) || tok.Entry.Roles.Has(vocab.RolePrep) {
			i++
			continue
		}
		return Command{}, &Error{Cond: CondNoSyntaxMatch, Word: strings.ToLower(tok.Word)}
	}

	// a walk with no direction prompts but leaves no orphan; the answer will
	// arrive as a bare direction, which is a complete command on its own
	return Command{}, &Error{Cond: CondIncomplete, Prompt: "Which way do you want to go?"}
}

func (p *Parser) finishDirection(cont *Continuation, dir vocab.Direction) (Command, *Error) {
	cont.recordSuccess(replay{verb: vocab.VerbWalk, direction: dir})
	return Command{Verb: vocab.VerbWalk, Direction: dir}, nil
}

// parseLiteral handles quote verbs: everything after the verb is the
// argument, whether quoted or not.
func (p *Parser) parseLiteral(cont *Continuation, verb vocab.VerbID, sent []Token) (Command, *Error) {
	if len(sent) < 2 {
		return Command{}, &Error{
			Cond:   CondIncomplete,
			Prompt: "What do you want to " + strings.ToLower(verb.String()) + "?",
		}
	}

	var lit string
	if sent[1].Literal {
		lit = sent[1].Text
	} else {
		parts := make([]string, 0, len(sent)-1)
		for _, t := range sent[1:] {
			parts = append(parts, t.Text)
		}
		lit = strings.Join(parts, " ")
	}

	cont.recordSuccess(replay{verb: verb, literal: lit, isLiteral: true})
	return Command{Verb: verb, Literal: lit}, nil
}

// mergeOrphan tries to read the sentence as the answer to a pending
// incomplete command. It reports handled=false when the sentence looks like a
// fresh command instead.
func (p *Parser) mergeOrphan(snap world.Snapshot, cont *Continuation, sent []Token) (Command, bool, *Error) {
	o := cont.orphan
	slotPrep := o.Pattern.Slots[o.MissingSlot].Prep

	start := 0
	first := sent[0]
	switch {
	case first.Entry.Roles.Has(vocab.RolePrep) && first.Entry.Prep == slotPrep && len(sent) > 1:
		// the answer may repeat the slot's preposition: "in the sack"
		start = 1
	case nounIntroducer(first) && !first.Entry.Roles.Has(vocab.RoleVerb):
	default:
		return Command{}, false, nil
	}

	cont.takeOrphan()

	cl, next, perr := parseClause(sent, start, slotPrep)
	if perr != nil {
		return Command{}, true, perr
	}
	if next < len(sent) {
		return Command{}, true, &Error{Cond: CondCantUse, Word: strings.ToLower(sent[next].Word)}
	}

	clauses := append(append([]Clause(nil), o.Clauses...), cl)
	cmd, perr := p.finishResolve(snap, cont, o.Verb, o.Pattern, clauses)
	return cmd, true, perr
}

// parseAgain replays the last successful command against the current
// snapshot. The replay re-enters at the syntax matcher, so a changed world
// can re-resolve (or now fail to resolve) the same clauses.
func (p *Parser) parseAgain(snap world.Snapshot, cont *Continuation) (Command, *Error) {
	if cont.Orphaned() {
		cont.takeOrphan()
		return Command{}, &Error{Cond: CondAgainFragment}
	}
	if cont.lastSuccess == nil {
		return Command{}, &Error{Cond: CondNoAgain}
	}
	if cont.lastFailed {
		return Command{}, &Error{Cond: CondAgainMistake}
	}

	r := cont.lastSuccess

	if r.direction != vocab.DirNone {
		return Command{Verb: r.verb, Direction: r.direction}, nil
	}
	if r.isLiteral {
		return Command{Verb: r.verb, Literal: r.literal}, nil
	}

	pat, _, perr := p.syntax.Match(r.verb, r.clauses)
	if perr != nil {
		return Command{}, perr
	}
	res, perr := resolveSlots(snap, cont, r.verb, pat, r.clauses)
	if perr != nil {
		return Command{}, perr
	}

	// the replay re-resolves, so "it" follows what it bound this time
	if len(res.direct) == 1 {
		cont.BindPronoun(res.direct[0].Label)
	}

	// the replay does not overwrite the AGAIN record, so AGAIN chains
	return Command{
		Verb:          r.verb,
		Direct:        res.direct,
		Indirect:      res.indirect,
		ImplicitTakes: res.implicitTakes,
		EmptyAll:      res.emptyAll,
	}, nil
}

// parseOops substitutes the corrected word into the previous attempt at its
// recorded unknown position and reruns the pipeline on the result.
func (p *Parser) parseOops(snap world.Snapshot, cont *Continuation, sent []Token) (Command, *Error) {
	if len(sent) != 2 || sent[1].Literal {
		return Command{}, &Error{Cond: CondOopsFailed}
	}
	if cont.lastAttempt == nil || cont.lastAttempt.unknownIdx < 0 {
		return Command{}, &Error{Cond: CondOopsFailed}
	}

	corrected := append([]string(nil), cont.lastAttempt.words...)
	corrected[cont.lastAttempt.unknownIdx] = sent[1].Word

	// the corrected sentence becomes the new last attempt, so a second OOPS
	// can fix a second typo
	retok := Tokenize(strings.Join(corrected, " "), p.vocab)
	if len(retok) == 0 {
		return Command{}, &Error{Cond: CondOopsFailed}
	}
	return p.parseSentence(snap, cont, retok)
}

// suggestions scans the vocabulary for near spellings of an unknown word,
// closest first.
func (p *Parser) suggestions(word string) []string {
	type candidate struct {
		word string
		dist int
	}

	var cands []candidate
	for _, w := range p.vocab.Words() {
		if d := levenshtein.ComputeDistance(word, w); d <= 2 {
			cands = append(cands, candidate{word: strings.ToLower(w), dist: d})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].word < cands[j].word
	})
	if len(cands) > maxSuggestions {
		cands = cands[:maxSuggestions]
	}

	sugg := make([]string, len(cands))
	for i, c := range cands {
		sugg[i] = c.word
	}
	return sugg
}

// joinTokens rebuilds input text from tokens, for the unparsed remainder of
// a multi-sentence line.
func joinTokens(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Literal {
			parts = append(parts, `"`+t.Text+`"`)
		} else {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, " ")
}

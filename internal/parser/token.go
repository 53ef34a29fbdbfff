package parser

// File token.go has the tokenizer: the stage that turns a raw input line into
// a sequence of vocabulary-resolved tokens. Tokenization never aborts early;
// unknown words are carried through with their positions so that OOPS can
// later point at them.

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tmoresby/clork/internal/vocab"
)

// Token is one input fragment along with its resolved vocabulary entry.
type Token struct {
	// Text is the original fragment as typed, with its original case.
	Text string

	// Word is the canonical upper-case form used for vocabulary lookup.
	Word string

	// Entry is the resolved vocabulary entry. Only meaningful when Known is
	// true and Literal is false.
	Entry vocab.Entry

	// Known is whether the word resolved against the vocabulary, or parsed
	// as a numeric literal.
	Known bool

	// IsNumber is whether the token is a numeric literal. Number holds its
	// value.
	IsNumber bool
	Number   int

	// Literal marks a quoted span, which is carried as a single token and
	// never looked up.
	Literal bool
}

// IsSeparator reports whether the token ends a sentence, allowing multiple
// commands per input line.
func (t Token) IsSeparator() bool {
	if t.Literal {
		return false
	}
	return t.Word == "." || t.Word == "THEN"
}

// Tokenize splits raw input into tokens and resolves each against the
// vocabulary. A quoted span (between double quotes) becomes one literal
// token. The periods and commas that close words are emitted as separator
// and skipped tokens respectively. Tokenize itself never fails; an empty
// result means the line held no words.
func Tokenize(raw string, reg *vocab.Registry) []Token {
	var tokens []Token

	fields := splitInput(raw)
	for _, f := range fields {
		if f.quoted {
			tokens = append(tokens, Token{
				Text:    f.text,
				Word:    f.text,
				Known:   true,
				Literal: true,
			})
			continue
		}

		word := vocab.Normalize(f.text)
		if word == "" {
			continue
		}

		tok := Token{Text: f.text, Word: word}

		if word == "." {
			tok.Known = true
			tokens = append(tokens, tok)
			continue
		}

		if ent, ok := reg.Lookup(word); ok {
			tok.Entry = ent
			tok.Known = true
		} else if n, err := strconv.Atoi(word); err == nil {
			// words not in the vocabulary get one more chance as numbers
			tok.IsNumber = true
			tok.Number = n
			tok.Known = true
		}

		tokens = append(tokens, tok)
	}

	return tokens
}

type inputField struct {
	text   string
	quoted bool
}

// splitInput breaks the raw line on whitespace, detaches sentence-ending
// periods into their own fields, drops commas, and groups double-quoted spans
// into single quoted fields.
func splitInput(raw string) []inputField {
	var fields []inputField
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		word := cur.String()
		cur.Reset()

		// peel sentence-ending periods off the word
		sep := false
		for strings.HasSuffix(word, ".") {
			word = word[:len(word)-1]
			sep = true
		}
		word = strings.Trim(word, ",")
		if word != "" {
			fields = append(fields, inputField{text: word})
		}
		if sep {
			fields = append(fields, inputField{text: "."})
		}
	}

	for _, r := range raw {
		switch {
		case r == '"':
			if inQuote {
				fields = append(fields, inputField{text: cur.String(), quoted: true})
				cur.Reset()
				inQuote = false
			} else {
				flush()
				inQuote = true
			}
		case inQuote:
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	if inQuote {
		// unterminated quote: treat the rest of the line as the literal
		fields = append(fields, inputField{text: cur.String(), quoted: true})
	} else {
		flush()
	}

	return fields
}

// words gives the canonical word of each token, which is what the
// continuation records store for OOPS replays.
func words(tokens []Token) []string {
	ws := make([]string, len(tokens))
	for i := range tokens {
		ws[i] = tokens[i].Word
	}
	return ws
}

// firstUnknown returns the index of the first unknown token, or -1.
func firstUnknown(tokens []Token) int {
	for i := range tokens {
		if !tokens[i].Known {
			return i
		}
	}
	return -1
}

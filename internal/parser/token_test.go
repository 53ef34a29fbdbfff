package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmoresby/clork/internal/vocab"
)

func Test_Tokenize(t *testing.T) {
	reg := vocab.NewDefaultRegistry()
	reg.AddObjectWords("LAMP", []string{"LAMP"}, []string{"BRASS"})

	testCases := []struct {
		name      string
		input     string
		wantWords []string
	}{
		{
			name:      "plain words",
			input:     "take the lamp",
			wantWords: []string{"TAKE", "THE", "LAMP"},
		},
		{
			name:      "sentence period becomes its own token",
			input:     "take lamp. go north",
			wantWords: []string{"TAKE", "LAMP", ".", "GO", "NORTH"},
		},
		{
			name:      "commas are dropped",
			input:     "take lamp, sword",
			wantWords: []string{"TAKE", "LAMP", "SWORD"},
		},
		{
			name:      "extra whitespace is harmless",
			input:     "  take   lamp  ",
			wantWords: []string{"TAKE", "LAMP"},
		},
		{
			name:      "empty line",
			input:     "",
			wantWords: []string{},
		},
		{
			name:      "stacked periods collapse to one separator",
			input:     "take lamp...",
			wantWords: []string{"TAKE", "LAMP", "."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			toks := Tokenize(tc.input, reg)

			got := make([]string, len(toks))
			for i := range toks {
				got[i] = toks[i].Word
			}
			assert.Equal(tc.wantWords, got)
		})
	}
}

func Test_Tokenize_Resolution(t *testing.T) {
	reg := vocab.NewDefaultRegistry()
	reg.AddObjectWords("LAMP", []string{"LAMP"}, []string{"BRASS"})

	t.Run("known word carries its entry", func(t *testing.T) {
		assert := assert.New(t)

		toks := Tokenize("take lamp", reg)

		if !assert.Len(toks, 2) {
			return
		}
		assert.True(toks[0].Known)
		assert.True(toks[0].Entry.Roles.Has(vocab.RoleVerb))
		assert.True(toks[1].Entry.Roles.Has(vocab.RoleNoun))
	})

	t.Run("unknown word keeps position and original text", func(t *testing.T) {
		assert := assert.New(t)

		toks := Tokenize("take Lmap", reg)

		if !assert.Len(toks, 2) {
			return
		}
		assert.False(toks[1].Known)
		assert.Equal("Lmap", toks[1].Text)
		assert.Equal("LMAP", toks[1].Word)
		assert.Equal(1, firstUnknown(toks))
	})

	t.Run("numbers resolve without vocabulary", func(t *testing.T) {
		assert := assert.New(t)

		toks := Tokenize("take 42", reg)

		if !assert.Len(toks, 2) {
			return
		}
		assert.True(toks[1].Known)
		assert.True(toks[1].IsNumber)
		assert.Equal(42, toks[1].Number)
	})

	t.Run("quoted span is one literal token", func(t *testing.T) {
		assert := assert.New(t)

		toks := Tokenize(`say "hello sailor" now`, reg)

		if !assert.Len(toks, 3) {
			return
		}
		assert.True(toks[1].Literal)
		assert.Equal("hello sailor", toks[1].Text)
	})

	t.Run("unterminated quote runs to end of line", func(t *testing.T) {
		assert := assert.New(t)

		toks := Tokenize(`say "hello there`, reg)

		if !assert.Len(toks, 2) {
			return
		}
		assert.True(toks[1].Literal)
		assert.Equal("hello there", toks[1].Text)
	})

	t.Run("then is a separator", func(t *testing.T) {
		assert := assert.New(t)

		toks := Tokenize("take lamp then north", reg)

		if !assert.Len(toks, 4) {
			return
		}
		assert.True(toks[2].IsSeparator())
		assert.False(toks[1].IsSeparator())
	})
}

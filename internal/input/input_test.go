package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_ReadCommand(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "single line",
			input:  "take lamp\n",
			expect: []string{"take lamp"},
		},
		{
			name:   "multiple lines",
			input:  "take lamp\ngo north\n",
			expect: []string{"take lamp", "go north"},
		},
		{
			name:   "whitespace is trimmed",
			input:  "   look  \n",
			expect: []string{"look"},
		},
		{
			name:   "blank line comes through blank",
			input:  "\nlook\n",
			expect: []string{"", "look"},
		},
		{
			name:   "last line without newline",
			input:  "inventory",
			expect: []string{"inventory"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			dr := NewDirectReader(strings.NewReader(tc.input), nil)
			defer dr.Close()

			for _, want := range tc.expect {
				got, err := dr.ReadCommand("> ")
				if !assert.NoError(err) {
					return
				}
				assert.Equal(want, got)
			}

			_, err := dr.ReadCommand("> ")
			assert.ErrorIs(err, io.EOF)
		})
	}
}

func Test_DirectReader_EchoesPrompt(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	dr := NewDirectReader(strings.NewReader("look\n"), &out)

	_, err := dr.ReadCommand("What do you want to take? ")
	assert.NoError(err)
	assert.Equal("What do you want to take? ", out.String())
}

// Package input provides the command line readers the engine pulls player
// input from.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader is a source of player command lines. The prompt is what should be
// shown before reading; it changes between turns when the engine is asking a
// clarifying question ("What do you want to take?") instead of awaiting a
// fresh command.
type Reader interface {
	// ReadCommand blocks until a line of input is available and returns it
	// with surrounding whitespace trimmed. Blank lines are returned as-is;
	// deciding what a blank command means is the engine's job. At end of
	// input the error is io.EOF.
	ReadCommand(prompt string) (string, error)

	// Close releases any resources held by the reader.
	Close() error
}

// DirectReader reads commands from a generic input stream. It does not
// sanitize control or escape sequences, so it is best suited to piped input
// and tests rather than a live terminal.
type DirectReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewDirectReader creates a DirectReader over r. When w is non-nil the prompt
// is echoed to it before each read.
func NewDirectReader(r io.Reader, w io.Writer) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
		w: w,
	}
}

// ReadCommand reads the next line from the stream.
func (dr *DirectReader) ReadCommand(prompt string) (string, error) {
	if dr.w != nil {
		fmt.Fprint(dr.w, prompt)
	}

	line, err := dr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Close is a no-op for DirectReader, present so it satisfies Reader.
func (dr *DirectReader) Close() error {
	return nil
}

// InteractiveReader reads commands from the terminal through a Go
// implementation of GNU Readline. This keeps input clear of typing and
// editing escape sequences and gives the player line editing and command
// history. Use it when stdin is a TTY.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader creates an InteractiveReader and initializes readline.
// The returned reader must have Close called on it before disposal to
// properly tear down readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// ReadCommand reads the next line from the terminal, showing the given
// prompt.
func (ir *InteractiveReader) ReadCommand(prompt string) (string, error) {
	ir.rl.SetPrompt(prompt)

	line, err := ir.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		if err != io.EOF || line == "" {
			return "", err
		}
	}

	return strings.TrimSpace(line), nil
}

// Close tears down readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

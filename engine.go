// Package clork contains a CLI-driven engine that reads player commands,
// parses them, and advances the game state continuously until the player
// quits.
package clork

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dekarrin/rosed"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/cwf"
	"github.com/tmoresby/clork/internal/game"
	"github.com/tmoresby/clork/internal/input"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/vocab"
)

const (
	consoleOutputWidth = 80
	defaultPrompt      = "> "

	// compiledWorldExt is the extension that makes a world file load through
	// the compiled cache instead of the TOML parser.
	compiledWorldExt = ".cwc"
)

// Engine ties together an input reader, an output stream, the parser, and the
// game state, and runs the read-parse-advance loop.
type Engine struct {
	state *game.State
	p     *parser.Parser
	cont  *parser.Continuation

	in  input.Reader
	out *bufio.Writer

	// prompt is what to show before the next read. It changes to a
	// clarifying question while a command is waiting on an orphan answer.
	prompt string

	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. The world is loaded from worldFilePath; a path ending in ".cwc" is
// read as a compiled world, anything else as a TOML bundle.
//
// If nil is given for the input stream, stdin is used. If nil is given for
// the output stream, stdout is used.
func New(inputStream io.Reader, outputStream io.Writer, worldFilePath string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	var wd cwf.WorldData
	var err error
	if filepath.Ext(worldFilePath) == compiledWorldExt {
		wd, err = cwf.ReadCompiled(worldFilePath)
	} else {
		wd, err = cwf.LoadResourceBundle(worldFilePath)
	}
	if err != nil {
		return nil, err
	}

	eng := &Engine{
		p:           parser.NewDefault(),
		cont:        parser.NewContinuation(),
		out:         bufio.NewWriter(outputStream),
		prompt:      defaultPrompt,
		forceDirect: forceDirectInput,
	}
	wd.RegisterVocab(eng.p.Vocabulary())

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		// echo prompts to the output stream, since there is no terminal to
		// show them
		eng.in = input.NewDirectReader(inputStream, eng.out)
	}

	ioDev := game.IODevice{
		Width:  consoleOutputWidth,
		Output: eng.writeOutput,
		Input: func(prompt string) (string, error) {
			return eng.in.ReadCommand(prompt)
		},
	}

	eng.state, err = game.New(wd.Rooms, wd.Start, ioDev)
	if err != nil {
		return nil, fmt.Errorf("initializing game state: %w", err)
	}
	eng.state.Inventory = wd.Inventory
	eng.state.MaxScore = wd.MaxScore

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running game engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the game until the QUIT command or end of input is reached.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Clork\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "=====\n"

	if err := eng.writeOutput(introMsg); err != nil {
		return err
	}
	if err := eng.state.LookAround(); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadCommand(eng.prompt)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("get user command: %w", err)
		}
		if err := eng.handleLine(line); err != nil {
			return err
		}
	}

	return eng.writeOutput("Goodbye\n")
}

// handleLine parses and executes one line of input, including any further
// sentences chained after a separator.
func (eng *Engine) handleLine(line string) error {
	for eng.running {
		result, perr := eng.p.Parse(eng.state.Snapshot(), eng.cont, line)
		if perr != nil {
			return eng.reportParseError(perr)
		}
		eng.prompt = defaultPrompt

		if result.Notice != "" {
			if err := eng.writeOutput(result.Notice + "\n"); err != nil {
				return err
			}
		}

		cmd := result.Command

		// the game proper never handles QUIT; it ends the loop here
		if cmd.Verb == vocab.VerbQuit {
			eng.running = false
			return nil
		}

		if err := eng.state.Advance(cmd); err != nil {
			return eng.writeWrapped(clerrors.GameMessage(err))
		}

		if result.Rest == "" {
			return nil
		}
		line = result.Rest
	}
	return nil
}

// reportParseError shows a parse diagnostic to the player. An incomplete
// command additionally turns its question into the next prompt, so the answer
// completes it.
func (eng *Engine) reportParseError(perr *parser.Error) error {
	if perr.Cond == parser.CondIncomplete {
		eng.prompt = perr.GameMessage() + " "
		return nil
	}

	eng.prompt = defaultPrompt
	return eng.writeWrapped(perr.GameMessage())
}

func (eng *Engine) writeWrapped(msg string) error {
	msg = rosed.Edit(msg).Wrap(consoleOutputWidth).String()
	return eng.writeOutput(msg + "\n")
}

func (eng *Engine) writeOutput(s string, a ...interface{}) error {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

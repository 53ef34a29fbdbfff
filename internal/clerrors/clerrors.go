// Package clerrors has error types shared across the interpreter and game
// layers. Its main job is carrying a player-facing message alongside the
// technical one, so callers can print something in the game's voice without
// string-matching on Error().
package clerrors

import "fmt"

// gameError is an error from attempting to carry out a command: the command
// was understood but names something impossible or not allowed right now.
type gameError struct {
	msg   string
	human string
	wrap  error
}

func (e *gameError) Error() string {
	return e.msg
}

// GameMessage is the text to show in-game for this error.
func (e *gameError) GameMessage() string {
	return e.human
}

func (e *gameError) Unwrap() error {
	return e.wrap
}

// Game returns an error carrying both a player-facing message and a technical
// one. If technical is empty, one is derived from the game message.
func Game(game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got GameError(%q)", game)
	}
	return &gameError{
		msg:   technical,
		human: game,
	}
}

// Gamef returns an error whose player-facing message is built from the format
// string and arguments, with an automatically derived technical message.
func Gamef(format string, a ...interface{}) error {
	return Game(fmt.Sprintf(format, a...), "")
}

// WrapGamef is Gamef but wrapping an underlying error, which errors.Is and
// errors.As will see through Unwrap. The technical message keeps the cause.
func WrapGamef(e error, format string, a ...interface{}) error {
	human := fmt.Sprintf(format, a...)
	return &gameError{
		msg:   fmt.Sprintf("got GameError(%q): %v", human, e),
		human: human,
		wrap:  e,
	}
}

// messager is anything carrying a player-facing message. Both gameError and
// the parser's typed errors satisfy it.
type messager interface {
	GameMessage() string
}

// GameMessage gives the text to show the player for any error: the carried
// game message when the error has one, else Error().
func GameMessage(err error) string {
	if m, ok := err.(messager); ok {
		return m.GameMessage()
	}
	return err.Error()
}

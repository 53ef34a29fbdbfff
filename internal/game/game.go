package game

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/parser"
	"github.com/tmoresby/clork/internal/vocab"
)

var commandHelp = [][2]string{
	{"ATTACK/KILL", "attack something, optionally WITH a held weapon"},
	{"CLOSE", "close a container"},
	{"DROP", "put down something you are holding"},
	{"EXAMINE/X", "look closely at something"},
	{"GO/WALK", "move in a compass direction; a bare direction works too"},
	{"HELP", "show this help"},
	{"INVENTORY/I", "show what you are carrying"},
	{"LIGHT/DOUSE", "turn a light source on or off"},
	{"LOOK/L", "describe the room, or LOOK AT something"},
	{"OPEN", "open a container"},
	{"PUT X IN/ON Y", "put something in a container or on a surface"},
	{"QUIT/BYE", "end the game"},
	{"READ", "read something with writing on it"},
	{"SAY", "say something out loud"},
	{"SCORE", "show your score and move count"},
	{"TAKE/GET", "pick something up; TAKE ALL picks up everything"},
	{"WAIT/Z", "let a turn pass"},
	{"AGAIN/G", "repeat the last command"},
	{"OOPS WORD", "correct the misspelled word in the last command"},
}

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

// Advance executes one resolved command. If the command cannot be carried
// out, the error describes why; any implicit takes that preceded the failure
// have still happened. On success the narration is written to the output
// device.
//
// QUIT is not handled here; ending the session is the calling engine's job.
func (gs *State) Advance(cmd parser.Command) error {
	var output string
	var err error

	// implicit takes happen first and are announced, as in "(first taking
	// the brass lantern)"
	var preamble string
	for _, obj := range cmd.ImplicitTakes {
		if !gs.detach(obj) {
			return clerrors.Gamef("You can't see any %s here!", obj.Name)
		}
		gs.Inventory = append(gs.Inventory, obj)
		preamble += fmt.Sprintf("(first taking the %s)\n", obj.Name)
	}

	if cmd.EmptyAll {
		output = emptyAllMessage(cmd.Verb)
	} else {
		output, err = gs.execute(cmd)
	}
	if err != nil {
		return err
	}

	gs.Moves++

	// preamble lines stay on their own lines; only the narration reflows
	output = preamble + rosed.Edit(output).
		WrapOpts(gs.io.Width, textFormatOptions).
		String()

	return gs.io.Output("\n" + output + "\n\n")
}

// Handler carries out one verb against the game state and returns the
// narration. Handlers are registered per VerbID; game content can replace a
// default or add a verb of its own through RegisterHandler.
type Handler interface {
	Execute(gs *State, cmd parser.Command) (string, error)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(gs *State, cmd parser.Command) (string, error)

// Execute calls f.
func (f HandlerFunc) Execute(gs *State, cmd parser.Command) (string, error) {
	return f(gs, cmd)
}

// RegisterHandler sets the handler for a verb, replacing any default one.
func (gs *State) RegisterHandler(verb vocab.VerbID, h Handler) {
	gs.handlers[verb] = h
}

// defaultHandlers is the built-in verb set every new game starts with.
func defaultHandlers() map[vocab.VerbID]Handler {
	return map[vocab.VerbID]Handler{
		vocab.VerbQuit: HandlerFunc(func(gs *State, cmd parser.Command) (string, error) {
			return "", clerrors.Gamef("I can't QUIT; that's for whatever is running me to do")
		}),
		vocab.VerbWalk:      HandlerFunc((*State).ExecuteCommandGo),
		vocab.VerbTake:      HandlerFunc((*State).ExecuteCommandTake),
		vocab.VerbDrop:      HandlerFunc((*State).ExecuteCommandDrop),
		vocab.VerbPut:       HandlerFunc((*State).ExecuteCommandPut),
		vocab.VerbOpen:      HandlerFunc((*State).ExecuteCommandOpen),
		vocab.VerbClose:     HandlerFunc((*State).ExecuteCommandClose),
		vocab.VerbLook:      HandlerFunc((*State).ExecuteCommandLook),
		vocab.VerbExamine:   HandlerFunc((*State).ExecuteCommandExamine),
		vocab.VerbRead:      HandlerFunc((*State).ExecuteCommandRead),
		vocab.VerbInventory: HandlerFunc((*State).ExecuteCommandInventory),
		vocab.VerbLight:     HandlerFunc((*State).ExecuteCommandLight),
		vocab.VerbDouse:     HandlerFunc((*State).ExecuteCommandDouse),
		vocab.VerbAttack:    HandlerFunc((*State).ExecuteCommandAttack),
		vocab.VerbSay:       HandlerFunc((*State).ExecuteCommandSay),
		vocab.VerbWait:      HandlerFunc((*State).ExecuteCommandWait),
		vocab.VerbScore:     HandlerFunc((*State).ExecuteCommandScore),
		vocab.VerbHelp:      HandlerFunc((*State).ExecuteCommandHelp),
	}
}

func (gs *State) execute(cmd parser.Command) (string, error) {
	h, ok := gs.handlers[cmd.Verb]
	if !ok {
		return "", clerrors.Gamef("I don't know how to do that.")
	}
	return h.Execute(gs, cmd)
}

// emptyAllMessage is the no-op narration for an ALL that expanded to nothing.
func emptyAllMessage(verb vocab.VerbID) string {
	switch verb {
	case vocab.VerbTake:
		return "There's nothing here to take."
	case vocab.VerbDrop:
		return "You aren't carrying anything to drop."
	case vocab.VerbPut:
		return "You have nothing to put anywhere."
	}
	return "There's nothing to do that to."
}

// ExecuteCommandWait executes the WAIT command and returns the output.
func (gs *State) ExecuteCommandWait(cmd parser.Command) (string, error) {
	return "Time passes.", nil
}

// ExecuteCommandSay executes the SAY command and returns the output.
func (gs *State) ExecuteCommandSay(cmd parser.Command) (string, error) {
	return fmt.Sprintf("Okay, %q.", cmd.Literal), nil
}

// ExecuteCommandScore executes the SCORE command and returns the output.
func (gs *State) ExecuteCommandScore(cmd parser.Command) (string, error) {
	out := fmt.Sprintf("Your score is %d", gs.Score)
	if gs.MaxScore > 0 {
		out += fmt.Sprintf(" (of a possible %d)", gs.MaxScore)
	}
	out += fmt.Sprintf(", in %d moves.", gs.Moves)
	return out, nil
}

// ExecuteCommandHelp executes the HELP command and returns the output.
func (gs *State) ExecuteCommandHelp(cmd parser.Command) (string, error) {
	output := rosed.Edit("").WithOptions(
		textFormatOptions.
			WithParagraphSeparator("\n").
			WithNoTrailingLineSeparators(true)).
		Insert(rosed.End, "Here are the commands you can use:\n").
		InsertDefinitionsTable(rosed.End, commandHelp, gs.io.Width).String()

	return output, nil
}

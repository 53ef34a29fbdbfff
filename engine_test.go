package clork

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testWorld = `
format = "clork"
type = "data"

[world]
start = "field"

[[room]]
label = "field"
name = "Open Field"
description = "You are standing in an open field."

[[room.exit]]
direction = "north"
dest = "forest"

[[room]]
label = "forest"
name = "Forest"
description = "Trees in all directions."

[[object]]
label = "lamp"
name = "brass lantern"
nouns = ["lamp", "lantern"]
adjectives = ["brass"]
flags = ["takeable", "lightable"]
location = "field"

[[object]]
label = "mailbox"
name = "small mailbox"
nouns = ["mailbox", "box"]
adjectives = ["small"]
flags = ["container", "fixed", "open"]
location = "field"
`

func runScript(t *testing.T, script string) string {
	t.Helper()

	worldPath := filepath.Join(t.TempDir(), "world.cwf")
	if err := os.WriteFile(worldPath, []byte(testWorld), 0644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	eng, err := New(strings.NewReader(script), &out, worldPath, true)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(); err != nil {
		t.Fatal(err)
	}

	return out.String()
}

func Test_Engine_RunUntilQuit(t *testing.T) {
	assert := assert.New(t)

	transcript := runScript(t, "take lamp\ninventory\nquit\n")

	assert.Contains(transcript, "Open Field")
	assert.Contains(transcript, "Taken.")
	assert.Contains(transcript, "You are carrying:")
	assert.Contains(transcript, "brass lantern")
	assert.Contains(transcript, "Goodbye")
}

func Test_Engine_EndOfInputEndsSession(t *testing.T) {
	assert := assert.New(t)

	transcript := runScript(t, "look\n")

	assert.Contains(transcript, "You are standing in an open field.")
	assert.Contains(transcript, "Goodbye")
}

func Test_Engine_ParseErrorIsReported(t *testing.T) {
	assert := assert.New(t)

	transcript := runScript(t, "take xyzzyq\nquit\n")

	assert.Contains(transcript, `I don't know the word "xyzzyq".`)
}

func Test_Engine_OrphanQuestionBecomesPrompt(t *testing.T) {
	assert := assert.New(t)

	transcript := runScript(t, "take\nlamp\ndrop lamp\nquit\n")

	assert.Contains(transcript, "What do you want to take? ")
	assert.Contains(transcript, "Taken.")
	assert.Contains(transcript, "Dropped.")
}

func Test_Engine_ChainedSentences(t *testing.T) {
	assert := assert.New(t)

	transcript := runScript(t, "take lamp. go north\nquit\n")

	assert.Contains(transcript, "Taken.")
	assert.Contains(transcript, "Forest")
}

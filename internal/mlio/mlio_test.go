package mlio

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmoresby/clork/internal/clerrors"
	"github.com/tmoresby/clork/internal/cwf"
	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

func testWorldLoader() (cwf.WorldData, error) {
	lamp := &world.Object{
		Label:      "LAMP",
		Name:       "brass lantern",
		Nouns:      []string{"LAMP", "LANTERN"},
		Adjectives: []string{"BRASS"},
		Static: world.Flags(0).
			With(world.FlagTakeable).
			With(world.FlagLightable),
	}
	chest := &world.Object{
		Label:  "CHEST",
		Name:   "wooden chest",
		Nouns:  []string{"CHEST"},
		Static: world.Flags(0).With(world.FlagContainer).With(world.FlagFixed),
	}

	field := &world.Room{
		Label:       "FIELD",
		Name:        "Open Field",
		Description: "You are standing in an open field.",
		Exits: []world.Exit{
			{Direction: vocab.DirNorth, Dest: "FOREST"},
		},
		Objects: []*world.Object{lamp, chest},
	}
	forest := &world.Room{
		Label:       "FOREST",
		Name:        "Forest",
		Description: "Trees in all directions.",
		Exits: []world.Exit{
			{Direction: vocab.DirSouth, Dest: "FIELD"},
		},
	}

	return cwf.WorldData{
		Rooms: map[string]*world.Room{"FIELD": field, "FOREST": forest},
		Start: "FIELD",
	}, nil
}

func Test_Session_Step(t *testing.T) {
	testCases := []struct {
		name          string
		actions       []Action
		expectRoom    string
		expectMessage string
		expectInvalid bool
	}{
		{
			name:          "movement",
			actions:       []Action{{Verb: "go", Direction: "north"}},
			expectRoom:    "forest",
			expectMessage: "Forest",
		},
		{
			name:          "take object",
			actions:       []Action{{Verb: "take", Direct: "lamp"}},
			expectRoom:    "field",
			expectMessage: "Taken.",
		},
		{
			name:          "unknown verb is invalid",
			actions:       []Action{{Verb: "defenestrate"}},
			expectRoom:    "field",
			expectMessage: `I don't know the verb "defenestrate".`,
			expectInvalid: true,
		},
		{
			name:          "object not in scope",
			actions:       []Action{{Verb: "take", Direct: "unicorn"}},
			expectRoom:    "field",
			expectMessage: "You can't see any unicorn here!",
			expectInvalid: true,
		},
		{
			name: "bad direction after travel",
			actions: []Action{
				{Verb: "go", Direction: "north"},
				{Verb: "go", Direction: "north"},
			},
			expectRoom:    "forest",
			expectMessage: "You can't go that way.",
			expectInvalid: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s, err := NewSession(testWorldLoader, false)
			if !assert.NoError(err) {
				return
			}

			var obs Observation
			for _, act := range tc.actions {
				obs, _ = s.Step(act)
			}

			assert.Equal(tc.expectRoom, obs.Room.ID)
			assert.Contains(obs.Message, tc.expectMessage)
			assert.Equal(tc.expectInvalid, obs.Invalid)
		})
	}
}

func Test_Session_ValidActions(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSession(testWorldLoader, false)
	if !assert.NoError(err) {
		return
	}

	obs := s.observe("", false, false)
	va := obs.ValidActions

	assert.Contains(va.MetaVerbs, "look")
	assert.Contains(va.Movement.Directions, "north")

	lamp, ok := va.ObjectActions["lamp"]
	if assert.True(ok) {
		assert.Contains(lamp.Verbs, "take")
		assert.Contains(lamp.Verbs, "light")
		assert.NotContains(lamp.Verbs, "drop")
	}
	chest, ok := va.ObjectActions["chest"]
	if assert.True(ok) {
		assert.Contains(chest.Verbs, "open")
		assert.NotContains(chest.Verbs, "take")
	}

	// after taking the lamp, drop replaces take and put-in-chest appears
	// once the chest is open
	s.Step(Action{Verb: "take", Direct: "lamp"})
	s.Step(Action{Verb: "open", Direct: "chest"})
	obs = s.observe("", false, false)

	lamp = obs.ValidActions.ObjectActions["lamp"]
	assert.Contains(lamp.Verbs, "drop")
	assert.NotContains(lamp.Verbs, "take")

	if assert.Len(obs.ValidActions.Inventory, 1) {
		assert.Equal("lamp", obs.ValidActions.Inventory[0].ID)
	}
	assert.Contains(obs.ValidActions.TwoObjectActions, Action{
		Verb: "put", Direct: "lamp", Prep: "in", Indirect: "chest",
	})
}

func Test_NewSession_LoadFailure(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("open world.cwf: no such file")
	_, err := NewSession(func() (cwf.WorldData, error) {
		return cwf.WorldData{}, boom
	}, false)

	if !assert.Error(err) {
		return
	}
	assert.ErrorIs(err, boom)
	assert.Equal("The game world failed to load.", clerrors.GameMessage(err))
}

func Test_Session_Reset(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSession(testWorldLoader, false)
	if !assert.NoError(err) {
		return
	}

	s.Step(Action{Verb: "take", Direct: "lamp"})
	s.Step(Action{Verb: "go", Direction: "north"})

	obs, done := s.Step(Action{Verb: "reset"})
	assert.False(done)
	assert.Equal("field", obs.Room.ID)
	assert.Equal(0, obs.Moves)
	assert.Empty(obs.ValidActions.Inventory)
}

func Test_Session_Run(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSession(testWorldLoader, false)
	if !assert.NoError(err) {
		return
	}

	script := strings.Join([]string{
		`{"verb": "take", "direct-object": "lamp"}`,
		`{"verb": "go", "direction": "north"}`,
		`{"verb": "quit"}`,
	}, "\n") + "\n"

	var out strings.Builder
	if !assert.NoError(s.Run(strings.NewReader(script), &out)) {
		return
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !assert.Len(lines, 4) {
		return
	}

	var obs Observation

	// initial observation precedes any action
	assert.NoError(json.Unmarshal([]byte(lines[0]), &obs))
	assert.Equal("field", obs.Room.ID)
	assert.False(obs.GameOver)

	assert.NoError(json.Unmarshal([]byte(lines[1]), &obs))
	assert.Equal("Taken.", obs.Message)

	assert.NoError(json.Unmarshal([]byte(lines[2]), &obs))
	assert.Equal("forest", obs.Room.ID)

	assert.NoError(json.Unmarshal([]byte(lines[3]), &obs))
	assert.True(obs.GameOver)
}

func Test_Session_Rewards(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSession(testWorldLoader, true)
	if !assert.NoError(err) {
		return
	}

	// entering an unvisited room earns the novelty reward
	obs, _ := s.Step(Action{Verb: "go", Direction: "north"})
	if assert.NotNil(obs.CompositeReward) {
		assert.InDelta(5.5, *obs.CompositeReward, 0.001) // novel room + novel message
	}

	// going back earns only message novelty at most
	obs, _ = s.Step(Action{Verb: "go", Direction: "south"})
	if assert.NotNil(obs.CompositeReward) {
		assert.Less(*obs.CompositeReward, 5.0)
	}

	// picking something up earns the object-taken reward
	obs, _ = s.Step(Action{Verb: "take", Direct: "lamp"})
	assert.Equal(float64(1), obs.Rewards["object-taken"])

	// invalid actions are penalized
	obs, _ = s.Step(Action{Verb: "defenestrate"})
	if assert.NotNil(obs.CompositeReward) {
		assert.Negative(*obs.CompositeReward)
	}

	assert.Equal(4, obs.SessionStats["steps"])
}

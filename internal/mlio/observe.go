package mlio

import (
	"strings"

	"github.com/tmoresby/clork/internal/world"
)

// Observation is one line of output to the agent: the visible game state
// after an action, plus the set of actions that make sense to try next.
type Observation struct {
	Room     RoomInfo `json:"room"`
	Score    int      `json:"score"`
	Moves    int      `json:"moves"`
	Message  string   `json:"message"`
	Invalid  bool     `json:"invalid-action,omitempty"`
	GameOver bool     `json:"game-over"`

	ValidActions ValidActions `json:"valid-actions"`

	Rewards         map[string]float64 `json:"rewards,omitempty"`
	CompositeReward *float64           `json:"composite-reward,omitempty"`
	SessionStats    map[string]any     `json:"session-stats,omitempty"`
}

// RoomInfo identifies the room the player is in.
type RoomInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValidActions enumerates what an agent can do from the current state.
type ValidActions struct {
	MetaVerbs        []string              `json:"meta-verbs"`
	Movement         Movement              `json:"movement"`
	ObjectActions    map[string]ObjectInfo `json:"object-actions"`
	TwoObjectActions []Action              `json:"two-object-actions"`
	Inventory        []ItemInfo            `json:"inventory"`
}

// Movement lists the directions with an exit from the current room.
type Movement struct {
	Directions []string `json:"directions"`
}

// ObjectInfo describes one in-scope object and the verbs that apply to it.
type ObjectInfo struct {
	Name  string   `json:"name"`
	Verbs []string `json:"verbs"`
}

// ItemInfo is one carried item.
type ItemInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Session) observe(message string, invalid, gameOver bool) Observation {
	obs := Observation{
		Room: RoomInfo{
			ID:   strings.ToLower(s.state.CurrentRoom.Label),
			Name: s.state.CurrentRoom.Name,
		},
		Score:        s.state.Score,
		Moves:        s.state.Moves,
		Message:      message,
		Invalid:      invalid,
		GameOver:     gameOver,
		ValidActions: s.validActions(),
	}

	if s.rewards != nil {
		obs.Rewards = s.rewards.breakdown()
		composite := s.rewards.composite()
		obs.CompositeReward = &composite
		obs.SessionStats = s.rewards.stats()
	}

	return obs
}

func (s *Session) validActions() ValidActions {
	va := ValidActions{
		MetaVerbs:     []string{"look", "inventory", "wait", "score", "quit"},
		ObjectActions: map[string]ObjectInfo{},
	}

	for _, e := range s.state.CurrentRoom.Exits {
		if e.Kind == world.ExitBlocked {
			continue
		}
		va.Movement.Directions = append(va.Movement.Directions, strings.ToLower(e.Direction.String()))
	}

	snap := s.state.Snapshot()
	inScope := snap.InScope(world.Anywhere)

	for _, o := range inScope {
		id := strings.ToLower(o.Label)
		held := snap.Holds(o.Label)

		verbs := []string{"examine"}
		if held {
			verbs = append(verbs, "drop")
		} else if o.Has(world.FlagTakeable) && !o.Has(world.FlagFixed) {
			verbs = append(verbs, "take")
		}
		if o.Has(world.FlagContainer) {
			if o.Has(world.FlagOpen) {
				verbs = append(verbs, "close")
			} else {
				verbs = append(verbs, "open")
			}
		}
		if o.Has(world.FlagLightable) {
			if o.Has(world.FlagLit) {
				verbs = append(verbs, "douse")
			} else {
				verbs = append(verbs, "light")
			}
		}
		if o.Has(world.FlagReadable) {
			verbs = append(verbs, "read")
		}

		va.ObjectActions[id] = ObjectInfo{Name: o.Name, Verbs: verbs}
	}

	for _, heldObj := range s.state.Inventory {
		for _, target := range inScope {
			if target.Label == heldObj.Label || !target.Accessible() {
				continue
			}
			prep := "in"
			if target.Has(world.FlagSurface) {
				prep = "on"
			} else if !target.Has(world.FlagContainer) {
				continue
			}
			va.TwoObjectActions = append(va.TwoObjectActions, Action{
				Verb:     "put",
				Direct:   strings.ToLower(heldObj.Label),
				Prep:     prep,
				Indirect: strings.ToLower(target.Label),
			})
		}
	}

	for _, o := range s.state.Inventory {
		va.Inventory = append(va.Inventory, ItemInfo{
			ID:   strings.ToLower(o.Label),
			Name: o.Name,
		})
	}

	return va
}

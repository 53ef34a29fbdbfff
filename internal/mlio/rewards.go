package mlio

import (
	"github.com/tmoresby/clork/internal/game"
	"github.com/tmoresby/clork/internal/world"
)

// defaultRewardWeights are the shaping weights applied when a session runs in
// rewards mode and the agent supplies no overrides.
var defaultRewardWeights = map[string]float64{
	"score-delta":      1.0,
	"novel-room":       5.0,
	"novel-message":    0.5,
	"object-taken":     2.0,
	"container-opened": 1.5,
	"death":            -10.0,
	"invalid-action":   -0.1,
}

// rewardTracker turns state deltas into shaped rewards for training. It keeps
// per-session novelty sets so revisiting a room or re-reading a message earns
// nothing.
type rewardTracker struct {
	weights map[string]float64

	seenRooms    map[string]bool
	seenMessages map[string]bool

	lastScore     int
	lastCarried   int
	lastOpenCount int

	last  map[string]float64
	steps int
	total float64
}

func newRewardTracker(weights map[string]float64) *rewardTracker {
	w := map[string]float64{}
	for k, v := range defaultRewardWeights {
		w[k] = v
	}
	for k, v := range weights {
		w[k] = v
	}
	return &rewardTracker{
		weights:      w,
		seenRooms:    map[string]bool{},
		seenMessages: map[string]bool{},
		last:         map[string]float64{},
	}
}

func (rt *rewardTracker) reset() {
	rt.seenRooms = map[string]bool{}
	rt.seenMessages = map[string]bool{}
	rt.lastScore = 0
	rt.lastCarried = 0
	rt.lastOpenCount = 0
	rt.last = map[string]float64{}
	rt.steps = 0
	rt.total = 0
}

// observe updates the tracker after one action. The first call (from reset)
// primes the novelty sets and baselines without recording a step.
func (rt *rewardTracker) observe(gs *game.State, message string, invalid bool) {
	priming := rt.steps == 0 && len(rt.seenRooms) == 0

	rewards := map[string]float64{}

	if invalid {
		rewards["invalid-action"] = 1
	}

	if delta := gs.Score - rt.lastScore; delta != 0 {
		rewards["score-delta"] = float64(delta)
	}
	rt.lastScore = gs.Score

	if !rt.seenRooms[gs.CurrentRoom.Label] {
		rt.seenRooms[gs.CurrentRoom.Label] = true
		if !priming {
			rewards["novel-room"] = 1
		}
	}

	// error messages never count as novel, so flailing is not rewarded
	if message != "" && !invalid && !rt.seenMessages[message] {
		rt.seenMessages[message] = true
		if !priming {
			rewards["novel-message"] = 1
		}
	}

	carried := len(gs.Inventory)
	if carried > rt.lastCarried {
		rewards["object-taken"] = float64(carried - rt.lastCarried)
	}
	rt.lastCarried = carried

	open := countOpen(gs)
	if open > rt.lastOpenCount {
		rewards["container-opened"] = float64(open - rt.lastOpenCount)
	}
	rt.lastOpenCount = open

	if priming {
		rt.last = map[string]float64{}
		return
	}

	rt.last = rewards
	rt.steps++
	rt.total += rt.compositeOf(rewards)
}

func countOpen(gs *game.State) int {
	count := 0
	var walk func(objs []*world.Object)
	walk = func(objs []*world.Object) {
		for _, o := range objs {
			if o.Has(world.FlagContainer) && o.Has(world.FlagOpen) {
				count++
			}
			walk(o.Contents)
		}
	}
	for _, r := range gs.World {
		walk(r.Objects)
	}
	walk(gs.Inventory)
	return count
}

// breakdown is the unweighted reward events of the last step.
func (rt *rewardTracker) breakdown() map[string]float64 {
	return rt.last
}

// composite is the weighted sum of the last step's rewards.
func (rt *rewardTracker) composite() float64 {
	return rt.compositeOf(rt.last)
}

func (rt *rewardTracker) compositeOf(rewards map[string]float64) float64 {
	var sum float64
	for k, v := range rewards {
		sum += v * rt.weights[k]
	}
	return sum
}

func (rt *rewardTracker) stats() map[string]any {
	return map[string]any{
		"steps":         rt.steps,
		"rooms-visited": len(rt.seenRooms),
		"messages-seen": len(rt.seenMessages),
		"total-reward":  rt.total,
	}
}

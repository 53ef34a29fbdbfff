package clerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GameMessage(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "game error renders its player message",
			err:  Game("You can't do that.", "refused by handler"),
			want: "You can't do that.",
		},
		{
			name: "gamef formats",
			err:  Gamef("You can't see any %s here!", "unicorn"),
			want: "You can't see any unicorn here!",
		},
		{
			name: "plain error falls back to Error()",
			err:  errors.New("file missing"),
			want: "file missing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.want, GameMessage(tc.err))
		})
	}
}

func Test_WrapGamef(t *testing.T) {
	assert := assert.New(t)

	cause := fmt.Errorf("open world.cwf: no such file")
	err := WrapGamef(cause, "The game world failed to load.")

	assert.Equal("The game world failed to load.", GameMessage(err))
	assert.ErrorIs(err, cause)
	assert.Contains(err.Error(), "no such file")
}

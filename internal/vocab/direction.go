package vocab

import "fmt"

// Direction is a direction of travel. Directions form their own closed
// grammatical category; they are not nouns.
type Direction int

const (
	// DirNone is the zero Direction and means "no direction given".
	DirNone Direction = iota

	DirNorth
	DirSouth
	DirEast
	DirWest
	DirNortheast
	DirNorthwest
	DirSoutheast
	DirSouthwest
	DirUp
	DirDown
	DirIn
	DirOut
)

var directionNames = map[Direction]string{
	DirNone:      "NONE",
	DirNorth:     "NORTH",
	DirSouth:     "SOUTH",
	DirEast:      "EAST",
	DirWest:      "WEST",
	DirNortheast: "NORTHEAST",
	DirNorthwest: "NORTHWEST",
	DirSoutheast: "SOUTHEAST",
	DirSouthwest: "SOUTHWEST",
	DirUp:        "UP",
	DirDown:      "DOWN",
	DirIn:        "IN",
	DirOut:       "OUT",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// DirectionsByString maps upper-case direction names (including shorthand
// forms) to their Direction. Used by world-definition loading.
var DirectionsByString = map[string]Direction{
	"NORTH":     DirNorth,
	"N":         DirNorth,
	"SOUTH":     DirSouth,
	"S":         DirSouth,
	"EAST":      DirEast,
	"E":         DirEast,
	"WEST":      DirWest,
	"W":         DirWest,
	"NORTHEAST": DirNortheast,
	"NE":        DirNortheast,
	"NORTHWEST": DirNorthwest,
	"NW":        DirNorthwest,
	"SOUTHEAST": DirSoutheast,
	"SE":        DirSoutheast,
	"SOUTHWEST": DirSouthwest,
	"SW":        DirSouthwest,
	"UP":        DirUp,
	"U":         DirUp,
	"DOWN":      DirDown,
	"D":         DirDown,
	"IN":        DirIn,
	"OUT":       DirOut,
}

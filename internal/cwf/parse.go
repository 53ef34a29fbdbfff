package cwf

import (
	"fmt"
	"strings"

	"github.com/tmoresby/clork/internal/world"
)

// File parse.go converts unmarshaled file data to engine types and validates
// it. Validation is done in two passes: first every label is collected, then
// every reference is checked against the collected labels. This way a file can
// refer to symbols defined later in the file (or in a different file of the
// same bundle).

// playerLocation is the special object location meaning the starting
// inventory.
const playerLocation = "@PLAYER"

func parseWorldData(tlw topLevelWorldData) (WorldData, error) {
	wd := WorldData{
		Rooms:    make(map[string]*world.Room),
		Start:    strings.ToUpper(tlw.World.Start),
		MaxScore: tlw.World.MaxScore,
	}

	// pass 1: collect every label
	roomLabels := map[string]bool{}
	for _, mr := range tlw.Rooms {
		label := strings.ToUpper(mr.Label)
		if label == "" {
			return wd, fmt.Errorf("room %q: label must not be empty", mr.Name)
		}
		if roomLabels[label] {
			return wd, fmt.Errorf("room label %q is defined twice", label)
		}
		roomLabels[label] = true
	}

	objects := map[string]*world.Object{}
	objLocations := map[string]string{}
	var objOrder []string
	for _, mo := range tlw.Objects {
		o, err := mo.toObject()
		if err != nil {
			return wd, err
		}
		if o.Label == "" {
			return wd, fmt.Errorf("object %q: label must not be empty", mo.Name)
		}
		if _, ok := objects[o.Label]; ok {
			return wd, fmt.Errorf("object label %q is defined twice", o.Label)
		}
		if len(o.Nouns) == 0 {
			return wd, fmt.Errorf("object %q: must have at least one noun", o.Label)
		}
		objects[o.Label] = o
		objLocations[o.Label] = strings.ToUpper(mo.Location)
		objOrder = append(objOrder, o.Label)
	}

	// pass 2: check every reference
	if wd.Start == "" {
		return wd, fmt.Errorf("world: start room must be given")
	}
	if !roomLabels[wd.Start] {
		return wd, fmt.Errorf("world: start room %q does not exist", wd.Start)
	}

	for _, mr := range tlw.Rooms {
		r, err := mr.toRoom()
		if err != nil {
			return wd, err
		}
		for _, e := range r.Exits {
			if e.Kind != world.ExitBlocked && !roomLabels[e.Dest] {
				return wd, fmt.Errorf("room %q: exit %s leads to undefined room %q", r.Label, e.Direction, e.Dest)
			}
			if e.Kind == world.ExitConditional {
				if e.GuardLabel == "" {
					return wd, fmt.Errorf("room %q: conditional exit %s has no guard object", r.Label, e.Direction)
				}
				if _, ok := objects[e.GuardLabel]; !ok {
					return wd, fmt.Errorf("room %q: exit %s guard %q does not exist", r.Label, e.Direction, e.GuardLabel)
				}
			}
		}
		wd.Rooms[r.Label] = r
	}

	// pass 3: attach objects to their locations, in definition order so
	// that room and container enumeration order matches the file.
	for _, label := range objOrder {
		o := objects[label]
		loc := objLocations[label]

		switch {
		case loc == playerLocation:
			wd.Inventory = append(wd.Inventory, o)
		case wd.Rooms[loc] != nil:
			r := wd.Rooms[loc]
			r.Objects = append(r.Objects, o)
		case objects[loc] != nil:
			holder := objects[loc]
			if !holder.Has(world.FlagContainer) && !holder.Has(world.FlagSurface) {
				return wd, fmt.Errorf("object %q: location %q is not a container or surface", label, loc)
			}
			if holder.Label == o.Label {
				return wd, fmt.Errorf("object %q: cannot be inside itself", label)
			}
			holder.Contents = append(holder.Contents, o)
		default:
			return wd, fmt.Errorf("object %q: location %q does not exist", label, loc)
		}
	}

	// an object inside a container must not (transitively) contain its own
	// holder
	for _, label := range objOrder {
		if err := checkContainment(objects[label], map[string]bool{}); err != nil {
			return wd, err
		}
	}

	return wd, nil
}

func checkContainment(o *world.Object, seen map[string]bool) error {
	if seen[o.Label] {
		return fmt.Errorf("object %q: containment cycle", o.Label)
	}
	seen[o.Label] = true
	for _, c := range o.Contents {
		if err := checkContainment(c, seen); err != nil {
			return err
		}
	}
	delete(seen, o.Label)
	return nil
}

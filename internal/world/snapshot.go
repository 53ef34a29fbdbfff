package world

// File snapshot.go has the read-only visibility view that a single parse
// resolves object references against.

// Where is a bitmask of the places an object can be relative to the actor.
// Syntax patterns constrain each noun slot to a subset of these.
type Where uint8

const (
	// InHands means held directly by the actor.
	InHands Where = 1 << iota

	// InCarried means inside an accessible container the actor is holding.
	InCarried

	// OnFloor means on the floor of the actor's current room.
	OnFloor

	// InRoomContainer means inside an accessible container, or on a surface,
	// in the actor's current room.
	InRoomContainer
)

// Anywhere is the union of all locations.
const Anywhere = InHands | InCarried | OnFloor | InRoomContainer

// Has returns whether the mask includes the given location.
func (w Where) Has(loc Where) bool {
	return w&loc != 0
}

// Snapshot is the world-visibility view for one parse: the actor's held
// objects and the current room, both read-only for the duration of the parse.
type Snapshot struct {
	// Held is what the actor is carrying, in carry order.
	Held []*Object

	// Room is the actor's current room.
	Room *Room
}

// scopeEntry pairs an in-scope object with where it was found.
type scopeEntry struct {
	obj *Object
	loc Where
}

// enumerate walks the full scope in stable order: held objects, contents of
// accessible carried containers, the room floor, then contents of accessible
// room containers and surfaces. The order is deterministic for an unchanged
// world, which ALL expansion and disambiguation rely on.
func (s Snapshot) enumerate() []scopeEntry {
	var entries []scopeEntry

	for _, o := range s.Held {
		entries = append(entries, scopeEntry{obj: o, loc: InHands})
	}
	for _, o := range s.Held {
		if !o.Accessible() {
			continue
		}
		for _, inner := range o.Contents {
			entries = append(entries, scopeEntry{obj: inner, loc: InCarried})
		}
	}
	if s.Room != nil {
		for _, o := range s.Room.Objects {
			entries = append(entries, scopeEntry{obj: o, loc: OnFloor})
		}
		for _, o := range s.Room.Objects {
			if !o.Accessible() {
				continue
			}
			for _, inner := range o.Contents {
				entries = append(entries, scopeEntry{obj: inner, loc: InRoomContainer})
			}
		}
	}

	return entries
}

// InScope returns every object in a location matching the given mask, in
// stable enumeration order. Objects flagged invisible are never returned.
func (s Snapshot) InScope(where Where) []*Object {
	var objs []*Object
	for _, ent := range s.enumerate() {
		if !where.Has(ent.loc) {
			continue
		}
		if ent.obj.Has(FlagInvisible) {
			continue
		}
		objs = append(objs, ent.obj)
	}
	return objs
}

// WhereOf finds where the object with the given label currently is. The
// second return value is false if it is not in scope at all.
func (s Snapshot) WhereOf(label string) (Where, bool) {
	for _, ent := range s.enumerate() {
		if ent.obj.Label == label {
			return ent.loc, true
		}
	}
	return 0, false
}

// Holds returns whether the actor is directly holding the object with the
// given label.
func (s Snapshot) Holds(label string) bool {
	for _, o := range s.Held {
		if o.Label == label {
			return true
		}
	}
	return false
}

// Find returns the in-scope object with the given label, or nil.
func (s Snapshot) Find(label string) *Object {
	for _, ent := range s.enumerate() {
		if ent.obj.Label == label {
			return ent.obj
		}
	}
	return nil
}

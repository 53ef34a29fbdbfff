package cwf

import (
	"fmt"
	"os"
	"sort"

	"github.com/dekarrin/rezi"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// File cache.go implements a compiled binary form of a world. Parsing and
// validating a large TOML bundle on every launch is wasteful; WriteCompiled
// saves the already-validated result and ReadCompiled restores it without
// re-running validation.

// compiledMagic marks a file as a compiled world, and compiledVersion is
// bumped whenever the layout changes so stale caches are rejected instead of
// misread.
const (
	compiledMagic   = "CLORKC"
	compiledVersion = 1
)

// WriteCompiled saves an already-validated world to path in compiled form.
func WriteCompiled(path string, wd WorldData) error {
	data := rezi.EncString(compiledMagic)
	data = append(data, rezi.EncInt(compiledVersion)...)
	data = append(data, rezi.EncBinary(binaryWorldData{&wd})...)

	return os.WriteFile(path, data, 0644)
}

// ReadCompiled restores a world previously saved with WriteCompiled.
func ReadCompiled(path string) (WorldData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldData{}, err
	}

	magic, n, err := rezi.DecString(data)
	if err != nil {
		return WorldData{}, fmt.Errorf("%s: reading header: %w", path, err)
	}
	if magic != compiledMagic {
		return WorldData{}, fmt.Errorf("%s: not a compiled world file", path)
	}
	data = data[n:]

	ver, n, err := rezi.DecInt(data)
	if err != nil {
		return WorldData{}, fmt.Errorf("%s: reading version: %w", path, err)
	}
	if ver != compiledVersion {
		return WorldData{}, fmt.Errorf("%s: compiled with version %d, need %d", path, ver, compiledVersion)
	}
	data = data[n:]

	bwd := binaryWorldData{&WorldData{}}
	if _, err := rezi.DecBinary(data, bwd); err != nil {
		return WorldData{}, fmt.Errorf("%s: %w", path, err)
	}

	return *bwd.wd, nil
}

// binaryWorldData adapts WorldData to rezi binary encoding.
type binaryWorldData struct {
	wd *WorldData
}

func (b binaryWorldData) MarshalBinary() ([]byte, error) {
	data := rezi.EncString(b.wd.Start)
	data = append(data, rezi.EncInt(b.wd.MaxScore)...)

	// rooms in sorted-label order so the output is deterministic
	labels := make([]string, 0, len(b.wd.Rooms))
	for l := range b.wd.Rooms {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	data = append(data, rezi.EncInt(len(labels))...)
	for _, l := range labels {
		data = append(data, rezi.EncBinary(binaryRoom{b.wd.Rooms[l]})...)
	}

	data = append(data, rezi.EncInt(len(b.wd.Inventory))...)
	for _, o := range b.wd.Inventory {
		data = append(data, rezi.EncBinary(binaryObject{o})...)
	}

	return data, nil
}

func (b binaryWorldData) UnmarshalBinary(data []byte) error {
	var n, offset int
	var err error

	b.wd.Start, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	offset += n

	b.wd.MaxScore, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("max score: %w", err)
	}
	offset += n

	var roomCount int
	roomCount, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("room count: %w", err)
	}
	offset += n

	b.wd.Rooms = make(map[string]*world.Room, roomCount)
	for i := 0; i < roomCount; i++ {
		br := binaryRoom{&world.Room{}}
		n, err = rezi.DecBinary(data[offset:], br)
		if err != nil {
			return fmt.Errorf("room %d: %w", i, err)
		}
		offset += n
		b.wd.Rooms[br.r.Label] = br.r
	}

	var invCount int
	invCount, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("inventory count: %w", err)
	}
	offset += n

	for i := 0; i < invCount; i++ {
		bo := binaryObject{&world.Object{}}
		n, err = rezi.DecBinary(data[offset:], bo)
		if err != nil {
			return fmt.Errorf("inventory object %d: %w", i, err)
		}
		offset += n
		b.wd.Inventory = append(b.wd.Inventory, bo.o)
	}

	return nil
}

type binaryRoom struct {
	r *world.Room
}

func (b binaryRoom) MarshalBinary() ([]byte, error) {
	data := rezi.EncString(b.r.Label)
	data = append(data, rezi.EncString(b.r.Name)...)
	data = append(data, rezi.EncString(b.r.Description)...)

	data = append(data, rezi.EncInt(len(b.r.Exits))...)
	for i := range b.r.Exits {
		data = append(data, rezi.EncBinary(binaryExit{&b.r.Exits[i]})...)
	}

	data = append(data, rezi.EncInt(len(b.r.Objects))...)
	for _, o := range b.r.Objects {
		data = append(data, rezi.EncBinary(binaryObject{o})...)
	}

	return data, nil
}

func (b binaryRoom) UnmarshalBinary(data []byte) error {
	var n, offset int
	var err error

	b.r.Label, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("label: %w", err)
	}
	offset += n

	b.r.Name, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	offset += n

	b.r.Description, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("description: %w", err)
	}
	offset += n

	var exitCount int
	exitCount, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("exit count: %w", err)
	}
	offset += n

	for i := 0; i < exitCount; i++ {
		be := binaryExit{&world.Exit{}}
		n, err = rezi.DecBinary(data[offset:], be)
		if err != nil {
			return fmt.Errorf("exit %d: %w", i, err)
		}
		offset += n
		b.r.Exits = append(b.r.Exits, *be.e)
	}

	var objCount int
	objCount, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("object count: %w", err)
	}
	offset += n

	for i := 0; i < objCount; i++ {
		bo := binaryObject{&world.Object{}}
		n, err = rezi.DecBinary(data[offset:], bo)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		offset += n
		b.r.Objects = append(b.r.Objects, bo.o)
	}

	return nil
}

type binaryExit struct {
	e *world.Exit
}

func (b binaryExit) MarshalBinary() ([]byte, error) {
	data := rezi.EncInt(int(b.e.Direction))
	data = append(data, rezi.EncInt(int(b.e.Kind))...)
	data = append(data, rezi.EncString(b.e.Dest)...)
	data = append(data, rezi.EncString(b.e.GuardLabel)...)
	data = append(data, rezi.EncInt(int(b.e.GuardFlag))...)
	data = append(data, rezi.EncString(b.e.FailMessage)...)
	return data, nil
}

func (b binaryExit) UnmarshalBinary(data []byte) error {
	var n, offset, iv int
	var err error

	iv, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	b.e.Direction = vocab.Direction(iv)
	offset += n

	iv, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("kind: %w", err)
	}
	b.e.Kind = world.ExitKind(iv)
	offset += n

	b.e.Dest, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("dest: %w", err)
	}
	offset += n

	b.e.GuardLabel, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("guard: %w", err)
	}
	offset += n

	iv, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("guard flag: %w", err)
	}
	b.e.GuardFlag = world.Flag(iv)
	offset += n

	b.e.FailMessage, _, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("fail message: %w", err)
	}

	return nil
}

type binaryObject struct {
	o *world.Object
}

func (b binaryObject) MarshalBinary() ([]byte, error) {
	data := rezi.EncString(b.o.Label)
	data = append(data, rezi.EncString(b.o.Name)...)
	data = append(data, rezi.EncString(b.o.Description)...)
	data = append(data, rezi.EncString(b.o.Text)...)
	data = append(data, rezi.EncSliceString(b.o.Nouns)...)
	data = append(data, rezi.EncSliceString(b.o.Adjectives)...)
	data = append(data, rezi.EncInt(int(b.o.Static))...)

	data = append(data, rezi.EncInt(len(b.o.Contents))...)
	for _, c := range b.o.Contents {
		data = append(data, rezi.EncBinary(binaryObject{c})...)
	}

	return data, nil
}

func (b binaryObject) UnmarshalBinary(data []byte) error {
	var n, offset int
	var err error

	b.o.Label, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("label: %w", err)
	}
	offset += n

	b.o.Name, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	offset += n

	b.o.Description, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("description: %w", err)
	}
	offset += n

	b.o.Text, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	offset += n

	b.o.Nouns, n, err = rezi.DecSliceString(data[offset:])
	if err != nil {
		return fmt.Errorf("nouns: %w", err)
	}
	offset += n

	b.o.Adjectives, n, err = rezi.DecSliceString(data[offset:])
	if err != nil {
		return fmt.Errorf("adjectives: %w", err)
	}
	offset += n

	var iv int
	iv, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	b.o.Static = world.Flags(iv)
	offset += n

	var contentCount int
	contentCount, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("content count: %w", err)
	}
	offset += n

	for i := 0; i < contentCount; i++ {
		bc := binaryObject{&world.Object{}}
		n, err = rezi.DecBinary(data[offset:], bc)
		if err != nil {
			return fmt.Errorf("content %d: %w", i, err)
		}
		offset += n
		b.o.Contents = append(b.o.Contents, bc.o)
	}

	return nil
}

// Package cwf has functions for loading game data using the CWF (Clork World
// File) game data format, a TOML-based format that defines the rooms, exits,
// and objects of a game world for the engine to run.
package cwf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmoresby/clork/internal/vocab"
	"github.com/tmoresby/clork/internal/world"
)

// MaxManifestRecursionDepth is how many manifests deep file inclusion may go.
const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is returned when a manifest file is read successfully
	// but specifies no files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is returned when manifests nest deeper than
	// MaxManifestRecursionDepth.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is returned when a chain of manifests refers
	// back to a file already being included.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest lists further world files to load, relative to the manifest file.
type Manifest struct {
	Files []string
}

// WorldData is a fully loaded and validated game world.
type WorldData struct {
	// Rooms is every room in the world by label, pre-loaded with objects and
	// ready for immediate use.
	Rooms map[string]*world.Room

	// Start is the label of the room the player starts in.
	Start string

	// Inventory is what the player begins the game holding, in definition
	// order.
	Inventory []*world.Object

	// MaxScore is the total attainable score.
	MaxScore int
}

// RegisterVocab adds the noun and adjective words of every object in the
// world (including objects nested inside containers) to the registry.
func (wd WorldData) RegisterVocab(reg *vocab.Registry) {
	var walk func(objs []*world.Object)
	walk = func(objs []*world.Object) {
		for _, o := range objs {
			reg.AddObjectWords(o.Label, o.Nouns, o.Adjectives)
			walk(o.Contents)
		}
	}
	for _, r := range wd.Rooms {
		walk(r.Objects)
	}
	walk(wd.Inventory)
}

// FileInfo is the header every CWF file carries, identifying the format and
// whether the file is world data or a manifest.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// LoadResourceBundle loads a world from the given CWF file. The file's type
// is auto-detected; a manifest pulls in the files it lists (recursively, when
// they are themselves manifests) and all data is combined into one world
// before validation.
func LoadResourceBundle(path string) (WorldData, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return WorldData{}, err
	}
	return parseWorldData(unmarshaled)
}

// LoadManifestFile loads manifest data from a CWF file.
func LoadManifestFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	unmarshaled, err := unmarshalManifest(data)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{Files: unmarshaled.Files}, nil
}

// LoadWorldDataFile loads a world from a single world definition file.
func LoadWorldDataFile(path string) (WorldData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldData{}, err
	}

	unmarshaled, err := unmarshalWorldData(data)
	if err != nil {
		return WorldData{}, err
	}
	return parseWorldData(unmarshaled)
}

// recursiveUnmarshalResource reads the file at path as either world data or a
// manifest, following manifest inclusion. seen carries the absolute paths of
// files already on the inclusion chain.
func recursiveUnmarshalResource(path string, seen []string) (topLevelWorldData, error) {
	var combined topLevelWorldData

	if len(seen) > MaxManifestRecursionDepth {
		return combined, ErrManifestStackOverflow
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return combined, fmt.Errorf("%s: %w", path, err)
	}
	for _, s := range seen {
		if s == abs {
			return combined, fmt.Errorf("%s: %w", path, ErrManifestCircularRef)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return combined, err
	}

	info, err := scanFileInfo(data)
	if err != nil {
		return combined, fmt.Errorf("%s: %w", path, err)
	}

	switch info.Type {
	case "manifest":
		manif, err := unmarshalManifest(data)
		if err != nil {
			return combined, fmt.Errorf("%s: %w", path, err)
		}
		if len(manif.Files) == 0 {
			return combined, fmt.Errorf("%s: %w", path, ErrManifestEmpty)
		}

		dir := filepath.Dir(abs)
		for _, f := range manif.Files {
			sub, err := recursiveUnmarshalResource(filepath.Join(dir, f), append(seen, abs))
			if err != nil {
				return combined, err
			}
			combined = mergeWorldData(combined, sub)
		}
		return combined, nil
	case "data":
		return unmarshalWorldData(data)
	default:
		return combined, fmt.Errorf("%s: unknown file type %q", path, info.Type)
	}
}

// mergeWorldData combines two partial world definitions. The world table of
// the later file wins when both define one.
func mergeWorldData(a, b topLevelWorldData) topLevelWorldData {
	a.Rooms = append(a.Rooms, b.Rooms...)
	a.Objects = append(a.Objects, b.Objects...)
	if b.World.Start != "" {
		a.World = b.World
	}
	return a
}

package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile values stored in a layer.
const (
	TileEmpty  = 0
	TileSolid  = 1
	TileHazard = 2
)

// Entity types placed by the level.
const (
	EntityDashRefill = "dash_refill"
	EntityDashTarget = "dash_target"
	EntityPlatform   = "platform"
)

// Level is a tile map. Layers are row-major with row 0 at the top; one tile is one
// world unit.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x"`
	SpawnY int `json:"spawn_y"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity is a non-tile object in tile coordinates. Platforms read travel_x, travel_y
// (tiles), speed (tiles per second), w and h from Props.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Prop returns a numeric property or def when it is missing.
func (e Entity) Prop(name string, def float64) float64 {
	if e.Props == nil {
		return def
	}
	if v, ok := e.Props[name].(float64); ok {
		return v
	}
	return def
}

// HasPhysics reports whether the layer at idx takes part in collision. Layers without
// metadata are solid.
func (l *Level) HasPhysics(idx int) bool {
	if idx < 0 || idx >= len(l.LayerMeta) {
		return true
	}
	return l.LayerMeta[idx].Physics
}

// Load reads a level by name, preferring a copy on disk under the levels directory
// over the embedded one.
func Load(name string) (*Level, error) {
	if path := filepath.Join("levels", filepath.FromSlash(name)); fileExists(path) {
		return LoadFile(path)
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return lvl, nil
}

// LoadFile reads a level from an explicit path.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	return lvl, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if lvl.SpawnX < 0 || lvl.SpawnX >= lvl.Width || lvl.SpawnY < 0 || lvl.SpawnY >= lvl.Height {
		return nil, fmt.Errorf("spawn (%d, %d) outside level", lvl.SpawnX, lvl.SpawnY)
	}
	return &lvl, nil
}

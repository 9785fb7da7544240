package level

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sunstroke/pkg/game/config"
)

//go:embed levels/campaign.json
var campaign []byte

// File is the on-disk format: an ordered list of levels
type File struct {
	Levels []Definition `json:"levels"`
}

// Catalog is the ordered campaign. Levels are played in index order; the
// player discovers the end by reaching the final level's goal.
type Catalog struct {
	levels []*Level
}

// ErrNoLevel is returned for an index outside the catalog
var ErrNoLevel = errors.New("no such level")

// Parse compiles every level of a level file.
func Parse(data []byte, heat config.TileHeat) (*Catalog, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, fmt.Errorf("%w: file has no levels", ErrInvalidLevel)
	}
	c := &Catalog{}
	for i, def := range f.Levels {
		l, err := Compile(i, def, heat)
		if err != nil {
			return nil, err
		}
		c.levels = append(c.levels, l)
	}
	return c, nil
}

// LoadFile reads a level file. An empty path loads the built-in campaign.
func LoadFile(path string, heat config.TileHeat) (*Catalog, error) {
	if path == "" {
		return Default(heat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	c, err := Parse(data, heat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in campaign
func Default(heat config.TileHeat) (*Catalog, error) {
	return Parse(campaign, heat)
}

// Len returns the number of levels
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Get returns the level at index
func (c *Catalog) Get(index int) (*Level, error) {
	if index < 0 || index >= len(c.levels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoLevel, index, len(c.levels))
	}
	return c.levels[index], nil
}

// IsFinal returns true if index is the last level
func (c *Catalog) IsFinal(index int) bool {
	return index >= len(c.levels)-1
}

// Next returns the index after current, or false if current is final.
func (c *Catalog) Next(current int) (int, bool) {
	if current < 0 || c.IsFinal(current) {
		return 0, false
	}
	return current + 1, true
}

// Activate marks index as the only active level
func (c *Catalog) Activate(index int) {
	for i, l := range c.levels {
		l.Active = i == index
	}
}

// Active returns the active level, or nil
func (c *Catalog) Active() *Level {
	for _, l := range c.levels {
		if l.Active {
			return l
		}
	}
	return nil
}

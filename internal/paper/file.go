package paper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/talenthub/internal/blocks"
)

// LoadFile reads a paper definition from a YAML file. Blocks without an id
// get a fresh one and their titles are adopted so hand-written titles stay
// fixed while omitted ones follow the block's settings.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read paper file: %w", err)
	}
	return Decode(data)
}

// Decode parses a YAML paper definition.
func Decode(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse paper file: %w", err)
	}
	if c.Level == "" {
		c.Level = LevelCustom
	}
	if !c.Level.Valid() {
		return Config{}, fmt.Errorf("unknown level %q", c.Level)
	}
	for i, b := range c.Blocks {
		if !b.Type.Valid() {
			return Config{}, fmt.Errorf("block %d: unknown type %q", i+1, b.Type)
		}
		for f := range b.Constraints {
			if !f.Known() || f == blocks.FieldCount {
				return Config{}, fmt.Errorf("block %d: unknown field %q", i+1, f)
			}
		}
		if b.ID == "" {
			b.ID = blocks.NewID()
		}
		if b.Count == 0 && b.Type.UsesCount() {
			b.Count = blocks.InitialCount
		}
		if b.Constraints == nil {
			b.Constraints = blocks.Constraints{}
		}
		c.Blocks[i] = blocks.AdoptTitle(b)
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	return c, nil
}

// SaveFile writes c as YAML. Titles that are still automatic are omitted so
// they keep following the block settings when the file is loaded again.
func SaveFile(path string, c Config) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write paper file: %w", err)
	}
	return nil
}

// Encode renders c as YAML.
func Encode(c Config) ([]byte, error) {
	out := c
	out.Blocks = make([]blocks.Block, len(c.Blocks))
	for i, b := range c.Blocks {
		b = b.Clone()
		if blocks.IsAutoTitle(b) {
			b.Title = ""
		}
		for f, v := range b.Constraints {
			if v == blocks.Empty {
				delete(b.Constraints, f)
			}
		}
		out.Blocks[i] = b
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode paper: %w", err)
	}
	return data, nil
}

// Package catalog ships the built-in puzzles and looks them up by name or by
// AIP-160 filter expression.
//
// Puzzles are stored as human-format files (one row per line, 'O' filled,
// 'X' blank) named <name>.txt. Every puzzle must encode to the compact format,
// so no row may hold a run longer than gram.MaxRunLength.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/louisbranch/gram/internal/core/gram"
)

const puzzleExt = ".txt"

//go:embed puzzles/*.txt
var embedded embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Puzzle is a named grid with its compact encoding.
type Puzzle struct {
	Name    string
	Grid    gram.Grid
	Encoded string
}

// Size returns the puzzle's side length.
func (p Puzzle) Size() int {
	return p.Grid.Size()
}

// Filled returns the number of filled cells in the puzzle.
func (p Puzzle) Filled() int {
	return p.Grid.Filled()
}

// Catalog is an immutable set of puzzles keyed by name.
type Catalog struct {
	puzzles map[string]Puzzle
	names   []string
}

// Default returns the catalog built from the embedded puzzles. It panics if
// an embedded puzzle is malformed.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "puzzles")
		if err != nil {
			panic(fmt.Sprintf("catalog: open embedded puzzles: %v", err))
		}
		c, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads every <name>.txt file at the root of fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*"+puzzleExt)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}

	c := &Catalog{puzzles: make(map[string]Puzzle, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), puzzleExt)
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read puzzle %s: %w", name, err)
		}
		grid, err := gram.ParseHuman(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse puzzle %s: %w", name, err)
		}
		encoded, err := grid.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode puzzle %s: %w", name, err)
		}
		c.puzzles[name] = Puzzle{Name: name, Grid: grid, Encoded: encoded}
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Names returns the puzzle names in lexical order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Lookup returns the puzzle with the given name.
func (c *Catalog) Lookup(name string) (Puzzle, bool) {
	p, ok := c.puzzles[name]
	return p, ok
}

// List returns every puzzle ordered by name.
func (c *Catalog) List() []Puzzle {
	out := make([]Puzzle, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.puzzles[name])
	}
	return out
}

// OrderFields lists the fields Order accepts.
var OrderFields = []string{FieldName, FieldSize, FieldFilled}

// Order sorts puzzles in place by field, ascending, breaking ties by name.
func Order(puzzles []Puzzle, field string) error {
	var key func(Puzzle) int
	switch field {
	case FieldName:
		sort.SliceStable(puzzles, func(i, j int) bool { return puzzles[i].Name < puzzles[j].Name })
		return nil
	case FieldSize:
		key = Puzzle.Size
	case FieldFilled:
		key = Puzzle.Filled
	default:
		return fmt.Errorf("catalog: cannot order by %q", field)
	}
	sort.SliceStable(puzzles, func(i, j int) bool {
		a, b := key(puzzles[i]), key(puzzles[j])
		if a != b {
			return a < b
		}
		return puzzles[i].Name < puzzles[j].Name
	})
	return nil
}

// Filter returns the puzzles matching an AIP-160 filter expression, ordered by
// name. An empty expression matches every puzzle. Invalid expressions return a
// *FilterError.
func (c *Catalog) Filter(filter string) ([]Puzzle, error) {
	match, err := compileFilter(filter)
	if err != nil {
		return nil, err
	}
	out := []Puzzle{}
	for _, name := range c.names {
		p := c.puzzles[name]
		if match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

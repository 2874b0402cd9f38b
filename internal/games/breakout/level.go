package breakout

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-eggs/internal/config"
)

// BrickType represents different types of bricks.
type BrickType int

const (
	BrickNormal BrickType = iota + 1 // destroyed in one hit
	BrickHard                        // requires 2 hits to destroy
	BrickSolid                       // indestructible
)

// Cell is one brick of a layout.
type Cell struct {
	Row, Col int
	Type     BrickType
	HP       int
	Points   int
}

// Level is a parsed brick layout.
type Level struct {
	ID   string
	Name string
	Cols int
	Rows int
	// Cells lists the bricks row by row. Callers must not modify it.
	Cells []Cell
}

// Breakable returns the number of bricks that must be destroyed to clear
// the level.
func (l *Level) Breakable() int {
	n := 0
	for _, c := range l.Cells {
		if c.Type != BrickSolid {
			n++
		}
	}
	return n
}

// ErrLayout is returned for level maps that cannot be played.
var ErrLayout = errors.New("breakout: bad level layout")

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = normal brick (10 points)
//	'.' or ' ' = empty
//	'1'-'9' = brick with custom points (10 * digit)
//	'H' = hard brick (2 HP, 20 points)
//	'X' = solid/indestructible brick (0 points)
func ParseLevel(id, name string, rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q has no rows", ErrLayout, id)
	}

	l := &Level{ID: id, Name: name, Rows: len(rows)}
	for row, line := range rows {
		l.Cols = max(l.Cols, len(line))
		for col := range len(line) {
			c := Cell{Row: row, Col: col, HP: 1}
			switch ch := line[col]; {
			case ch == '.' || ch == ' ':
				continue
			case ch == '#':
				c.Type, c.Points = BrickNormal, 10
			case ch >= '1' && ch <= '9':
				c.Type, c.Points = BrickNormal, int(ch-'0')*10
			case ch == 'H' || ch == 'h':
				c.Type, c.HP, c.Points = BrickHard, 2, 20
			case ch == 'X' || ch == 'x':
				c.Type, c.HP = BrickSolid, 0
			default:
				return nil, fmt.Errorf("%w: %q row %d col %d: unexpected %q", ErrLayout, id, row, col, ch)
			}
			l.Cells = append(l.Cells, c)
		}
	}

	if l.Breakable() == 0 {
		return nil, fmt.Errorf("%w: %q has no breakable bricks", ErrLayout, id)
	}
	return l, nil
}

func mustParse(id, name string, rows ...string) *Level {
	l, err := ParseLevel(id, name, rows)
	if err != nil {
		panic(err)
	}
	return l
}

var builtin = []*Level{
	mustParse("classic", "Classic",
		"####################",
		"####################",
		"####################",
		"####################",
	),
	mustParse("pyramid", "Pyramid",
		"........####........",
		"......########......",
		"....############....",
		"..################..",
		"####################",
	),
	mustParse("checker", "Checkerboard",
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
		"#.#.#.#.#.#.#.#.#.#.",
	),
	mustParse("diamond", "Diamond",
		".........##.........",
		".......######.......",
		".....##########.....",
		".......######.......",
		".........##.........",
	),
	mustParse("fortress", "Fortress",
		"HHHHHHHHHHHHHHHHHHHH",
		"H.################.H",
		"H.################.H",
		"H..................H",
		"HHHHHHHHHHHHHHHHHHHH",
	),
	mustParse("bands", "Bands",
		"99999999999999999999",
		"....................",
		"55555555555555555555",
		"....................",
		"22222222222222222222",
	),
	mustParse("castle", "Castle",
		"X..X....X..X....X..X",
		"XXXX....XXXX....XXXX",
		"....................",
		"####################",
		"####################",
		"####################",
	),
	mustParse("vault", "Vault",
		"HHHHHHHHHHHHHHHHHHHH",
		"H########XX########H",
		"H#######X##X#######H",
		"H########XX########H",
		"HHHHHHHHHHHHHHHHHHHH",
	),
}

// BuiltinLevels returns the default level rotation.
func BuiltinLevels() []*Level {
	return builtin
}

// Levels parses configured layouts. An empty list yields the built-in
// rotation.
func Levels(layouts []config.LevelLayout) ([]*Level, error) {
	if len(layouts) == 0 {
		return BuiltinLevels(), nil
	}
	out := make([]*Level, 0, len(layouts))
	for i, ll := range layouts {
		id := ll.ID
		if id == "" {
			id = fmt.Sprintf("custom-%d", i+1)
		}
		name := ll.Name
		if name == "" {
			name = id
		}
		l, err := ParseLevel(id, name, ll.Rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// LevelAt returns the layout for a 1-based level number, wrapping around
// the rotation.
func LevelAt(levels []*Level, n int) *Level {
	if n < 1 {
		n = 1
	}
	return levels[(n-1)%len(levels)]
}

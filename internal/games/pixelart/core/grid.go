package core

import (
	"fmt"
	"strings"
)

// Coord is a cell position. X is the column, Y is the row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Grid is a square board of color keys.
// Cells are stored in row-major order: index = y*Size + x.
type Grid struct {
	Size  int
	Cells []ColorKey
}

// NewGrid creates an all-empty grid of size n×n.
func NewGrid(n int) *Grid {
	if n < 0 {
		n = 0
	}
	return &Grid{
		Size:  n,
		Cells: make([]ColorKey, n*n),
	}
}

// NewGridLike creates an all-empty grid with the same dimensions as g.
func NewGridLike(g *Grid) *Grid {
	return NewGrid(g.Size)
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Size + c.X
}

// InBounds returns true if the coordinate is within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// Get returns the key at c, or Empty when out of bounds.
func (g *Grid) Get(c Coord) ColorKey {
	if !g.InBounds(c) {
		return Empty
	}
	return g.Cells[g.index(c)]
}

// Set stores k at c. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, k ColorKey) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = k
	}
}

// At is Get by row and column.
func (g *Grid) At(row, col int) ColorKey {
	return g.Get(C(col, row))
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = Empty
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]ColorKey, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Size: g.Size, Cells: cells}
}

// FilledCount returns the number of cells holding a color.
func (g *Grid) FilledCount() int {
	count := 0
	for _, k := range g.Cells {
		if k != Empty {
			count++
		}
	}
	return count
}

// Equal returns true if two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.Size != other.Size {
		return false
	}
	for i, k := range g.Cells {
		if k != other.Cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the grid in text form, one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Size)
	var sb strings.Builder
	for y := 0; y < g.Size; y++ {
		sb.Reset()
		for x := 0; x < g.Size; x++ {
			sb.WriteRune(g.Get(C(x, y)).Char())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the text form with rows separated by newlines.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// ParseGrid reads the text form: one row per line, one key letter or '.'
// per cell. Blank lines and lines starting with '#' are skipped. Rows
// shorter than the grid are padded with empty cells; the grid size is the
// number of rows.
func ParseGrid(text string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("pixelart: grid has no rows")
	}
	return gridFromRows(rows, len(rows))
}

// gridFromRows decodes mask rows into an n×n grid. Missing rows and
// characters are empty.
func gridFromRows(rows []string, n int) (*Grid, error) {
	if len(rows) > n {
		return nil, fmt.Errorf("pixelart: %d rows for a grid of size %d", len(rows), n)
	}
	g := NewGrid(n)
	for y, row := range rows {
		x := 0
		for _, r := range row {
			if x >= n {
				return nil, fmt.Errorf("pixelart: row %d is wider than %d", y+1, n)
			}
			k, ok := ParseColorKey(r)
			if !ok {
				return nil, fmt.Errorf("pixelart: row %d col %d: unknown color %q", y+1, x+1, r)
			}
			g.Set(C(x, y), k)
			x++
		}
	}
	return g, nil
}

package core

import (
	"fmt"
	"math"
)

// LevelDef is one catalog entry. A level is drawn either from Mask (rows
// of key letters, '.' or missing characters are empty) or by Fill, which
// paints into an empty grid of the given size. Fill takes precedence.
type LevelDef struct {
	ID    string
	Title string
	Size  int
	Mask  []string
	Fill  func(g *Grid)
}

// Build returns a freshly constructed target grid for the level.
func (d LevelDef) Build() *Grid {
	if d.Fill != nil {
		g := NewGrid(d.Size)
		d.Fill(g)
		return g
	}
	g, err := gridFromRows(d.Mask, d.Size)
	if err != nil {
		panic(fmt.Sprintf("pixelart: level %q: %v", d.Title, err))
	}
	return g
}

// Catalog is the ordered list of playable levels.
type Catalog struct {
	levels []LevelDef
}

// NewCatalog returns the built-in levels followed by extra.
func NewCatalog(extra ...LevelDef) *Catalog {
	levels := BuiltinLevels()
	levels = append(levels, extra...)
	return &Catalog{levels: levels}
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns the definition at index i.
func (c *Catalog) Level(i int) (LevelDef, bool) {
	if i < 0 || i >= len(c.levels) {
		return LevelDef{}, false
	}
	return c.levels[i], true
}

// Levels returns a copy of the level list.
func (c *Catalog) Levels() []LevelDef {
	out := make([]LevelDef, len(c.levels))
	copy(out, c.levels)
	return out
}

// Build returns the target grid of level i. An out-of-range index is a
// programming error and panics.
func (c *Catalog) Build(i int) *Grid {
	d, ok := c.Level(i)
	if !ok {
		panic(fmt.Sprintf("pixelart: level index %d out of range [0,%d)", i, len(c.levels)))
	}
	return d.Build()
}

// BuiltinLevels returns the five fixed levels.
func BuiltinLevels() []LevelDef {
	return []LevelDef{
		{ID: "bandera", Title: "Bandera de Colombia", Size: 12, Fill: fillFlag},
		{ID: "vaso", Title: "Vaso", Size: 12, Mask: cupMask},
		{ID: "serpiente", Title: "Serpiente", Size: 14, Fill: fillSnake},
		{ID: "cancha", Title: "Cancha de fútbol", Size: 16, Fill: fillPitch},
		{ID: "tribal", Title: "Patrón tribal", Size: 16, Mask: tribalMask},
	}
}

// fillFlag paints three horizontal stripes: half yellow, then a quarter
// blue and a quarter red.
func fillFlag(g *Grid) {
	n := g.Size
	for y := 0; y < n; y++ {
		color := Red
		switch {
		case y < n/2:
			color = Yellow
		case y < n*3/4:
			color = Blue
		}
		for x := 0; x < n; x++ {
			g.Set(C(x, y), color)
		}
	}
}

var cupMask = []string{
	"............",
	"....KKKK....",
	"...KWWWWK...",
	"..KWWWWWWK..",
	"..KWWWWWWK..",
	"..KWWWWWWK..",
	"...KWWWWK...",
	"....KWWK....",
	".....KK.....",
	".....KK.....",
	"....BBBB....",
	"............",
}

// fillSnake draws a two-cell-wide diagonal body with a black head.
func fillSnake(g *Grid) {
	n := g.Size
	for row := 2; row < n-2; row++ {
		col := 2 + (row-2)%(n-4)
		g.Set(C(col, row), Green)
		if col+1 < n-2 {
			g.Set(C(col+1, row), Green)
		}
	}
	for _, c := range []Coord{C(3, 4), C(4, 4), C(3, 5), C(4, 5)} {
		g.Set(c, Black)
	}
}

// fillPitch draws a green field with a white border, midline and center
// circle.
func fillPitch(g *Grid) {
	n := g.Size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			g.Set(C(x, y), Green)
		}
	}
	for i := 1; i < n-1; i++ {
		g.Set(C(i, 1), Gray)
		g.Set(C(i, n-2), Gray)
		g.Set(C(1, i), Gray)
		g.Set(C(n-2, i), Gray)
	}
	mid := n / 2
	for x := 2; x < n-2; x++ {
		g.Set(C(x, mid), Gray)
	}
	const radius = 3.0
	for row := 2; row < n-2; row++ {
		for col := 2; col < n-2; col++ {
			d := math.Hypot(float64(row-mid), float64(col-mid))
			if math.Abs(d-radius) <= 0.6 {
				g.Set(C(col, row), Gray)
			}
		}
	}
}

var tribalMask = []string{
	"....R..O..Y....",
	"...RR.OO.YY....",
	"..RRR.OOO.YY...",
	".RRRR.OOOO.YY..",
	".PYYY.BBBB.PP..",
	".PYYY.BBBB.PP..",
	".PPPP.BBBB.PP..",
	".PPPP.BBBB.PP..",
	".PPPP.BBBB.PP..",
	".PYYY.BBBB.PP..",
	".PYYY.BBBB.PP..",
	".RRRR.OOOO.YY..",
	"..RRR.OOO.YY...",
	"...RR.OO.YY....",
	"....R..O..Y....",
	"................",
}

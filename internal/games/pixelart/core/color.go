package core

import "strings"

// ColorKey identifies one of the palette colors. The zero value is Empty,
// which means "no color" and is not part of the palette.
type ColorKey byte

const (
	Empty  ColorKey = 0
	Red    ColorKey = 'R'
	Orange ColorKey = 'O'
	Yellow ColorKey = 'Y'
	Green  ColorKey = 'G'
	Cyan   ColorKey = 'C'
	Blue   ColorKey = 'B'
	Purple ColorKey = 'P'
	Black  ColorKey = 'K'
	Gray   ColorKey = 'W'
)

// EmptyChar is the text form of an empty cell in masks and grid files.
const EmptyChar = '.'

// ColorInfo describes a palette entry.
type ColorInfo struct {
	Key  ColorKey
	Name string
	Hex  string
}

// Palette lists the colors in display order. Index i is selected with the
// number key i+1.
var Palette = []ColorInfo{
	{Red, "Rojo", "#e53935"},
	{Orange, "Naranja", "#fb8c00"},
	{Yellow, "Amarillo", "#fdd835"},
	{Green, "Verde", "#43a047"},
	{Cyan, "Cian", "#00bcd4"},
	{Blue, "Azul", "#1e88e5"},
	{Purple, "Morado", "#7c5cff"},
	{Black, "Negro", "#111111"},
	{Gray, "Gris claro", "#d9d9d9"},
}

// EraserName is the tool name shown when no color is selected.
const EraserName = "Borrador"

func (k ColorKey) info() (ColorInfo, bool) {
	for _, c := range Palette {
		if c.Key == k {
			return c, true
		}
	}
	return ColorInfo{}, false
}

// Valid reports whether k is one of the palette colors.
func (k ColorKey) Valid() bool {
	_, ok := k.info()
	return ok
}

// IsEmpty reports whether k carries no color.
func (k ColorKey) IsEmpty() bool {
	return k == Empty
}

// Name returns the Spanish color name, or the eraser name for Empty.
func (k ColorKey) Name() string {
	if c, ok := k.info(); ok {
		return c.Name
	}
	return EraserName
}

// Hex returns the color value, or "" for Empty.
func (k ColorKey) Hex() string {
	c, _ := k.info()
	return c.Hex
}

// Char returns the single-letter form used in masks.
func (k ColorKey) Char() rune {
	if k == Empty {
		return EmptyChar
	}
	return rune(k)
}

// String returns the key letter, or "." for Empty.
func (k ColorKey) String() string {
	return string(k.Char())
}

// ParseColorKey converts a mask character into a key. '.' and ' ' decode
// to Empty; letters are case-insensitive.
func ParseColorKey(r rune) (ColorKey, bool) {
	if r == EmptyChar || r == ' ' {
		return Empty, true
	}
	s := strings.ToUpper(string(r))
	if len(s) != 1 {
		return Empty, false
	}
	k := ColorKey(s[0])
	if !k.Valid() {
		return Empty, false
	}
	return k, true
}

// PaletteKey returns the color selected by 1-based palette index n.
func PaletteKey(n int) (ColorKey, bool) {
	if n < 1 || n > len(Palette) {
		return Empty, false
	}
	return Palette[n-1].Key, true
}

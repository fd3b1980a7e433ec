// Package formats provides level file format parsers for Pixel Art.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
)

// MaxSize bounds the grid size a level file may declare.
const MaxSize = 32

// ValidationError contains details about a rejected level file.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// YAMLLevel is the on-disk level layout. Cells come either from mask rows
// or from a list of pixels; both may be combined, pixels win.
type YAMLLevel struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Size   int         `yaml:"size"`
	Mask   []string    `yaml:"mask"`
	Pixels []YAMLPixel `yaml:"pixels,omitempty"`
}

// YAMLPixel is a single colored cell.
type YAMLPixel struct {
	X int    `yaml:"x"`
	Y int    `yaml:"y"`
	C string `yaml:"c"`
}

// ParseYAML decodes and validates a level file into a catalog entry.
func ParseYAML(data []byte) (core.LevelDef, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.LevelDef{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if err := validate(yl); err != nil {
		return core.LevelDef{}, err
	}

	def := core.LevelDef{
		ID:    yl.ID,
		Title: yl.Title,
		Size:  yl.Size,
	}
	if len(yl.Pixels) == 0 {
		def.Mask = append([]string(nil), yl.Mask...)
		return def, nil
	}

	mask := append([]string(nil), yl.Mask...)
	pixels := make([]YAMLPixel, len(yl.Pixels))
	copy(pixels, yl.Pixels)
	def.Fill = func(g *core.Grid) {
		for y, row := range mask {
			x := 0
			for _, r := range row {
				k, _ := core.ParseColorKey(r)
				g.Set(core.C(x, y), k)
				x++
			}
		}
		for _, p := range pixels {
			k, _ := core.ParseColorKey(rune(p.C[0]))
			g.Set(core.C(p.X, p.Y), k)
		}
	}
	return def, nil
}

func validate(yl YAMLLevel) error {
	if strings.TrimSpace(yl.ID) == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if strings.TrimSpace(yl.Title) == "" {
		return ValidationError{Code: "MISSING_TITLE", Message: fmt.Sprintf("level %s has no title", yl.ID)}
	}
	if yl.Size < 1 || yl.Size > MaxSize {
		return ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("level %s: size %d outside [1,%d]", yl.ID, yl.Size, MaxSize),
		}
	}
	if len(yl.Mask) == 0 && len(yl.Pixels) == 0 {
		return ValidationError{Code: "EMPTY_LEVEL", Message: fmt.Sprintf("level %s has neither mask nor pixels", yl.ID)}
	}
	if len(yl.Mask) > yl.Size {
		return ValidationError{
			Code:    "BAD_MASK",
			Message: fmt.Sprintf("level %s: %d mask rows for size %d", yl.ID, len(yl.Mask), yl.Size),
		}
	}

	for y, row := range yl.Mask {
		x := 0
		for _, r := range row {
			if x >= yl.Size {
				return ValidationError{
					Code:    "BAD_MASK",
					Message: fmt.Sprintf("level %s: mask row %d wider than %d", yl.ID, y+1, yl.Size),
				}
			}
			if _, ok := core.ParseColorKey(r); !ok {
				return ValidationError{
					Code:    "BAD_COLOR",
					Message: fmt.Sprintf("level %s: mask row %d col %d: unknown color %q", yl.ID, y+1, x+1, r),
				}
			}
			x++
		}
	}

	for i, p := range yl.Pixels {
		if p.X < 0 || p.X >= yl.Size || p.Y < 0 || p.Y >= yl.Size {
			return ValidationError{
				Code:    "BAD_PIXEL",
				Message: fmt.Sprintf("level %s: pixel %d at (%d,%d) outside the grid", yl.ID, i+1, p.X, p.Y),
			}
		}
		if len(p.C) != 1 {
			return ValidationError{Code: "BAD_COLOR", Message: fmt.Sprintf("level %s: pixel %d color %q", yl.ID, i+1, p.C)}
		}
		if k, ok := core.ParseColorKey(rune(p.C[0])); !ok || k == core.Empty {
			return ValidationError{Code: "BAD_COLOR", Message: fmt.Sprintf("level %s: pixel %d color %q", yl.ID, i+1, p.C)}
		}
	}

	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

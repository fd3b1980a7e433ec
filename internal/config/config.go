// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// PixelArtConfig contains all configuration for the Pixel Art game.
type PixelArtConfig struct {
	Levels  PixelArtLevels  `yaml:"levels"`
	Display PixelArtDisplay `yaml:"display"`
}

// PixelArtLevels controls where levels come from and which one opens first.
type PixelArtLevels struct {
	Dir        string `yaml:"dir"`         // Extra YAML levels, appended after the built-in ones
	StartLevel int    `yaml:"start_level"` // 1-based
}

// PixelArtDisplay tunes how the boards are drawn.
type PixelArtDisplay struct {
	CellWidth  int    `yaml:"cell_width"` // Terminal columns per pixel (1 or 2)
	ShowTarget bool   `yaml:"show_target"`
	Palette    string `yaml:"palette"` // Key letters in palette order
}

// OrientationConfig contains all configuration for the orientation game.
type OrientationConfig struct {
	Walk      OrientationWalk      `yaml:"walk"`
	Stages    OrientationStages    `yaml:"stages"`
	Area      OrientationArea      `yaml:"area"`
	Placement OrientationPlacement `yaml:"placement"`
	Timing    OrientationTiming    `yaml:"timing"`
	Rating    OrientationRating    `yaml:"rating"`
}

// OrientationWalk defines the walk board.
type OrientationWalk struct {
	GridSize          int `yaml:"grid_size"`
	MinTargetDistance int `yaml:"min_target_distance"`
}

// OrientationStages defines how many challenges each question stage holds.
type OrientationStages struct {
	PositionChallenges int `yaml:"position_challenges"`
	DistanceChallenges int `yaml:"distance_challenges"`
}

// OrientationArea is the logical scene the markers are placed in.
type OrientationArea struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// OrientationPlacement defines marker sizes and the ambiguity thresholds.
type OrientationPlacement struct {
	ReferenceSize  float64 `yaml:"reference_size"`
	ObjectSize     float64 `yaml:"object_size"`
	Margin         float64 `yaml:"margin"`
	ThresholdRatio float64 `yaml:"threshold_ratio"` // Fraction of min(area) splitting near and far
	MinDeltaRatio  float64 `yaml:"min_delta_ratio"` // Fraction of min(area) that counts as clearly different
	NearFactor     float64 `yaml:"near_factor"`
	FarFactor      float64 `yaml:"far_factor"`
}

// OrientationTiming holds UI delays.
type OrientationTiming struct {
	AdvanceDelayMS int `yaml:"advance_delay_ms"`
}

// OrientationRating holds the star thresholds on total correct answers.
type OrientationRating struct {
	ThreeStars int `yaml:"three_stars"`
	TwoStars   int `yaml:"two_stars"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the pixel art configuration is usable.
func (c PixelArtConfig) Validate() error {
	if c.Levels.StartLevel < 1 {
		return fmt.Errorf("%w: levels.start_level must be >= 1, got %d", ErrInvalidConfig, c.Levels.StartLevel)
	}
	if c.Display.CellWidth < 1 || c.Display.CellWidth > 2 {
		return fmt.Errorf("%w: display.cell_width must be 1 or 2, got %d", ErrInvalidConfig, c.Display.CellWidth)
	}
	return nil
}

// Validate checks that the orientation configuration is usable.
func (c OrientationConfig) Validate() error {
	switch {
	case c.Walk.GridSize < 3:
		return fmt.Errorf("%w: walk.grid_size must be >= 3, got %d", ErrInvalidConfig, c.Walk.GridSize)
	case c.Walk.MinTargetDistance < 1:
		return fmt.Errorf("%w: walk.min_target_distance must be >= 1", ErrInvalidConfig)
	case c.Stages.PositionChallenges < 1 || c.Stages.DistanceChallenges < 1:
		return fmt.Errorf("%w: every stage needs at least one challenge", ErrInvalidConfig)
	case c.Area.Width <= 0 || c.Area.Height <= 0:
		return fmt.Errorf("%w: area must be positive, got %gx%g", ErrInvalidConfig, c.Area.Width, c.Area.Height)
	case c.Placement.ObjectSize <= 0 || c.Placement.ReferenceSize < c.Placement.ObjectSize:
		return fmt.Errorf("%w: placement needs reference_size >= object_size > 0", ErrInvalidConfig)
	case c.Placement.ThresholdRatio <= 0 || c.Placement.MinDeltaRatio <= 0:
		return fmt.Errorf("%w: placement ratios must be positive", ErrInvalidConfig)
	case c.Placement.NearFactor <= 0 || c.Placement.NearFactor >= 1 || c.Placement.FarFactor <= 1:
		return fmt.Errorf("%w: need 0 < near_factor < 1 < far_factor", ErrInvalidConfig)
	case c.Timing.AdvanceDelayMS < 0:
		return fmt.Errorf("%w: timing.advance_delay_ms must not be negative", ErrInvalidConfig)
	case c.Rating.TwoStars > c.Rating.ThreeStars:
		return fmt.Errorf("%w: rating.two_stars must not exceed rating.three_stars", ErrInvalidConfig)
	}
	return nil
}

// MaxScore returns the highest total a session can reach: one walk plus
// every question challenge.
func (c OrientationConfig) MaxScore() int {
	return 1 + c.Stages.PositionChallenges + c.Stages.DistanceChallenges
}

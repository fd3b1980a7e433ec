package config

import (
	_ "embed"
)

//go:embed defaults/pixelart.yaml
var defaultPixelArtYAML []byte

//go:embed defaults/orientation.yaml
var defaultOrientationYAML []byte

// DefaultPixelArtConfig returns the default Pixel Art configuration.
func DefaultPixelArtConfig() PixelArtConfig {
	return PixelArtConfig{
		Levels: PixelArtLevels{
			Dir:        "",
			StartLevel: 1,
		},
		Display: PixelArtDisplay{
			CellWidth:  2,
			ShowTarget: true,
			Palette:    "ROYGCBPKW",
		},
	}
}

// DefaultOrientationConfig returns the default orientation configuration.
func DefaultOrientationConfig() OrientationConfig {
	return OrientationConfig{
		Walk: OrientationWalk{
			GridSize:          7,
			MinTargetDistance: 3,
		},
		Stages: OrientationStages{
			PositionChallenges: 3,
			DistanceChallenges: 3,
		},
		Area: OrientationArea{
			Width:  640,
			Height: 400,
		},
		Placement: OrientationPlacement{
			ReferenceSize:  120,
			ObjectSize:     90,
			Margin:         16,
			ThresholdRatio: 0.35,
			MinDeltaRatio:  0.12,
			NearFactor:     0.75,
			FarFactor:      1.35,
		},
		Timing: OrientationTiming{
			AdvanceDelayMS: 700,
		},
		Rating: OrientationRating{
			ThreeStars: 7,
			TwoStars:   4,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pixelart":
		return defaultPixelArtYAML
	case "orientation":
		return defaultOrientationYAML
	default:
		return nil
	}
}

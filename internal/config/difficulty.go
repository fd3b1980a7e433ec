package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty maps a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyOrientationPreset scales the walk board and stage length.
// Normal leaves the loaded config untouched.
func ApplyOrientationPreset(cfg *OrientationConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Walk.GridSize = 5
		cfg.Walk.MinTargetDistance = 2
		cfg.Stages.PositionChallenges = 2
		cfg.Stages.DistanceChallenges = 2
	case DifficultyHard:
		cfg.Walk.GridSize = 9
		cfg.Walk.MinTargetDistance = 5
		cfg.Stages.PositionChallenges = 4
		cfg.Stages.DistanceChallenges = 4
	default:
		return
	}

	// Keep the star thresholds proportional to the new maximum.
	maxScore := cfg.MaxScore()
	cfg.Rating.ThreeStars = maxScore
	cfg.Rating.TwoStars = (4*maxScore + 6) / 7
}

// ApplyPixelArtPreset adjusts the pixel art display. Only easy changes
// anything: the target stays visible no matter what the config says.
func ApplyPixelArtPreset(cfg *PixelArtConfig, preset DifficultyPreset) {
	if preset == DifficultyEasy {
		cfg.Display.ShowTarget = true
	}
}

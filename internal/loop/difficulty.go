package loop

import (
	"time"

	"github.com/tomz197/flapssh/internal/loop/config"
)

// Difficulty is the set of level-scaled multipliers in effect for a score.
type Difficulty struct {
	Level         int
	GravityMult   float64
	SpeedMult     float64
	GapScale      float64 // Fraction of the base gap height
	SpawnInterval time.Duration
}

// LevelFor returns min(MaxLevel, floor(score / PointsPerLevel)).
func LevelFor(t config.Tuning, score int) int {
	if score <= 0 || t.PointsPerLevel <= 0 {
		return 0
	}
	return min(t.MaxLevel, score/t.PointsPerLevel)
}

// DifficultyFor derives every difficulty output from score. Gravity and speed
// grow linearly up to their caps; gap and spawn interval shrink linearly down
// to their floors.
func DifficultyFor(t config.Tuning, score int) Difficulty {
	level := LevelFor(t, score)
	lv := float64(level)

	interval := t.SpawnInterval - t.SpawnIntervalStep*level
	interval = max(interval, t.MinSpawnInterval)

	return Difficulty{
		Level:         level,
		GravityMult:   min(t.GravityCap, 1+t.GravityPerLevel*lv),
		SpeedMult:     min(t.SpeedCap, 1+t.SpeedPerLevel*lv),
		GapScale:      max(t.GapMinFraction, 1-t.GapShrinkPerLevel*lv),
		SpawnInterval: time.Duration(interval) * time.Millisecond,
	}
}

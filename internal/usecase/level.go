package usecase

import (
	"math"
)

const baseXPPerLevel = 100

// XPForNextLevel returns the XP required to go from level to level+1.
// The curve is floor(100 * 1.2^(level-1)), monotonically increasing.
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(float64(baseXPPerLevel) * math.Pow(1.2, float64(level-1))))
}

// TotalXPForLevel returns the lifetime XP at which the given level
// starts. Level 1 starts at 0.
func TotalXPForLevel(level int) int {
	total := 0
	for i := 1; i < level; i++ {
		total += XPForNextLevel(i)
	}
	return total
}

// LevelFromXP derives the level for a lifetime XP total by walking the
// tiers from level 1. The iteration is the contract; xp=0 is level 1.
func LevelFromXP(xp int) int {
	level := 1
	remaining := xp
	for {
		need := XPForNextLevel(level)
		if remaining < need {
			return level
		}
		remaining -= need
		level++
	}
}

// LevelProgress returns how far into the current level the XP total is,
// as a fraction in [0,1).
func LevelProgress(xp int) float64 {
	level := LevelFromXP(xp)
	into := xp - TotalXPForLevel(level)
	need := XPForNextLevel(level)
	if need == 0 {
		return 0
	}
	return float64(into) / float64(need)
}

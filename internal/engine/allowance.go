package engine

import "math"

const (
	slackStart      = 2.0
	slackEnd        = 1.0
	slackFloorLevel = 500
)

// Slack returns the move-allowance multiplier for a level: monotonic
// non-increasing, exactly 2.0 at level 1, linearly down to exactly 1.0
// at level 500 and for all levels beyond.
func Slack(level int) float64 {
	if level <= 1 {
		return slackStart
	}
	if level >= slackFloorLevel {
		return slackEnd
	}
	span := float64(slackFloorLevel - 1)
	return slackStart - float64(level-1)*(slackStart-slackEnd)/span
}

// ComputeMovesAllowed converts the optimal move count into the
// player-facing move budget. Allowed moves are never below optimal.
func ComputeMovesAllowed(profile DifficultyProfile, optimalMoves int) int {
	if optimalMoves < 0 {
		return 0
	}
	allowed := int(math.Round(float64(optimalMoves) * Slack(profile.LevelIndex)))
	if allowed < optimalMoves {
		allowed = optimalMoves
	}
	return allowed
}

package game

import "github.com/user/fito-garden/internal/types"

// FitoMoodFor derives Fito's mood from the active mission count, the
// completed archive, lifetime completions and the current streak. The
// rules are evaluated top to bottom and the first match wins; the
// thresholds are tuned for gradual mood transitions in the garden UI.
func FitoMoodFor(doc *types.GameDocument) types.Mood {
	missionCount := len(doc.Missions)
	completedCount := len(doc.CompletedMissions)
	streakDays := doc.Streak.Current

	// A lost streak after real progress reads as sad
	if streakDays == 0 && doc.Stats.MissionsCompleted > 5 {
		return types.MoodSad
	}

	// No missions pending: mood rides on the streak
	if missionCount == 0 {
		if streakDays > 7 {
			return types.MoodExcited
		}
		return types.MoodHappy
	}

	// Recently cleared a backlog
	if completedCount > missionCount*2 && missionCount <= 2 {
		return types.MoodExcited
	}

	// Light load
	if missionCount <= 2 {
		if streakDays > 3 {
			return types.MoodHappy
		}
		return types.MoodNeutral
	}

	if missionCount <= 4 {
		return types.MoodNeutral
	}

	// Overloaded
	if missionCount >= 5 {
		return types.MoodWorried
	}

	return types.MoodNeutral
}

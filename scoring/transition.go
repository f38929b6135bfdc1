package scoring

import "github.com/Dosada05/tennis-league/models"

// Action is what an edit of a match means for the team table.
type Action int

const (
	ActionNone Action = iota
	ActionApply
	ActionRevertApply
	ActionRevert
)

func (a Action) String() string {
	switch a {
	case ActionApply:
		return "apply"
	case ActionRevertApply:
		return "revert+apply"
	case ActionRevert:
		return "revert"
	default:
		return "none"
	}
}

// ResultChanged reports whether the parts of a match that feed the table
// (both scores and both team names) differ.
func ResultChanged(prev, next models.Match) bool {
	return prev.HomeScore != next.HomeScore ||
		prev.AwayScore != next.AwayScore ||
		prev.HomeTeam != next.HomeTeam ||
		prev.AwayTeam != next.AwayTeam
}

// Transition decides the stats action for moving a match from prev to next.
// A completed match that is moved back out of completed is reverted.
func Transition(prev, next models.Match) Action {
	switch {
	case !prev.IsCompleted() && next.IsCompleted():
		return ActionApply
	case prev.IsCompleted() && next.IsCompleted():
		if ResultChanged(prev, next) {
			return ActionRevertApply
		}
		return ActionNone
	case prev.IsCompleted() && !next.IsCompleted():
		return ActionRevert
	default:
		return ActionNone
	}
}

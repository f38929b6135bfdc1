// Package scoring holds the pure rules that turn match results into team
// statistics: applying and reverting a result, deciding what an edit means
// for the table, ranking standings and resolving rename targets.
package scoring

import "github.com/Dosada05/tennis-league/models"

const (
	PointsForWin = 3
	PointsForTie = 1
)

type Outcome int

const (
	HomeWin Outcome = iota
	AwayWin
	// Tie cannot happen in tennis but a result entered as equal is still
	// counted as one point each.
	Tie
)

func OutcomeOf(homeScore, awayScore int) Outcome {
	switch {
	case homeScore > awayScore:
		return HomeWin
	case awayScore > homeScore:
		return AwayWin
	default:
		return Tie
	}
}

// Apply adds one completed result to both teams' stats.
func Apply(home, away models.TeamStats, homeScore, awayScore int) (models.TeamStats, models.TeamStats) {
	home.GoalsScored += homeScore
	home.GoalsConceded += awayScore
	away.GoalsScored += awayScore
	away.GoalsConceded += homeScore

	switch OutcomeOf(homeScore, awayScore) {
	case HomeWin:
		home.Wins++
		home.Points += PointsForWin
		away.Losses++
	case AwayWin:
		away.Wins++
		away.Points += PointsForWin
		home.Losses++
	case Tie:
		home.Points += PointsForTie
		away.Points += PointsForTie
	}
	return home, away
}

// Revert subtracts a previously applied result. Every field is floored at
// zero, so reverting a result that was never applied cannot go negative.
func Revert(home, away models.TeamStats, homeScore, awayScore int) (models.TeamStats, models.TeamStats) {
	home.GoalsScored = floor(home.GoalsScored - homeScore)
	home.GoalsConceded = floor(home.GoalsConceded - awayScore)
	away.GoalsScored = floor(away.GoalsScored - awayScore)
	away.GoalsConceded = floor(away.GoalsConceded - homeScore)

	switch OutcomeOf(homeScore, awayScore) {
	case HomeWin:
		home.Wins = floor(home.Wins - 1)
		home.Points = floor(home.Points - PointsForWin)
		away.Losses = floor(away.Losses - 1)
	case AwayWin:
		away.Wins = floor(away.Wins - 1)
		away.Points = floor(away.Points - PointsForWin)
		home.Losses = floor(home.Losses - 1)
	case Tie:
		home.Points = floor(home.Points - PointsForTie)
		away.Points = floor(away.Points - PointsForTie)
	}
	return home, away
}

func floor(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

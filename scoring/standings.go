package scoring

import (
	"sort"

	"github.com/Dosada05/tennis-league/models"
)

// Rank orders teams by wins, then goal difference, then name, and numbers
// them from 1.
func Rank(teams []models.Team) []models.TeamStanding {
	rows := make([]models.TeamStanding, 0, len(teams))
	for _, t := range teams {
		ties := t.Points - PointsForWin*t.Wins
		if ties < 0 {
			ties = 0
		}
		rows = append(rows, models.TeamStanding{
			TeamID:         t.ID,
			Name:           t.Name,
			Played:         t.Wins + t.Losses + ties,
			GoalDifference: t.GoalDifference(),
			TeamStats:      t.TeamStats,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.Name < b.Name
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

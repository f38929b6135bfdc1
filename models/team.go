package models

type TeamStats struct {
	Wins          int `json:"wins" db:"wins"`
	Losses        int `json:"losses" db:"losses"`
	Points        int `json:"points" db:"points"`
	GoalsScored   int `json:"goals_scored" db:"goals_scored"`
	GoalsConceded int `json:"goals_conceded" db:"goals_conceded"`
}

func (s TeamStats) GoalDifference() int {
	return s.GoalsScored - s.GoalsConceded
}

type Team struct {
	ID       string   `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Players  []string `json:"players" db:"players"`
	LeagueID string   `json:"league_id" db:"league_id"`
	TeamStats

	League *League `json:"league,omitempty" db:"-"`
}

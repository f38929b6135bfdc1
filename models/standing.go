package models

// TeamStanding is one row of a league table.
type TeamStanding struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	Played         int    `json:"played"`
	GoalDifference int    `json:"goal_difference"`
	TeamStats
}

type LeagueStandings struct {
	League League         `json:"league"`
	Rows   []TeamStanding `json:"rows"`
}

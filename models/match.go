package models

import "time"

type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusOngoing   MatchStatus = "ongoing"
	MatchStatusCompleted MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusUpcoming, MatchStatusOngoing, MatchStatusCompleted:
		return true
	}
	return false
}

// LeagueTag - короткий код лиги, хранится прямо в матче.
type LeagueTag string

const (
	LeagueMenA      LeagueTag = "menA"
	LeagueMenB      LeagueTag = "menB"
	LeagueBeginners LeagueTag = "beginners"
)

func (t LeagueTag) Valid() bool {
	switch t {
	case LeagueMenA, LeagueMenB, LeagueBeginners:
		return true
	}
	return false
}

// Match is one scheduled game on a court. Teams are referenced by name, not by id.
type Match struct {
	ID        string      `json:"id" db:"id"`
	Court     string      `json:"court" db:"court"`
	HomeTeam  string      `json:"home_team" db:"home_team"`
	AwayTeam  string      `json:"away_team" db:"away_team"`
	HomeScore int         `json:"home_score" db:"home_score"`
	AwayScore int         `json:"away_score" db:"away_score"`
	Status    MatchStatus `json:"status" db:"status"`
	StartTime time.Time   `json:"start_time" db:"start_time"`
	EndTime   time.Time   `json:"end_time" db:"end_time"`
	League    LeagueTag   `json:"league" db:"league"`
	Date      string      `json:"date" db:"date"` // YYYY-MM-DD
}

func (m Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted
}

// MatchPatch carries the fields an admin edit form submits. Nil means "unchanged".
type MatchPatch struct {
	Court     *string      `json:"court,omitempty"`
	HomeTeam  *string      `json:"home_team,omitempty"`
	AwayTeam  *string      `json:"away_team,omitempty"`
	HomeScore *int         `json:"home_score,omitempty"`
	AwayScore *int         `json:"away_score,omitempty"`
	Status    *MatchStatus `json:"status,omitempty"`
	StartTime *time.Time   `json:"start_time,omitempty"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
	League    *LeagueTag   `json:"league,omitempty"`
	Date      *string      `json:"date,omitempty"`
}

func (p MatchPatch) IsEmpty() bool {
	return p.Court == nil && p.HomeTeam == nil && p.AwayTeam == nil &&
		p.HomeScore == nil && p.AwayScore == nil && p.Status == nil &&
		p.StartTime == nil && p.EndTime == nil && p.League == nil && p.Date == nil
}

// Merge returns a copy of m with the patch applied.
func (p MatchPatch) Merge(m Match) Match {
	merged := m
	if p.Court != nil {
		merged.Court = *p.Court
	}
	if p.HomeTeam != nil {
		merged.HomeTeam = *p.HomeTeam
	}
	if p.AwayTeam != nil {
		merged.AwayTeam = *p.AwayTeam
	}
	if p.HomeScore != nil {
		merged.HomeScore = *p.HomeScore
	}
	if p.AwayScore != nil {
		merged.AwayScore = *p.AwayScore
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	if p.StartTime != nil {
		merged.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		merged.EndTime = *p.EndTime
	}
	if p.League != nil {
		merged.League = *p.League
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	return merged
}

// MatchFilter is the admin table view state: filters plus one sort column.
type MatchFilter struct {
	Status     *MatchStatus
	League     *LeagueTag
	Court      *string
	Date       *string
	SortBy     string
	Descending bool
}

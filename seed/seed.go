// Package seed loads the built-in league setup: leagues with their teams,
// the matches of a freshly initialized database and the tournament-day
// schedule restored by a match reset.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultData []byte

type Team struct {
	Name    string   `yaml:"name"`
	Players []string `yaml:"players"`
}

type League struct {
	Name        string           `yaml:"name"`
	Tag         models.LeagueTag `yaml:"tag"`
	Color       string           `yaml:"color"`
	Description string           `yaml:"description"`
	Teams       []Team           `yaml:"teams"`
}

type Match struct {
	Day       int                `yaml:"day"`
	Court     string             `yaml:"court"`
	Home      string             `yaml:"home"`
	Away      string             `yaml:"away"`
	HomeScore int                `yaml:"home_score"`
	AwayScore int                `yaml:"away_score"`
	Status    models.MatchStatus `yaml:"status"`
	Start     string             `yaml:"start"`
	End       string             `yaml:"end"`
	League    models.LeagueTag   `yaml:"league"`
}

type TournamentDay struct {
	Date    string  `yaml:"date"`
	Matches []Match `yaml:"matches"`
}

type Data struct {
	Leagues        []League      `yaml:"leagues"`
	InitialMatches []Match       `yaml:"initial_matches"`
	TournamentDay  TournamentDay `yaml:"tournament_day"`
}

// Default returns the embedded seed data.
func Default() (*Data, error) {
	return Parse(defaultData)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Data) validate() error {
	if len(d.Leagues) == 0 {
		return fmt.Errorf("seed data has no leagues")
	}
	for _, l := range d.Leagues {
		if !l.Tag.Valid() {
			return fmt.Errorf("seed league %q has invalid tag %q", l.Name, l.Tag)
		}
	}
	if _, err := time.Parse(time.DateOnly, d.TournamentDay.Date); err != nil {
		return fmt.Errorf("seed tournament day date %q: %w", d.TournamentDay.Date, err)
	}
	for i, m := range append(append([]Match(nil), d.InitialMatches...), d.TournamentDay.Matches...) {
		if !m.League.Valid() {
			return fmt.Errorf("seed match %d has invalid league %q", i, m.League)
		}
		if m.Status != "" && !m.Status.Valid() {
			return fmt.Errorf("seed match %d has invalid status %q", i, m.Status)
		}
		if _, err := time.Parse(clockLayout, m.Start); err != nil {
			return fmt.Errorf("seed match %d start %q: %w", i, m.Start, err)
		}
		if _, err := time.Parse(clockLayout, m.End); err != nil {
			return fmt.Errorf("seed match %d end %q: %w", i, m.End, err)
		}
	}
	return nil
}

const clockLayout = "15:04"

// ToModel builds the match for date (YYYY-MM-DD) shifted by m.Day, with
// times read as wall clock in loc. id is assigned by the caller.
func (m Match) ToModel(id, date string, loc *time.Location) (models.Match, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return models.Match{}, fmt.Errorf("invalid seed date %q: %w", date, err)
	}
	day = day.AddDate(0, 0, m.Day)

	start, err := atClock(day, m.Start, loc)
	if err != nil {
		return models.Match{}, err
	}
	end, err := atClock(day, m.End, loc)
	if err != nil {
		return models.Match{}, err
	}

	status := m.Status
	if status == "" {
		status = models.MatchStatusUpcoming
	}
	return models.Match{
		ID:        id,
		Court:     m.Court,
		HomeTeam:  m.Home,
		AwayTeam:  m.Away,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    status,
		StartTime: start,
		EndTime:   end,
		League:    m.League,
		Date:      day.Format(time.DateOnly),
	}, nil
}

func atClock(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid seed time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

package services

import (
	"context"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
	"golang.org/x/sync/errgroup"
)

// StandingsService serves the read-only views: league tables and the day
// schedule grid.
type StandingsService interface {
	Standings(ctx context.Context, leagueID *string) ([]models.LeagueStandings, error)
	ScheduleDates(ctx context.Context) ([]string, error)
	Schedule(ctx context.Context, date string, league *models.LeagueTag) (*scoring.ScheduleGrid, error)
}

type standingsService struct {
	leagueRepo repositories.LeagueRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
	loc        *time.Location
}

func NewStandingsService(
	leagueRepo repositories.LeagueRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	loc *time.Location,
) StandingsService {
	return &standingsService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		loc:        loc,
	}
}

func (s *standingsService) Standings(ctx context.Context, leagueID *string) ([]models.LeagueStandings, error) {
	var (
		leagues []models.League
		teams   []models.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if leagueID != nil && *leagueID != "" {
			var league *models.League
			league, err = s.leagueRepo.GetByID(gctx, *leagueID)
			if err == nil {
				leagues = []models.League{*league}
			}
		} else {
			leagues, err = s.leagueRepo.List(gctx)
		}
		return handleRepositoryError(err, "load leagues")
	})
	g.Go(func() error {
		var err error
		if leagueID != nil && *leagueID != "" {
			teams, err = s.teamRepo.ListByLeague(gctx, *leagueID)
		} else {
			teams, err = s.teamRepo.List(gctx)
		}
		return handleRepositoryError(err, "load teams")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byLeague := make(map[string][]models.Team, len(leagues))
	for _, t := range teams {
		byLeague[t.LeagueID] = append(byLeague[t.LeagueID], t)
	}

	out := make([]models.LeagueStandings, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, models.LeagueStandings{League: l, Rows: scoring.Rank(byLeague[l.ID])})
	}
	return out, nil
}

func (s *standingsService) ScheduleDates(ctx context.Context) ([]string, error) {
	dates, err := s.matchRepo.ListDates(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list schedule dates")
	}
	return dates, nil
}

func (s *standingsService) Schedule(ctx context.Context, date string, league *models.LeagueTag) (*scoring.ScheduleGrid, error) {
	if !datePattern.MatchString(date) {
		return nil, ErrInvalidMatchDate
	}
	if league != nil && !league.Valid() {
		return nil, ErrInvalidLeagueTag
	}
	matches, err := s.matchRepo.List(ctx, nil, models.MatchFilter{Date: &date, League: league})
	if err != nil {
		return nil, handleRepositoryError(err, "list schedule")
	}
	grid := scoring.BuildSchedule(date, matches, s.loc)
	return &grid, nil
}

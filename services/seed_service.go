package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/seed"
	"github.com/Dosada05/tennis-league/storage"
	"github.com/google/uuid"
)

// Archiver keeps a copy of the league state before it is wiped.
type Archiver interface {
	Archive(ctx context.Context, label string, v interface{}) (*storage.UploadResult, error)
	Discard(ctx context.Context, key string) error
}

type SeedService interface {
	// Initialize loads the built-in leagues, teams and matches into an empty
	// database. It does nothing once any league exists.
	Initialize(ctx context.Context) (*SeedReport, error)
	// ResetMatches replaces every match with the tournament-day schedule and
	// zeroes all team stats.
	ResetMatches(ctx context.Context) (*ResetReport, error)
}

type SeedReport struct {
	Skipped        bool     `json:"skipped"`
	LeaguesCreated int      `json:"leagues_created"`
	TeamsCreated   int      `json:"teams_created"`
	MatchesCreated int      `json:"matches_created"`
	Warnings       []string `json:"warnings,omitempty"`
}

type ResetReport struct {
	MatchesDeleted int64  `json:"matches_deleted"`
	TeamsReset     int64  `json:"teams_reset"`
	MatchesCreated int    `json:"matches_created"`
	ArchiveKey     string `json:"archive_key,omitempty"`
	ArchiveURL     string `json:"archive_url,omitempty"`
}

type resetSnapshot struct {
	TakenAt time.Time      `json:"taken_at"`
	Matches []models.Match `json:"matches"`
	Teams   []models.Team  `json:"teams"`
}

type seedService struct {
	data       *seed.Data
	leagueRepo repositories.LeagueRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
	stats      StatsService
	tx         repositories.Transactor
	archiver   Archiver
	notifier   ChangeNotifier
	loc        *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

// NewSeedService wires the seed data in. archiver may be nil, in which case
// resets are not archived.
func NewSeedService(
	data *seed.Data,
	leagueRepo repositories.LeagueRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	stats StatsService,
	tx repositories.Transactor,
	archiver Archiver,
	notifier ChangeNotifier,
	loc *time.Location,
	logger *slog.Logger,
) SeedService {
	return &seedService{
		data:       data,
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		stats:      stats,
		tx:         tx,
		archiver:   archiver,
		notifier:   notifier,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *seedService) Initialize(ctx context.Context) (*SeedReport, error) {
	count, err := s.leagueRepo.Count(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "count leagues")
	}
	report := &SeedReport{}
	if count > 0 {
		report.Skipped = true
		return report, nil
	}

	today := s.now().In(s.loc).Format(time.DateOnly)
	err = withinTx(ctx, s.tx, "initialize league data", func(exec repositories.SQLExecutor) error {
		*report = SeedReport{}
		for _, l := range s.data.Leagues {
			description := l.Description
			league := &models.League{
				ID:          uuid.NewString(),
				Name:        l.Name,
				Color:       l.Color,
				TeamIDs:     []string{},
				Description: &description,
			}
			if err := s.leagueRepo.Create(ctx, exec, league); err != nil {
				return err
			}
			report.LeaguesCreated++

			for _, t := range l.Teams {
				team := &models.Team{
					ID:       uuid.NewString(),
					Name:     t.Name,
					Players:  normalizePlayers(t.Players),
					LeagueID: league.ID,
				}
				if err := s.teamRepo.Create(ctx, exec, team); err != nil {
					return err
				}
				if err := s.leagueRepo.AddTeam(ctx, exec, league.ID, team.ID); err != nil {
					return err
				}
				report.TeamsCreated++
			}
		}

		for _, sm := range s.data.InitialMatches {
			match, err := sm.ToModel(uuid.NewString(), today, s.loc)
			if err != nil {
				return err
			}
			if err := s.matchRepo.Create(ctx, exec, &match); err != nil {
				return err
			}
			report.MatchesCreated++

			// Completed seed matches count toward the table like any other.
			outcome, err := s.stats.OnMatchUpdated(ctx, exec, models.Match{Status: models.MatchStatusUpcoming}, match)
			if err != nil {
				return err
			}
			if outcome.Warning != "" {
				report.Warnings = append(report.Warnings, fmt.Sprintf("match %s vs %s: %s", match.HomeTeam, match.AwayTeam, outcome.Warning))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "League data initialized",
		slog.Int("leagues", report.LeaguesCreated),
		slog.Int("teams", report.TeamsCreated),
		slog.Int("matches", report.MatchesCreated))
	s.notifier.LeaguesChanged(ctx)
	s.notifier.TeamsChanged(ctx)
	s.notifier.MatchesChanged(ctx)
	return report, nil
}

func (s *seedService) ResetMatches(ctx context.Context) (*ResetReport, error) {
	report := &ResetReport{}

	if s.archiver != nil {
		snapshot, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		uploaded, err := s.archiver.Archive(ctx, "before match reset", snapshot)
		if err != nil {
			return nil, fmt.Errorf("archive league state: %w", err)
		}
		report.ArchiveKey = uploaded.Key
		report.ArchiveURL = uploaded.Location
	}

	day := s.data.TournamentDay
	err := withinTx(ctx, s.tx, "reset matches", func(exec repositories.SQLExecutor) error {
		deleted, err := s.matchRepo.DeleteAll(ctx, exec)
		if err != nil {
			return err
		}
		reset, err := s.teamRepo.ResetAllStats(ctx, exec)
		if err != nil {
			return err
		}
		report.MatchesDeleted, report.TeamsReset, report.MatchesCreated = deleted, reset, 0

		for _, sm := range day.Matches {
			match, err := sm.ToModel(uuid.NewString(), day.Date, s.loc)
			if err != nil {
				return err
			}
			if err := s.matchRepo.Create(ctx, exec, &match); err != nil {
				return err
			}
			report.MatchesCreated++
		}
		return nil
	})
	if err != nil {
		s.discardArchive(ctx, report.ArchiveKey)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Matches reset to tournament day",
		slog.String("date", day.Date),
		slog.Int64("matches_deleted", report.MatchesDeleted),
		slog.Int("matches_created", report.MatchesCreated),
		slog.String("archive_key", report.ArchiveKey))
	s.notifier.MatchesChanged(ctx)
	s.notifier.TeamsChanged(ctx)
	return report, nil
}

// discardArchive drops the archive of a reset that rolled back; the data it
// holds is still live.
func (s *seedService) discardArchive(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.archiver.Discard(context.WithoutCancel(ctx), key); err != nil {
		s.logger.WarnContext(ctx, "Failed to discard archive of rolled back reset", slog.String("archive_key", key), slog.Any("error", err))
	}
}

func (s *seedService) snapshot(ctx context.Context) (*resetSnapshot, error) {
	matches, err := s.matchRepo.List(ctx, nil, models.MatchFilter{})
	if err != nil {
		return nil, handleRepositoryError(err, "list matches for archive")
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list teams for archive")
	}
	return &resetSnapshot{TakenAt: s.now().UTC(), Matches: matches, Teams: teams}, nil
}

package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/google/uuid"
)

type MatchService interface {
	// ListMatches returns every match, or only those with status. Upcoming
	// matches come by start time, completed ones latest first.
	ListMatches(ctx context.Context, status *models.MatchStatus) ([]models.Match, error)
	ListAdminMatches(ctx context.Context, filter models.MatchFilter) ([]models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	CreateMatch(ctx context.Context, input CreateMatchInput) (*MatchWriteResult, error)
	UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*MatchWriteResult, error)
	DeleteMatch(ctx context.Context, id string) (*MatchWriteResult, error)
	AutoStartDueMatches(ctx context.Context, now time.Time) (int, error)
}

type CreateMatchInput struct {
	Court     string             `json:"court"`
	HomeTeam  string             `json:"home_team"`
	AwayTeam  string             `json:"away_team"`
	HomeScore int                `json:"home_score"`
	AwayScore int                `json:"away_score"`
	Status    models.MatchStatus `json:"status"`
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
	League    models.LeagueTag   `json:"league"`
	Date      string             `json:"date"`
}

type UpdateMatchInput struct {
	models.MatchPatch
	// PropagateRenames carries a changed home/away name into the team
	// registry and every other match that used the old name.
	PropagateRenames bool `json:"propagate_renames,omitempty"`
}

type MatchWriteResult struct {
	Match   *models.Match   `json:"match"`
	Stats   StatsOutcome    `json:"stats"`
	Renames []*RenameResult `json:"renames,omitempty"`
}

// Warning is the first partial-success message of the write, if any.
func (r *MatchWriteResult) Warning() string {
	if r.Stats.Warning != "" {
		return r.Stats.Warning
	}
	for _, rn := range r.Renames {
		if rn.Warning != "" {
			return rn.Warning
		}
	}
	return ""
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	stats     StatsService
	tx        repositories.Transactor
	notifier  ChangeNotifier
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	stats StatsService,
	tx repositories.Transactor,
	notifier ChangeNotifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		stats:     stats,
		tx:        tx,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *matchService) ListMatches(ctx context.Context, status *models.MatchStatus) ([]models.Match, error) {
	filter := models.MatchFilter{Status: status}
	if status != nil {
		if !status.Valid() {
			return nil, ErrInvalidMatchStatus
		}
		if *status == models.MatchStatusCompleted {
			filter.SortBy = "end_time"
			filter.Descending = true
		}
	}
	matches, err := s.matchRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, handleRepositoryError(err, "list matches")
	}
	return matches, nil
}

func (s *matchService) ListAdminMatches(ctx context.Context, filter models.MatchFilter) ([]models.Match, error) {
	if filter.SortBy != "" && !repositories.IsValidMatchSortColumn(filter.SortBy) {
		return nil, ErrInvalidSortColumn
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidMatchStatus
	}
	if filter.League != nil && !filter.League.Valid() {
		return nil, ErrInvalidLeagueTag
	}
	matches, err := s.matchRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, handleRepositoryError(err, "list admin matches")
	}
	return matches, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	return match, nil
}

// CreateMatch inserts a match. A match created as completed counts toward
// the table right away, the same as one edited into completed.
func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*MatchWriteResult, error) {
	match := models.Match{
		ID:        uuid.NewString(),
		Court:     strings.TrimSpace(input.Court),
		HomeTeam:  strings.TrimSpace(input.HomeTeam),
		AwayTeam:  strings.TrimSpace(input.AwayTeam),
		HomeScore: input.HomeScore,
		AwayScore: input.AwayScore,
		Status:    input.Status,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		League:    input.League,
		Date:      input.Date,
	}
	if match.Status == "" {
		match.Status = models.MatchStatusUpcoming
	}
	if err := validateMatch(match); err != nil {
		return nil, err
	}

	result := &MatchWriteResult{Match: &match}
	err := withinTx(ctx, s.tx, "create match", func(exec repositories.SQLExecutor) error {
		outcome, err := s.stats.OnMatchUpdated(ctx, exec, models.Match{Status: models.MatchStatusUpcoming}, match)
		if err != nil {
			return err
		}
		result.Stats = outcome
		return s.matchRepo.Create(ctx, exec, &match)
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, result)
	return result, nil
}

// UpdateMatch merges the edit into the stored match, reconciles team stats
// for the transition and writes the match, all in one transaction. When
// the teams cannot be resolved the match is still written and the result
// carries a warning.
func (s *matchService) UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*MatchWriteResult, error) {
	if input.MatchPatch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	result := &MatchWriteResult{}
	err := withinTx(ctx, s.tx, "update match", func(exec repositories.SQLExecutor) error {
		prev, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		merged := input.MatchPatch.Merge(*prev)
		merged.HomeTeam = strings.TrimSpace(merged.HomeTeam)
		merged.AwayTeam = strings.TrimSpace(merged.AwayTeam)
		if err := validateMatch(merged); err != nil {
			return err
		}

		statsPrev := *prev
		if input.PropagateRenames {
			for _, side := range []struct{ from, to *string }{
				{&statsPrev.HomeTeam, &merged.HomeTeam},
				{&statsPrev.AwayTeam, &merged.AwayTeam},
			} {
				if *side.from == *side.to {
					continue
				}
				rn, err := propagateRename(ctx, exec, s.teamRepo, s.matchRepo, *side.from, *side.to, id)
				if err != nil {
					return err
				}
				result.Renames = append(result.Renames, rn)
				// The renamed record is the same team, so the old result
				// now belongs to the new name.
				*side.from = *side.to
			}
		}

		outcome, err := s.stats.OnMatchUpdated(ctx, exec, statsPrev, merged)
		if err != nil {
			return err
		}
		result.Stats = outcome

		if err := s.matchRepo.Update(ctx, exec, &merged); err != nil {
			return err
		}
		result.Match = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, result)
	return result, nil
}

// DeleteMatch removes a match. A completed match takes its result out of
// the table with it.
func (s *matchService) DeleteMatch(ctx context.Context, id string) (*MatchWriteResult, error) {
	result := &MatchWriteResult{}
	err := withinTx(ctx, s.tx, "delete match", func(exec repositories.SQLExecutor) error {
		prev, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		gone := *prev
		gone.Status = models.MatchStatusUpcoming
		outcome, err := s.stats.OnMatchUpdated(ctx, exec, *prev, gone)
		if err != nil {
			return err
		}
		result.Stats = outcome
		result.Match = prev
		return s.matchRepo.Delete(ctx, exec, id)
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, result)
	return result, nil
}

// AutoStartDueMatches moves upcoming matches whose start time has passed to
// ongoing. Completed matches are never touched, so stats never change here.
func (s *matchService) AutoStartDueMatches(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.matchRepo.StartDue(ctx, now)
	if err != nil {
		return 0, handleRepositoryError(err, "auto-start matches")
	}
	if len(ids) > 0 {
		s.logger.InfoContext(ctx, "Matches started", slog.Int("count", len(ids)), slog.Any("match_ids", ids))
		s.notifier.MatchesChanged(ctx)
	}
	return len(ids), nil
}

func (s *matchService) afterWrite(ctx context.Context, result *MatchWriteResult) {
	if w := result.Warning(); w != "" {
		s.logger.WarnContext(ctx, "Match written with warning", slog.String("match_id", result.Match.ID), slog.String("warning", w))
	}
	s.notifier.MatchesChanged(ctx)
	if result.Stats.Applied || len(result.Renames) > 0 {
		s.notifier.TeamsChanged(ctx)
	}
}

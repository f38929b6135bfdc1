package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
)

// StatsService is the only writer of the five team stat fields.
type StatsService interface {
	ApplyMatchResult(ctx context.Context, match models.Match) error
	RevertMatchResult(ctx context.Context, match models.Match) error
	// OnMatchUpdated reconciles team stats for moving a match from prev to
	// next using exec, so the caller can write the match in the same
	// transaction. Unresolved team names are reported as a warning in the
	// outcome and leave stats untouched; any other error must abort the
	// caller's transaction.
	OnMatchUpdated(ctx context.Context, exec repositories.SQLExecutor, prev, next models.Match) (StatsOutcome, error)
	RecalculateAll(ctx context.Context) (*RecalculationReport, error)
}

type StatsOutcome struct {
	Action     string   `json:"action"`
	Applied    bool     `json:"applied"`
	Warning    string   `json:"warning,omitempty"`
	Unresolved []string `json:"unresolved_teams,omitempty"`
}

type SkippedMatch struct {
	MatchID string `json:"match_id"`
	Reason  string `json:"reason"`
}

type RecalculationReport struct {
	TeamsReset     int            `json:"teams_reset"`
	TeamsFailed    []string       `json:"teams_failed,omitempty"`
	MatchesApplied int            `json:"matches_applied"`
	MatchesSkipped []SkippedMatch `json:"matches_skipped"`
}

type statsService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	tx        repositories.Transactor
	notifier  ChangeNotifier
	logger    *slog.Logger
}

func NewStatsService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	tx repositories.Transactor,
	notifier ChangeNotifier,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		tx:        tx,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *statsService) ApplyMatchResult(ctx context.Context, match models.Match) error {
	if !match.IsCompleted() {
		return fmt.Errorf("%w: only completed matches can be applied", ErrValidationFailed)
	}
	err := withinTx(ctx, s.tx, "apply match result", func(exec repositories.SQLExecutor) error {
		return s.reconcile(ctx, exec, scoring.ActionApply, models.Match{}, match)
	})
	if err != nil {
		return err
	}
	s.notifier.TeamsChanged(ctx)
	return nil
}

func (s *statsService) RevertMatchResult(ctx context.Context, match models.Match) error {
	if !match.IsCompleted() {
		return fmt.Errorf("%w: only completed matches can be reverted", ErrValidationFailed)
	}
	err := withinTx(ctx, s.tx, "revert match result", func(exec repositories.SQLExecutor) error {
		return s.reconcile(ctx, exec, scoring.ActionRevert, match, models.Match{})
	})
	if err != nil {
		return err
	}
	s.notifier.TeamsChanged(ctx)
	return nil
}

func (s *statsService) OnMatchUpdated(ctx context.Context, exec repositories.SQLExecutor, prev, next models.Match) (StatsOutcome, error) {
	action := scoring.Transition(prev, next)
	outcome := StatsOutcome{Action: action.String()}
	if action == scoring.ActionNone {
		return outcome, nil
	}

	err := s.reconcile(ctx, exec, action, prev, next)
	var unresolved *UnresolvedTeamsError
	switch {
	case err == nil:
		outcome.Applied = true
	case errors.As(err, &unresolved):
		s.logger.WarnContext(ctx, "Team stats not updated, team names unresolved",
			slog.String("match_id", next.ID),
			slog.String("action", outcome.Action),
			slog.Any("teams", unresolved.Names))
		outcome.Warning = err.Error()
		outcome.Unresolved = unresolved.Names
	default:
		return outcome, err
	}
	return outcome, nil
}

// RecalculateAll rebuilds every team's stats from the completed matches.
// Only a permission failure aborts; other per-team and per-match failures
// are logged and reported.
func (s *statsService) RecalculateAll(ctx context.Context) (*RecalculationReport, error) {
	report := &RecalculationReport{MatchesSkipped: []SkippedMatch{}}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list teams for recalculation")
	}

	for _, team := range teams {
		if err := s.teamRepo.UpdateStats(ctx, nil, team.ID, models.TeamStats{}); err != nil {
			if errors.Is(err, repositories.ErrPermissionDenied) {
				return nil, handleRepositoryError(err, "reset team stats")
			}
			s.logger.WarnContext(ctx, "Failed to reset team stats", slog.String("team_id", team.ID), slog.Any("error", err))
			report.TeamsFailed = append(report.TeamsFailed, team.ID)
			continue
		}
		report.TeamsReset++
	}

	completed := models.MatchStatusCompleted
	matches, err := s.matchRepo.List(ctx, nil, models.MatchFilter{Status: &completed})
	if err != nil {
		return nil, handleRepositoryError(err, "list completed matches")
	}

	for _, match := range matches {
		err := withinTx(ctx, s.tx, "apply match "+match.ID, func(exec repositories.SQLExecutor) error {
			return s.reconcile(ctx, exec, scoring.ActionApply, models.Match{}, match)
		})
		if err != nil {
			if errors.Is(err, ErrPermissionDenied) {
				return nil, err
			}
			s.logger.WarnContext(ctx, "Skipping match during recalculation", slog.String("match_id", match.ID), slog.Any("error", err))
			report.MatchesSkipped = append(report.MatchesSkipped, SkippedMatch{MatchID: match.ID, Reason: err.Error()})
			continue
		}
		report.MatchesApplied++
	}

	s.logger.InfoContext(ctx, "Team stats recalculated",
		slog.Int("teams_reset", report.TeamsReset),
		slog.Int("matches_applied", report.MatchesApplied),
		slog.Int("matches_skipped", len(report.MatchesSkipped)))

	s.notifier.TeamsChanged(ctx)
	return report, nil
}

// reconcile resolves every team the action touches before writing anything,
// works the deltas out in memory and then writes each touched team once.
func (s *statsService) reconcile(ctx context.Context, exec repositories.SQLExecutor, action scoring.Action, prev, next models.Match) error {
	var names []string
	if action == scoring.ActionRevert || action == scoring.ActionRevertApply {
		names = append(names, prev.HomeTeam, prev.AwayTeam)
	}
	if action == scoring.ActionApply || action == scoring.ActionRevertApply {
		names = append(names, next.HomeTeam, next.AwayTeam)
	}

	resolved, err := s.resolveTeams(ctx, exec, names)
	if err != nil {
		return err
	}

	touched := make(map[string]*models.Team)
	get := func(name string) *models.Team {
		team := resolved[name]
		if t, ok := touched[team.ID]; ok {
			return t
		}
		t := team
		touched[team.ID] = &t
		return &t
	}
	pair := func(m models.Match) (*models.Team, *models.Team, error) {
		home, away := get(m.HomeTeam), get(m.AwayTeam)
		if home.ID == away.ID {
			return nil, nil, ErrMatchSameTeams
		}
		return home, away, nil
	}

	if action == scoring.ActionRevert || action == scoring.ActionRevertApply {
		home, away, err := pair(prev)
		if err != nil {
			return err
		}
		home.TeamStats, away.TeamStats = scoring.Revert(home.TeamStats, away.TeamStats, prev.HomeScore, prev.AwayScore)
	}
	if action == scoring.ActionApply || action == scoring.ActionRevertApply {
		home, away, err := pair(next)
		if err != nil {
			return err
		}
		home.TeamStats, away.TeamStats = scoring.Apply(home.TeamStats, away.TeamStats, next.HomeScore, next.AwayScore)
	}

	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := s.teamRepo.UpdateStats(ctx, exec, id, touched[id].TeamStats); err != nil {
			return handleRepositoryError(err, "update team stats")
		}
	}
	return nil
}

// resolveTeams requires every name to match exactly one team record. Names
// are looked up in sorted order so concurrent transactions lock team rows in
// the same order.
func (s *statsService) resolveTeams(ctx context.Context, exec repositories.SQLExecutor, names []string) (map[string]models.Team, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	resolved := make(map[string]models.Team, len(sorted))
	var missing []string
	for _, name := range sorted {
		if _, done := resolved[name]; done {
			continue
		}
		teams, err := s.teamRepo.FindByName(ctx, exec, name)
		if err != nil {
			return nil, handleRepositoryError(err, "resolve team "+name)
		}
		if len(teams) != 1 {
			if !containsString(missing, name) {
				missing = append(missing, name)
			}
			continue
		}
		resolved[name] = teams[0]
	}
	if len(missing) > 0 {
		return nil, &UnresolvedTeamsError{Names: missing}
	}
	return resolved, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

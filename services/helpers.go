package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// handleRepositoryError - общий хелпер для ошибок репозитория
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPermissionDenied):
		return fmt.Errorf("%s: %w (%v)", op, ErrPermissionDenied, err)
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrLeagueNotFound):
		return ErrLeagueNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrLeagueNameConflict):
		return ErrLeagueNameConflict
	case errors.Is(err, repositories.ErrLeagueInUse):
		return ErrLeagueInUse
	case errors.Is(err, repositories.ErrTeamLeagueInvalid):
		return ErrLeagueNotFound
	case errors.Is(err, repositories.ErrMatchInvalidSort):
		return ErrInvalidSortColumn
	case errors.Is(err, repositories.ErrMatchInvalidFields), errors.Is(err, repositories.ErrTeamStatsNegative):
		return fmt.Errorf("%s: %w: %v", op, ErrValidationFailed, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// withinTx runs fn in one transaction and maps whatever comes out of it,
// including commit failures, to service errors.
func withinTx(ctx context.Context, tx repositories.Transactor, op string, fn func(exec repositories.SQLExecutor) error) error {
	return handleRepositoryError(tx.WithinTx(ctx, fn), op)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func validateMatch(m models.Match) error {
	if strings.TrimSpace(m.HomeTeam) == "" || strings.TrimSpace(m.AwayTeam) == "" {
		return ErrMatchTeamsRequired
	}
	if m.HomeTeam == m.AwayTeam {
		return ErrMatchSameTeams
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return ErrInvalidScore
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMatchStatus, m.Status)
	}
	if !m.League.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLeagueTag, m.League)
	}
	if !datePattern.MatchString(m.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidMatchDate, m.Date)
	}
	if !m.StartTime.IsZero() && !m.EndTime.IsZero() && m.EndTime.Before(m.StartTime) {
		return ErrInvalidMatchTimes
	}
	return nil
}

func normalizePlayers(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	ErrMatchNotFound  = fmt.Errorf("match: %w", ErrNotFound)
	ErrTeamNotFound   = fmt.Errorf("team: %w", ErrNotFound)
	ErrLeagueNotFound = fmt.Errorf("league: %w", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user: %w", ErrNotFound)
	ErrUnknownRoom    = fmt.Errorf("realtime room: %w", ErrNotFound)

	// Ошибки валидации
	ErrValidationFailed    = errors.New("validation failed")
	ErrTeamNameRequired    = fmt.Errorf("%w: team name is required", ErrValidationFailed)
	ErrLeagueNameRequired  = fmt.Errorf("%w: league name is required", ErrValidationFailed)
	ErrInvalidMatchStatus  = fmt.Errorf("%w: invalid match status", ErrValidationFailed)
	ErrInvalidLeagueTag    = fmt.Errorf("%w: invalid league", ErrValidationFailed)
	ErrInvalidScore        = fmt.Errorf("%w: scores must not be negative", ErrValidationFailed)
	ErrInvalidMatchDate    = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidationFailed)
	ErrInvalidMatchTimes   = fmt.Errorf("%w: end time must not be before start time", ErrValidationFailed)
	ErrMatchTeamsRequired  = fmt.Errorf("%w: home and away team are required", ErrValidationFailed)
	ErrMatchSameTeams      = fmt.Errorf("%w: a team cannot play itself", ErrValidationFailed)
	ErrInvalidSortColumn   = fmt.Errorf("%w: unsupported sort column", ErrValidationFailed)
	ErrEmptyUpdate         = fmt.Errorf("%w: nothing to update", ErrValidationFailed)
	ErrRenameNamesRequired = fmt.Errorf("%w: old and new team names are required", ErrValidationFailed)

	// Ошибки конфликтов
	ErrConflict           = errors.New("conflict")
	ErrTeamNameConflict   = fmt.Errorf("%w: team name is already in use in this league", ErrConflict)
	ErrLeagueNameConflict = fmt.Errorf("%w: league name already exists", ErrConflict)
	ErrLeagueInUse        = fmt.Errorf("%w: league still has teams", ErrConflict)

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied by the data store")

	// Имя команды в матче не соответствует ровно одной команде
	ErrTeamNameUnresolved = errors.New("team name unresolved")
)

// UnresolvedTeamsError names every team name that matched zero or several
// team records.
type UnresolvedTeamsError struct {
	Names []string
}

func (e *UnresolvedTeamsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTeamNameUnresolved, strings.Join(e.Names, ", "))
}

func (e *UnresolvedTeamsError) Unwrap() error {
	return ErrTeamNameUnresolved
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
	"github.com/google/uuid"
)

type TeamService interface {
	ListTeams(ctx context.Context, leagueID *string) ([]models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*TeamUpdateResult, error)
	DeleteTeam(ctx context.Context, id string) error
	PropagateRename(ctx context.Context, oldName, newName, excludeMatchID string) (*RenameResult, error)
}

type CreateTeamInput struct {
	Name     string   `json:"name"`
	Players  []string `json:"players"`
	LeagueID string   `json:"league_id"`
}

type UpdateTeamInput struct {
	Name     *string  `json:"name,omitempty"`
	Players  []string `json:"players,omitempty"`
	LeagueID *string  `json:"league_id,omitempty"`
}

type TeamUpdateResult struct {
	Team           *models.Team `json:"team"`
	MatchesRenamed int64        `json:"matches_renamed"`
}

// RenameResult describes what a rename touched. An empty TeamsRenamed with a
// Warning is a partial success: matches were rewritten, no team record was.
// TeamsSkipped lists hits left alone because their league already has a team
// with the new name.
type RenameResult struct {
	MatchesUpdated int64                `json:"matches_updated"`
	TeamsRenamed   []string             `json:"teams_renamed"`
	TeamsSkipped   []string             `json:"teams_skipped,omitempty"`
	Method         scoring.RenameMethod `json:"method,omitempty"`
	Warning        string               `json:"warning,omitempty"`
}

func (r *RenameResult) TeamRenamed() bool {
	return len(r.TeamsRenamed) > 0
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	leagueRepo repositories.LeagueRepository
	matchRepo  repositories.MatchRepository
	tx         repositories.Transactor
	notifier   ChangeNotifier
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	leagueRepo repositories.LeagueRepository,
	matchRepo repositories.MatchRepository,
	tx repositories.Transactor,
	notifier ChangeNotifier,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		tx:         tx,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *teamService) ListTeams(ctx context.Context, leagueID *string) ([]models.Team, error) {
	var (
		teams []models.Team
		err   error
	)
	if leagueID != nil && *leagueID != "" {
		teams, err = s.teamRepo.ListByLeague(ctx, *leagueID)
	} else {
		teams, err = s.teamRepo.List(ctx)
	}
	if err != nil {
		return nil, handleRepositoryError(err, "list teams")
	}
	return teams, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}
	return team, nil
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if _, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return nil, handleRepositoryError(err, "get team league")
	}

	team := &models.Team{
		ID:       uuid.NewString(),
		Name:     name,
		Players:  normalizePlayers(input.Players),
		LeagueID: input.LeagueID,
	}

	err := withinTx(ctx, s.tx, "create team", func(exec repositories.SQLExecutor) error {
		if err := s.teamRepo.Create(ctx, exec, team); err != nil {
			return err
		}
		return s.leagueRepo.AddTeam(ctx, exec, team.LeagueID, team.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Team created", slog.String("team_id", team.ID), slog.String("name", team.Name))
	s.notifier.TeamsChanged(ctx)
	s.notifier.LeaguesChanged(ctx)
	return team, nil
}

// UpdateTeam edits name, roster and league. A new name is carried into
// every match that referenced the old one.
func (s *teamService) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*TeamUpdateResult, error) {
	if input.Name == nil && input.Players == nil && input.LeagueID == nil {
		return nil, ErrEmptyUpdate
	}

	result := &TeamUpdateResult{}
	leagueChanged := false
	err := withinTx(ctx, s.tx, "update team", func(exec repositories.SQLExecutor) error {
		team, err := s.teamRepo.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		oldName, oldLeague := team.Name, team.LeagueID

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrTeamNameRequired
			}
			team.Name = name
		}
		if input.Players != nil {
			team.Players = normalizePlayers(input.Players)
		}
		if input.LeagueID != nil {
			team.LeagueID = *input.LeagueID
		}

		if err := s.teamRepo.Update(ctx, exec, team); err != nil {
			return err
		}

		if team.LeagueID != oldLeague {
			leagueChanged = true
			if err := s.leagueRepo.RemoveTeam(ctx, exec, oldLeague, team.ID); err != nil {
				return err
			}
			if err := s.leagueRepo.AddTeam(ctx, exec, team.LeagueID, team.ID); err != nil {
				return err
			}
		}

		if team.Name != oldName {
			n, err := s.matchRepo.RenameTeam(ctx, exec, oldName, team.Name, "")
			if err != nil {
				return err
			}
			result.MatchesRenamed = n
		}
		result.Team = team
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.TeamsChanged(ctx)
	if result.MatchesRenamed > 0 {
		s.notifier.MatchesChanged(ctx)
	}
	if leagueChanged {
		s.notifier.LeaguesChanged(ctx)
	}
	return result, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	err := withinTx(ctx, s.tx, "delete team", func(exec repositories.SQLExecutor) error {
		team, err := s.teamRepo.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		if err := s.teamRepo.Delete(ctx, exec, id); err != nil {
			return err
		}
		return s.leagueRepo.RemoveTeam(ctx, exec, team.LeagueID, id)
	})
	if err != nil {
		return err
	}

	s.notifier.TeamsChanged(ctx)
	s.notifier.LeaguesChanged(ctx)
	return nil
}

func (s *teamService) PropagateRename(ctx context.Context, oldName, newName, excludeMatchID string) (*RenameResult, error) {
	var result *RenameResult
	err := withinTx(ctx, s.tx, "propagate team rename", func(exec repositories.SQLExecutor) error {
		var err error
		result, err = propagateRename(ctx, exec, s.teamRepo, s.matchRepo, oldName, newName, excludeMatchID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logRename(ctx, oldName, newName, result)
	s.notifier.MatchesChanged(ctx)
	if result.TeamRenamed() {
		s.notifier.TeamsChanged(ctx)
	}
	return result, nil
}

func (s *teamService) logRename(ctx context.Context, oldName, newName string, result *RenameResult) {
	attrs := []any{
		slog.String("old_name", oldName),
		slog.String("new_name", newName),
		slog.Int64("matches_updated", result.MatchesUpdated),
		slog.String("method", string(result.Method)),
	}
	if !result.TeamRenamed() {
		s.logger.WarnContext(ctx, "Matches renamed but no team record matched", attrs...)
		return
	}
	s.logger.InfoContext(ctx, "Team renamed", attrs...)
}

// propagateRename rewrites matches that reference oldName, then renames the
// team records the rename cascade picks. Names are unique per league, so only
// the first hit in each league is renamed and the rest are reported as
// skipped. Shared by team and match edits so both can run it inside their own
// transaction.
func propagateRename(
	ctx context.Context,
	exec repositories.SQLExecutor,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	oldName, newName, excludeMatchID string,
) (*RenameResult, error) {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return nil, ErrRenameNamesRequired
	}

	result := &RenameResult{TeamsRenamed: []string{}}
	if oldName == newName {
		return result, nil
	}

	n, err := matchRepo.RenameTeam(ctx, exec, oldName, newName, excludeMatchID)
	if err != nil {
		return nil, err
	}
	result.MatchesUpdated = n

	teams, err := teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	targets, method := scoring.ResolveRenameTargets(teams, oldName)
	result.Method = method
	if len(targets) == 0 {
		result.Warning = fmt.Sprintf("no team record matches %q; only matches were renamed", oldName)
		return result, nil
	}

	// Лиги, где имя newName уже занято.
	taken := make(map[string]bool)
	for _, t := range teams {
		if t.Name == newName {
			taken[t.LeagueID] = true
		}
	}
	var skippedNames []string
	for _, t := range targets {
		if t.Name == newName {
			continue
		}
		if taken[t.LeagueID] {
			result.TeamsSkipped = append(result.TeamsSkipped, t.ID)
			skippedNames = append(skippedNames, t.Name)
			continue
		}
		if err := teamRepo.UpdateName(ctx, exec, t.ID, newName); err != nil {
			return nil, err
		}
		taken[t.LeagueID] = true
		result.TeamsRenamed = append(result.TeamsRenamed, t.ID)
	}
	if len(skippedNames) > 0 {
		result.Warning = fmt.Sprintf("%q already names a team in the same league; not renamed: %s",
			newName, strings.Join(skippedNames, ", "))
	}
	return result, nil
}

package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/google/uuid"
)

type LeagueService interface {
	ListLeagues(ctx context.Context) ([]models.League, error)
	GetLeague(ctx context.Context, id string) (*models.League, error)
	CreateLeague(ctx context.Context, input LeagueInput) (*models.League, error)
	UpdateLeague(ctx context.Context, id string, input UpdateLeagueInput) (*models.League, error)
	DeleteLeague(ctx context.Context, id string) error
}

type LeagueInput struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
}

type UpdateLeagueInput struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	notifier   ChangeNotifier
	logger     *slog.Logger
}

func NewLeagueService(leagueRepo repositories.LeagueRepository, notifier ChangeNotifier, logger *slog.Logger) LeagueService {
	return &leagueService{leagueRepo: leagueRepo, notifier: notifier, logger: logger}
}

func (s *leagueService) ListLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list leagues")
	}
	return leagues, nil
}

func (s *leagueService) GetLeague(ctx context.Context, id string) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	return league, nil
}

func (s *leagueService) CreateLeague(ctx context.Context, input LeagueInput) (*models.League, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrLeagueNameRequired
	}
	league := &models.League{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       strings.TrimSpace(input.Color),
		TeamIDs:     []string{},
		Description: input.Description,
	}
	if err := s.leagueRepo.Create(ctx, nil, league); err != nil {
		return nil, handleRepositoryError(err, "create league")
	}
	s.logger.InfoContext(ctx, "League created", slog.String("league_id", league.ID), slog.String("name", league.Name))
	s.notifier.LeaguesChanged(ctx)
	return league, nil
}

func (s *leagueService) UpdateLeague(ctx context.Context, id string, input UpdateLeagueInput) (*models.League, error) {
	if input.Name == nil && input.Color == nil && input.Description == nil {
		return nil, ErrEmptyUpdate
	}
	league, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get league")
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrLeagueNameRequired
		}
		league.Name = name
	}
	if input.Color != nil {
		league.Color = strings.TrimSpace(*input.Color)
	}
	if input.Description != nil {
		// An empty description clears it.
		if d := strings.TrimSpace(derefString(input.Description)); d != "" {
			league.Description = &d
		} else {
			league.Description = nil
		}
	}
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, handleRepositoryError(err, "update league")
	}
	s.notifier.LeaguesChanged(ctx)
	return league, nil
}

func (s *leagueService) DeleteLeague(ctx context.Context, id string) error {
	if err := s.leagueRepo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, "delete league")
	}
	s.notifier.LeaguesChanged(ctx)
	return nil
}

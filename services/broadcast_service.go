package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
)

// Realtime rooms. Each carries the full result set of one query.
const (
	RoomMatches        = "matches"
	RoomOngoingMatches = "matches:ongoing"
	RoomTeams          = "teams"
	RoomLeagues        = "leagues"
)

type Publisher interface {
	Publish(room string, payload interface{})
}

// KnownRoom reports whether room is one of the realtime rooms.
func KnownRoom(room string) bool {
	switch room {
	case RoomMatches, RoomOngoingMatches, RoomTeams, RoomLeagues:
		return true
	}
	return false
}

// ChangeNotifier pushes fresh snapshots after writes and serves the first
// snapshot a new subscriber gets.
type ChangeNotifier interface {
	Snapshot(ctx context.Context, room string) (interface{}, error)
	// Subscribe loads the current snapshot of room and hands it to join,
	// which must register the subscriber before returning. No publish to
	// room runs in between, so the subscriber never misses a later write.
	Subscribe(ctx context.Context, room string, join func(initial interface{}) error) error
	MatchesChanged(ctx context.Context)
	TeamsChanged(ctx context.Context)
	LeaguesChanged(ctx context.Context)
}

type broadcastService struct {
	matchRepo  repositories.MatchRepository
	teamRepo   repositories.TeamRepository
	leagueRepo repositories.LeagueRepository
	publisher  Publisher
	logger     *slog.Logger

	// roomLocks order loads and publishes per room so an older snapshot is
	// never delivered after a newer one.
	roomLocks map[string]*sync.Mutex
}

func NewBroadcastService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	leagueRepo repositories.LeagueRepository,
	publisher Publisher,
	logger *slog.Logger,
) ChangeNotifier {
	return &broadcastService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		publisher:  publisher,
		logger:     logger,
		roomLocks: map[string]*sync.Mutex{
			RoomMatches:        {},
			RoomOngoingMatches: {},
			RoomTeams:          {},
			RoomLeagues:        {},
		},
	}
}

func (s *broadcastService) Snapshot(ctx context.Context, room string) (interface{}, error) {
	var (
		payload interface{}
		err     error
	)
	if !KnownRoom(room) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, room)
	}
	switch room {
	case RoomMatches:
		payload, err = s.matchRepo.List(ctx, nil, models.MatchFilter{})
	case RoomOngoingMatches:
		ongoing := models.MatchStatusOngoing
		payload, err = s.matchRepo.List(ctx, nil, models.MatchFilter{Status: &ongoing})
	case RoomTeams:
		payload, err = s.teamRepo.List(ctx)
	case RoomLeagues:
		payload, err = s.leagueRepo.List(ctx)
	}
	if err != nil {
		return nil, handleRepositoryError(err, "load "+room+" snapshot")
	}
	return payload, nil
}

func (s *broadcastService) Subscribe(ctx context.Context, room string, join func(initial interface{}) error) error {
	if !KnownRoom(room) {
		return fmt.Errorf("%w: %q", ErrUnknownRoom, room)
	}
	lock := s.roomLocks[room]
	lock.Lock()
	defer lock.Unlock()

	payload, err := s.Snapshot(ctx, room)
	if err != nil {
		return err
	}
	return join(payload)
}

func (s *broadcastService) MatchesChanged(ctx context.Context) {
	s.publish(ctx, RoomMatches)
	s.publish(ctx, RoomOngoingMatches)
}

func (s *broadcastService) TeamsChanged(ctx context.Context) {
	s.publish(ctx, RoomTeams)
}

func (s *broadcastService) LeaguesChanged(ctx context.Context) {
	s.publish(ctx, RoomLeagues)
}

// publish never fails the caller: the write it follows has already committed.
func (s *broadcastService) publish(ctx context.Context, room string) {
	lock := s.roomLocks[room]
	lock.Lock()
	defer lock.Unlock()

	payload, err := s.Snapshot(ctx, room)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load realtime snapshot", slog.String("room", room), slog.Any("error", err))
		return
	}
	s.publisher.Publish(room, payload)
}

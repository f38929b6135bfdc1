package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	league, err := env.leagueSvc.CreateLeague(ctx, LeagueInput{Name: " Men A ", Color: "men-a-bg", Description: ptr("상급자 부문")})
	require.NoError(t, err)
	assert.Equal(t, "Men A", league.Name)
	assert.Empty(t, league.TeamIDs)

	_, err = env.leagueSvc.CreateLeague(ctx, LeagueInput{Name: "Men A"})
	assert.ErrorIs(t, err, ErrLeagueNameConflict)
	_, err = env.leagueSvc.CreateLeague(ctx, LeagueInput{Name: "  "})
	assert.ErrorIs(t, err, ErrLeagueNameRequired)

	updated, err := env.leagueSvc.UpdateLeague(ctx, league.ID, UpdateLeagueInput{Color: ptr("gold"), Description: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "gold", updated.Color)
	assert.Nil(t, updated.Description)

	_, err = env.leagueSvc.UpdateLeague(ctx, league.ID, UpdateLeagueInput{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	env.addTeamIn(t, league.ID, "a", "Aces")
	assert.ErrorIs(t, env.leagueSvc.DeleteLeague(ctx, league.ID), ErrLeagueInUse)

	require.NoError(t, env.teamSvc.DeleteTeam(ctx, "a"))
	require.NoError(t, env.leagueSvc.DeleteLeague(ctx, league.ID))
	_, err = env.leagueSvc.GetLeague(ctx, league.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

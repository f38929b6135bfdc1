package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tennis-league/middleware"
	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/scoring"
	"github.com/Dosada05/tennis-league/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Login(ctx context.Context, input services.LoginInput) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	return nil
}

type stubMatchService struct {
	services.MatchService
	gotFilter models.MatchFilter
	gotPatch  services.UpdateMatchInput
	update    *services.MatchWriteResult
	err       error
}

func (s *stubMatchService) ListAdminMatches(ctx context.Context, filter models.MatchFilter) ([]models.Match, error) {
	s.gotFilter = filter
	return []models.Match{}, s.err
}

func (s *stubMatchService) UpdateMatch(ctx context.Context, id string, input services.UpdateMatchInput) (*services.MatchWriteResult, error) {
	s.gotPatch = input
	return s.update, s.err
}

type stubStandingsService struct {
	services.StandingsService
	gotDate   string
	gotLeague *models.LeagueTag
}

func (s *stubStandingsService) Schedule(ctx context.Context, date string, league *models.LeagueTag) (*scoring.ScheduleGrid, error) {
	s.gotDate, s.gotLeague = date, league
	return &scoring.ScheduleGrid{Date: date, Courts: []string{}, Slots: []scoring.ScheduleSlot{}}, nil
}

type stubStatsService struct {
	services.StatsService
	err error
}

func (s *stubStatsService) RecalculateAll(ctx context.Context) (*services.RecalculationReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.RecalculationReport{TeamsReset: 17, MatchesApplied: 1, MatchesSkipped: []services.SkippedMatch{}}, nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAuthHandlerLogin(t *testing.T) {
	secret := "test-secret"
	h := NewAuthHandler(&stubAuthService{user: &models.User{ID: "u1", Email: "admin@league.kr", IsAdmin: true}}, secret)
	h.now = func() time.Time { return time.Now() }

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@league.kr","password":"tennis-admin"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	tokenString, ok := body["token"].(string)
	require.True(t, ok)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) { return []byte(secret), nil })
	require.NoError(t, err)
	assert.Equal(t, "u1", claims[middleware.JWTClaimUserID])
	assert.Equal(t, "admin", claims[middleware.JWTClaimRole])
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrInvalidCredentials}, "secret")

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAdminMatchesQuery(t *testing.T) {
	svc := &stubMatchService{}
	h := NewMatchHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/matches?status=completed&league=menB&court=2%EC%BD%94%ED%8A%B8&sort=end_time&order=DESC", nil)
	rec := httptest.NewRecorder()
	h.ListAdminMatches(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.gotFilter.Status)
	assert.Equal(t, models.MatchStatusCompleted, *svc.gotFilter.Status)
	assert.Equal(t, models.LeagueMenB, *svc.gotFilter.League)
	assert.Equal(t, "2코트", *svc.gotFilter.Court)
	assert.Nil(t, svc.gotFilter.Date)
	assert.Equal(t, "end_time", svc.gotFilter.SortBy)
	assert.True(t, svc.gotFilter.Descending)

	rec = httptest.NewRecorder()
	h.ListAdminMatches(rec, httptest.NewRequest(http.MethodGet, "/api/admin/matches?order=sideways", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = services.ErrInvalidSortColumn
	rec = httptest.NewRecorder()
	h.ListAdminMatches(rec, httptest.NewRequest(http.MethodGet, "/api/admin/matches?sort=password", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMatchReturnsWarning(t *testing.T) {
	match := &models.Match{ID: "m1", HomeTeam: "Ghost", AwayTeam: "B1", Status: models.MatchStatusCompleted}
	svc := &stubMatchService{update: &services.MatchWriteResult{
		Match: match,
		Stats: services.StatsOutcome{Action: "apply", Warning: "team name unresolved: Ghost", Unresolved: []string{"Ghost"}},
	}}
	h := NewMatchHandler(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/matches/m1", strings.NewReader(`{"status":"completed","home_score":6,"away_score":3}`))
	rec := httptest.NewRecorder()
	h.UpdateMatch(rec, withURLParam(req, "matchID", "m1"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "team name unresolved: Ghost", body["warning"])
	require.NotNil(t, svc.gotPatch.Status)
	assert.Equal(t, 6, *svc.gotPatch.HomeScore)
}

func TestUpdateMatchNotFound(t *testing.T) {
	h := NewMatchHandler(&stubMatchService{err: services.ErrMatchNotFound})

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/matches/nope", strings.NewReader(`{"court":"1코트"}`))
	rec := httptest.NewRecorder()
	h.UpdateMatch(rec, withURLParam(req, "matchID", "nope"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleHandler(t *testing.T) {
	svc := &stubStandingsService{}
	h := NewStandingsHandler(svc)

	rec := httptest.NewRecorder()
	h.Schedule(rec, httptest.NewRequest(http.MethodGet, "/api/schedule?date=2025-04-13&league=beginners", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-04-13", svc.gotDate)
	require.NotNil(t, svc.gotLeague)
	assert.Equal(t, models.LeagueBeginners, *svc.gotLeague)

	rec = httptest.NewRecorder()
	h.Schedule(rec, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecalculateStatsHandler(t *testing.T) {
	h := NewAdminHandler(&stubStatsService{}, nil)
	rec := httptest.NewRecorder()
	h.RecalculateStats(rec, httptest.NewRequest(http.MethodPost, "/api/admin/stats/recalculate", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 17, decodeBody(t, rec)["teams_reset"])

	h = NewAdminHandler(&stubStatsService{err: errors.Join(services.ErrPermissionDenied)}, nil)
	rec = httptest.NewRecorder()
	h.RecalculateStats(rec, httptest.NewRequest(http.MethodPost, "/api/admin/stats/recalculate", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

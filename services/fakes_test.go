package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/stretchr/testify/require"
)

// memStore backs every fake repository. memTx snapshots it so a failed
// transaction leaves no trace, like the real database would.
type memStore struct {
	mu      sync.Mutex
	teams   map[string]models.Team
	matches map[string]models.Match
	leagues map[string]models.League
	users   map[string]models.User

	updateStatsErr error
	// updateStatsFail, when set, is asked before every stats write and can
	// fail a single team or a single phase.
	updateStatsFail func(teamID string, stats models.TeamStats) error
}

func newMemStore() *memStore {
	return &memStore{
		teams:   map[string]models.Team{},
		matches: map[string]models.Match{},
		leagues: map[string]models.League{},
		users:   map[string]models.User{},
	}
}

type memState struct {
	teams   map[string]models.Team
	matches map[string]models.Match
	leagues map[string]models.League
	users   map[string]models.User
}

func (s *memStore) save() memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := memState{
		teams:   make(map[string]models.Team, len(s.teams)),
		matches: make(map[string]models.Match, len(s.matches)),
		leagues: make(map[string]models.League, len(s.leagues)),
		users:   make(map[string]models.User, len(s.users)),
	}
	for k, v := range s.teams {
		v.Players = append([]string(nil), v.Players...)
		st.teams[k] = v
	}
	for k, v := range s.matches {
		st.matches[k] = v
	}
	for k, v := range s.leagues {
		v.TeamIDs = append([]string(nil), v.TeamIDs...)
		st.leagues[k] = v
	}
	for k, v := range s.users {
		st.users[k] = v
	}
	return st
}

func (s *memStore) restore(st memState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams, s.matches, s.leagues, s.users = st.teams, st.matches, st.leagues, st.users
}

type memTx struct {
	store *memStore
	calls int
}

func (t *memTx) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.calls++
	saved := t.store.save()
	if err := fn(nil); err != nil {
		t.store.restore(saved)
		return err
	}
	return nil
}

// --- teams ---

type memTeamRepo struct{ s *memStore }

func (r *memTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leagues[team.LeagueID]; !ok {
		return repositories.ErrTeamLeagueInvalid
	}
	for _, t := range r.s.teams {
		if t.LeagueID == team.LeagueID && t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	r.s.teams[team.ID] = *team
	return nil
}

func (r *memTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *memTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	return r.filter(func(models.Team) bool { return true }), nil
}

func (r *memTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]models.Team, error) {
	return r.filter(func(t models.Team) bool { return t.LeagueID == leagueID }), nil
}

func (r *memTeamRepo) FindByName(ctx context.Context, exec repositories.SQLExecutor, name string) ([]models.Team, error) {
	teams := r.filter(func(t models.Team) bool { return t.Name == name })
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *memTeamRepo) filter(keep func(models.Team) bool) []models.Team {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Team, 0)
	for _, t := range r.s.teams {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *memTeamRepo) Update(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.teams[team.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if _, ok := r.s.leagues[team.LeagueID]; !ok {
		return repositories.ErrTeamLeagueInvalid
	}
	for _, t := range r.s.teams {
		if t.ID != team.ID && t.LeagueID == team.LeagueID && t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	cur.Name, cur.Players, cur.LeagueID = team.Name, team.Players, team.LeagueID
	r.s.teams[team.ID] = cur
	return nil
}

func (r *memTeamRepo) UpdateName(ctx context.Context, exec repositories.SQLExecutor, id, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	for _, other := range r.s.teams {
		if other.ID != id && other.LeagueID == t.LeagueID && other.Name == name {
			return repositories.ErrTeamNameConflict
		}
	}
	t.Name = name
	r.s.teams[id] = t
	return nil
}

func (r *memTeamRepo) UpdateStats(ctx context.Context, exec repositories.SQLExecutor, id string, stats models.TeamStats) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateStatsErr != nil {
		return r.s.updateStatsErr
	}
	if r.s.updateStatsFail != nil {
		if err := r.s.updateStatsFail(id, stats); err != nil {
			return err
		}
	}
	t, ok := r.s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if stats.Wins < 0 || stats.Losses < 0 || stats.Points < 0 || stats.GoalsScored < 0 || stats.GoalsConceded < 0 {
		return repositories.ErrTeamStatsNegative
	}
	t.TeamStats = stats
	r.s.teams[id] = t
	return nil
}

func (r *memTeamRepo) ResetAllStats(ctx context.Context, exec repositories.SQLExecutor) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, t := range r.s.teams {
		t.TeamStats = models.TeamStats{}
		r.s.teams[id] = t
	}
	return int64(len(r.s.teams)), nil
}

func (r *memTeamRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.s.teams, id)
	return nil
}

// --- matches ---

type memMatchRepo struct{ s *memStore }

func (r *memMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.matches[match.ID] = *match
	return nil
}

func (r *memMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func matchSortKey(m models.Match, column string) string {
	switch column {
	case "end_time":
		return m.EndTime.UTC().Format(time.RFC3339Nano)
	case "court":
		return m.Court
	case "home_team":
		return m.HomeTeam
	case "away_team":
		return m.AwayTeam
	case "status":
		return string(m.Status)
	case "league":
		return string(m.League)
	default:
		return m.StartTime.UTC().Format(time.RFC3339Nano)
	}
}

func (r *memMatchRepo) List(ctx context.Context, exec repositories.SQLExecutor, filter models.MatchFilter) ([]models.Match, error) {
	if filter.SortBy != "" && !repositories.IsValidMatchSortColumn(filter.SortBy) {
		return nil, repositories.ErrMatchInvalidSort
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range r.s.matches {
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.League != nil && m.League != *filter.League {
			continue
		}
		if filter.Court != nil && m.Court != *filter.Court {
			continue
		}
		if filter.Date != nil && m.Date != *filter.Date {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := matchSortKey(out[i], filter.SortBy), matchSortKey(out[j], filter.SortBy)
		if ki == kj {
			return out[i].ID < out[j].ID
		}
		if filter.Descending {
			return ki > kj
		}
		return ki < kj
	})
	return out, nil
}

func (r *memMatchRepo) ListDates(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	dates := make([]string, 0)
	for _, m := range r.s.matches {
		if !seen[m.Date] {
			seen[m.Date] = true
			dates = append(dates, m.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *memMatchRepo) Update(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.s.matches[match.ID] = *match
	return nil
}

func (r *memMatchRepo) RenameTeam(ctx context.Context, exec repositories.SQLExecutor, oldName, newName, excludeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.matches {
		if id == excludeID || (m.HomeTeam != oldName && m.AwayTeam != oldName) {
			continue
		}
		if m.HomeTeam == oldName {
			m.HomeTeam = newName
		}
		if m.AwayTeam == oldName {
			m.AwayTeam = newName
		}
		r.s.matches[id] = m
		n++
	}
	return n, nil
}

func (r *memMatchRepo) StartDue(ctx context.Context, now time.Time) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0)
	for id, m := range r.s.matches {
		if m.Status == models.MatchStatusUpcoming && !m.StartTime.After(now) {
			m.Status = models.MatchStatusOngoing
			r.s.matches[id] = m
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memMatchRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.s.matches, id)
	return nil
}

func (r *memMatchRepo) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.matches))
	r.s.matches = map[string]models.Match{}
	return n, nil
}

// --- leagues ---

type memLeagueRepo struct{ s *memStore }

func (r *memLeagueRepo) Create(ctx context.Context, exec repositories.SQLExecutor, league *models.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.leagues {
		if l.Name == league.Name {
			return repositories.ErrLeagueNameConflict
		}
	}
	l := *league
	l.TeamIDs = append([]string{}, league.TeamIDs...)
	r.s.leagues[l.ID] = l
	return nil
}

func (r *memLeagueRepo) GetByID(ctx context.Context, id string) (*models.League, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leagues[id]
	if !ok {
		return nil, repositories.ErrLeagueNotFound
	}
	return &l, nil
}

func (r *memLeagueRepo) List(ctx context.Context) ([]models.League, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.League, 0, len(r.s.leagues))
	for _, l := range r.s.leagues {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memLeagueRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.leagues), nil
}

func (r *memLeagueRepo) Update(ctx context.Context, league *models.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.leagues[league.ID]
	if !ok {
		return repositories.ErrLeagueNotFound
	}
	cur.Name, cur.Color, cur.Description = league.Name, league.Color, league.Description
	r.s.leagues[league.ID] = cur
	return nil
}

func (r *memLeagueRepo) AddTeam(ctx context.Context, exec repositories.SQLExecutor, leagueID, teamID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leagues[leagueID]
	if !ok {
		return repositories.ErrLeagueNotFound
	}
	for _, id := range l.TeamIDs {
		if id == teamID {
			return nil
		}
	}
	l.TeamIDs = append(l.TeamIDs, teamID)
	r.s.leagues[leagueID] = l
	return nil
}

func (r *memLeagueRepo) RemoveTeam(ctx context.Context, exec repositories.SQLExecutor, leagueID, teamID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leagues[leagueID]
	if !ok {
		return repositories.ErrLeagueNotFound
	}
	kept := make([]string, 0, len(l.TeamIDs))
	for _, id := range l.TeamIDs {
		if id != teamID {
			kept = append(kept, id)
		}
	}
	l.TeamIDs = kept
	r.s.leagues[leagueID] = l
	return nil
}

func (r *memLeagueRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leagues[id]; !ok {
		return repositories.ErrLeagueNotFound
	}
	for _, t := range r.s.teams {
		if t.LeagueID == id {
			return repositories.ErrLeagueInUse
		}
	}
	delete(r.s.leagues, id)
	return nil
}

// --- users ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserEmailConflict
		}
	}
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// --- notifier ---

type recordingNotifier struct {
	mu      sync.Mutex
	changes map[string]int
}

func (n *recordingNotifier) Snapshot(ctx context.Context, room string) (interface{}, error) {
	return nil, nil
}

func (n *recordingNotifier) Subscribe(ctx context.Context, room string, join func(initial interface{}) error) error {
	return join(nil)
}

func (n *recordingNotifier) record(kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.changes == nil {
		n.changes = map[string]int{}
	}
	n.changes[kind]++
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.changes[kind]
}

func (n *recordingNotifier) MatchesChanged(ctx context.Context) { n.record("matches") }
func (n *recordingNotifier) TeamsChanged(ctx context.Context)   { n.record("teams") }
func (n *recordingNotifier) LeaguesChanged(ctx context.Context) { n.record("leagues") }

// --- wiring ---

type testEnv struct {
	store    *memStore
	tx       *memTx
	teams    *memTeamRepo
	matches  *memMatchRepo
	leagues  *memLeagueRepo
	users    *memUserRepo
	notifier *recordingNotifier

	stats     StatsService
	matchSvc  MatchService
	teamSvc   TeamService
	leagueSvc LeagueService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	env := &testEnv{
		store:    store,
		tx:       &memTx{store: store},
		teams:    &memTeamRepo{s: store},
		matches:  &memMatchRepo{s: store},
		leagues:  &memLeagueRepo{s: store},
		users:    &memUserRepo{s: store},
		notifier: &recordingNotifier{},
	}
	logger := discardLogger()
	env.stats = NewStatsService(env.teams, env.matches, env.tx, env.notifier, logger)
	env.matchSvc = NewMatchService(env.matches, env.teams, env.stats, env.tx, env.notifier, logger)
	env.teamSvc = NewTeamService(env.teams, env.leagues, env.matches, env.tx, env.notifier, logger)
	env.leagueSvc = NewLeagueService(env.leagues, env.notifier, logger)
	return env
}

func (e *testEnv) addLeague(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, e.leagues.Create(context.Background(), nil, &models.League{ID: id, Name: name, TeamIDs: []string{}}))
}

// addTeam stores a team in league l1, creating the league on first use.
func (e *testEnv) addTeam(t *testing.T, id, name string) {
	t.Helper()
	e.addTeamIn(t, "l1", id, name)
}

func (e *testEnv) addTeamIn(t *testing.T, leagueID, id, name string) {
	t.Helper()
	if _, err := e.leagues.GetByID(context.Background(), leagueID); err != nil {
		e.addLeague(t, leagueID, "League "+leagueID)
	}
	require.NoError(t, e.teams.Create(context.Background(), nil, &models.Team{ID: id, Name: name, Players: []string{}, LeagueID: leagueID}))
	require.NoError(t, e.leagues.AddTeam(context.Background(), nil, leagueID, id))
}

func (e *testEnv) addMatch(t *testing.T, m models.Match) {
	t.Helper()
	if m.League == "" {
		m.League = models.LeagueMenA
	}
	if m.Status == "" {
		m.Status = models.MatchStatusUpcoming
	}
	if m.Date == "" {
		m.Date = "2025-04-13"
	}
	require.NoError(t, e.matches.Create(context.Background(), nil, &m))
}

func (e *testEnv) teamStats(t *testing.T, id string) models.TeamStats {
	t.Helper()
	team, err := e.teams.GetByID(context.Background(), nil, id)
	require.NoError(t, err)
	return team.TeamStats
}

func ptr[T any](v T) *T {
	return &v
}

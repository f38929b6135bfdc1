package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-league/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameConflict  = errors.New("team name already exists in league")
	ErrTeamLeagueInvalid = errors.New("team league conflict or invalid")
	ErrTeamStatsNegative = errors.New("team stats must not be negative")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListByLeague(ctx context.Context, leagueID string) ([]models.Team, error)
	// FindByName is an exact, case-sensitive lookup. More than one hit means
	// the name is ambiguous across leagues. With a non-nil exec the rows
	// stay locked until the transaction ends.
	FindByName(ctx context.Context, exec SQLExecutor, name string) ([]models.Team, error)
	Update(ctx context.Context, exec SQLExecutor, team *models.Team) error
	UpdateName(ctx context.Context, exec SQLExecutor, id, name string) error
	UpdateStats(ctx context.Context, exec SQLExecutor, id string, stats models.TeamStats) error
	ResetAllStats(ctx context.Context, exec SQLExecutor) (int64, error)
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, players, league_id, wins, losses, points, goals_scored, goals_conceded`

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `
		INSERT INTO teams (id, name, players, league_id, wins, losses, points, goals_scored, goals_conceded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		team.ID,
		team.Name,
		pq.Array(team.Players),
		team.LeagueID,
		team.Wins,
		team.Losses,
		team.Points,
		team.GoalsScored,
		team.GoalsConceded,
	)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, mapPQError(err)
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY name ASC`
	return r.queryTeams(ctx, r.db, query)
}

func (r *postgresTeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE league_id = $1 ORDER BY name ASC`
	return r.queryTeams(ctx, r.db, query, leagueID)
}

func (r *postgresTeamRepository) FindByName(ctx context.Context, exec SQLExecutor, name string) ([]models.Team, error) {
	return r.queryTeams(ctx, getExecutor(r.db, exec), findByNameQuery(exec != nil), name)
}

func findByNameQuery(lock bool) string {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE name = $1 ORDER BY id ASC`
	if lock {
		query += ` FOR UPDATE`
	}
	return query
}

func (r *postgresTeamRepository) Update(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `UPDATE teams SET name = $1, players = $2, league_id = $3 WHERE id = $4`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		team.Name,
		pq.Array(team.Players),
		team.LeagueID,
		team.ID,
	)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateName(ctx context.Context, exec SQLExecutor, id, name string) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `UPDATE teams SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateStats(ctx context.Context, exec SQLExecutor, id string, stats models.TeamStats) error {
	query := `
		UPDATE teams
		SET wins = $1, losses = $2, points = $3, goals_scored = $4, goals_conceded = $5
		WHERE id = $6`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		stats.Wins,
		stats.Losses,
		stats.Points,
		stats.GoalsScored,
		stats.GoalsConceded,
		id,
	)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ResetAllStats(ctx context.Context, exec SQLExecutor) (int64, error) {
	query := `UPDATE teams SET wins = 0, losses = 0, points = 0, goals_scored = 0, goals_conceded = 0`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query)
	if err != nil {
		return 0, mapPQError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var team models.Team
	var players []string
	err := row.Scan(
		&team.ID,
		&team.Name,
		pq.Array(&players),
		&team.LeagueID,
		&team.Wins,
		&team.Losses,
		&team.Points,
		&team.GoalsScored,
		&team.GoalsConceded,
	)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []string{}
	}
	team.Players = players
	return &team, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "teams_league_id_name_key" {
				return ErrTeamNameConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "teams_league_id_fkey" {
				return ErrTeamLeagueInvalid
			}
		case "23514": // check_violation
			return ErrTeamStatsNegative
		}
	}
	return mapPQError(err)
}

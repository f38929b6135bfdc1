package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tennis-league/models"
	"github.com/lib/pq"
)

var (
	ErrLeagueNotFound     = errors.New("league not found")
	ErrLeagueNameConflict = errors.New("league name conflict")
	ErrLeagueInUse        = errors.New("league still has teams")
)

type LeagueRepository interface {
	Create(ctx context.Context, exec SQLExecutor, league *models.League) error
	GetByID(ctx context.Context, id string) (*models.League, error)
	List(ctx context.Context) ([]models.League, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, league *models.League) error
	AddTeam(ctx context.Context, exec SQLExecutor, leagueID, teamID string) error
	RemoveTeam(ctx context.Context, exec SQLExecutor, leagueID, teamID string) error
	Delete(ctx context.Context, id string) error
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

func (r *postgresLeagueRepository) Create(ctx context.Context, exec SQLExecutor, league *models.League) error {
	query := `INSERT INTO leagues (id, name, color, team_ids, description) VALUES ($1, $2, $3, $4, $5)`

	teamIDs := league.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}
	_, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		league.ID,
		league.Name,
		league.Color,
		pq.Array(teamIDs),
		league.Description,
	)
	return r.handleLeagueError(err)
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id string) (*models.League, error) {
	query := `SELECT id, name, color, team_ids, description FROM leagues WHERE id = $1`

	league, err := scanLeague(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, mapPQError(err)
	}
	return league, nil
}

func (r *postgresLeagueRepository) List(ctx context.Context) ([]models.League, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, team_ids, description FROM leagues ORDER BY name ASC`)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	leagues := make([]models.League, 0)
	for rows.Next() {
		league, scanErr := scanLeague(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		leagues = append(leagues, *league)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *postgresLeagueRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leagues`).Scan(&n); err != nil {
		return 0, mapPQError(err)
	}
	return n, nil
}

func (r *postgresLeagueRepository) Update(ctx context.Context, league *models.League) error {
	query := `UPDATE leagues SET name = $1, color = $2, description = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, league.Name, league.Color, league.Description, league.ID)
	if err != nil {
		return r.handleLeagueError(err)
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) AddTeam(ctx context.Context, exec SQLExecutor, leagueID, teamID string) error {
	query := `
		UPDATE leagues SET team_ids = array_append(team_ids, $1)
		WHERE id = $2 AND NOT ($1 = ANY(team_ids))`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, teamID, leagueID)
	if err != nil {
		return mapPQError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the league is missing or the team is already linked.
		if _, getErr := r.GetByID(ctx, leagueID); getErr != nil {
			return getErr
		}
	}
	return nil
}

func (r *postgresLeagueRepository) RemoveTeam(ctx context.Context, exec SQLExecutor, leagueID, teamID string) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx,
		`UPDATE leagues SET team_ids = array_remove(team_ids, $1) WHERE id = $2`, teamID, leagueID)
	if err != nil {
		return mapPQError(err)
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	if err != nil {
		return r.handleLeagueError(err)
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func scanLeague(row rowScanner) (*models.League, error) {
	var league models.League
	var teamIDs []string
	var description sql.NullString
	if err := row.Scan(&league.ID, &league.Name, &league.Color, pq.Array(&teamIDs), &description); err != nil {
		return nil, err
	}
	if teamIDs == nil {
		teamIDs = []string{}
	}
	league.TeamIDs = teamIDs
	if description.Valid {
		league.Description = &description.String
	}
	return &league, nil
}

func (r *postgresLeagueRepository) handleLeagueError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "leagues_name_key" {
				return ErrLeagueNameConflict
			}
		case "23503":
			return ErrLeagueInUse
		}
	}
	return mapPQError(err)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchInvalidSort   = errors.New("invalid match sort column")
	ErrMatchInvalidFields = errors.New("match fields violate table constraints")
)

// matchSortColumns whitelists the columns the admin table may sort by.
var matchSortColumns = map[string]string{
	"start_time": "start_time",
	"end_time":   "end_time",
	"court":      "court",
	"home_team":  "home_team",
	"away_team":  "away_team",
	"home_score": "home_score",
	"away_score": "away_score",
	"status":     "status",
	"league":     "league",
}

func IsValidMatchSortColumn(column string) bool {
	_, ok := matchSortColumns[column]
	return ok
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor, filter models.MatchFilter) ([]models.Match, error)
	ListDates(ctx context.Context) ([]string, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// RenameTeam rewrites home_team/away_team equal to oldName. excludeID may be empty.
	RenameTeam(ctx context.Context, exec SQLExecutor, oldName, newName, excludeID string) (int64, error)
	StartDue(ctx context.Context, now time.Time) ([]string, error)
	Delete(ctx context.Context, exec SQLExecutor, id string) error
	DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, court, home_team, away_team, home_score, away_score, status, start_time, end_time, league, match_date`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		match.ID,
		match.Court,
		match.HomeTeam,
		match.AwayTeam,
		match.HomeScore,
		match.AwayScore,
		match.Status,
		match.StartTime,
		match.EndTime,
		match.League,
		match.Date,
	)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(getExecutor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, mapPQError(err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor, filter models.MatchFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1 = 1`)

	args := []interface{}{}
	placeholderIndex := 1
	addCondition := func(column string, value interface{}) {
		queryBuilder.WriteString(" AND " + column + " = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, value)
		placeholderIndex++
	}

	if filter.Status != nil {
		addCondition("status", *filter.Status)
	}
	if filter.League != nil {
		addCondition("league", *filter.League)
	}
	if filter.Court != nil {
		addCondition("court", *filter.Court)
	}
	if filter.Date != nil {
		addCondition("match_date", *filter.Date)
	}

	sortColumn := "start_time"
	if filter.SortBy != "" {
		column, ok := matchSortColumns[filter.SortBy]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMatchInvalidSort, filter.SortBy)
		}
		sortColumn = column
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	// id keeps the order stable between equal sort keys.
	queryBuilder.WriteString(" ORDER BY " + sortColumn + " " + direction + ", id ASC")

	rows, err := getExecutor(r.db, exec).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) ListDates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT match_date FROM matches ORDER BY match_date ASC`)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if scanErr := rows.Scan(&d); scanErr != nil {
			return nil, scanErr
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		UPDATE matches
		SET court = $1, home_team = $2, away_team = $3, home_score = $4, away_score = $5,
		    status = $6, start_time = $7, end_time = $8, league = $9, match_date = $10
		WHERE id = $11`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		match.Court,
		match.HomeTeam,
		match.AwayTeam,
		match.HomeScore,
		match.AwayScore,
		match.Status,
		match.StartTime,
		match.EndTime,
		match.League,
		match.Date,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) RenameTeam(ctx context.Context, exec SQLExecutor, oldName, newName, excludeID string) (int64, error) {
	query := `
		UPDATE matches
		SET home_team = CASE WHEN home_team = $1 THEN $2 ELSE home_team END,
		    away_team = CASE WHEN away_team = $1 THEN $2 ELSE away_team END
		WHERE (home_team = $1 OR away_team = $1) AND id <> $3`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, oldName, newName, excludeID)
	if err != nil {
		return 0, mapPQError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

// StartDue flips upcoming matches whose start time has passed to ongoing and
// returns their ids.
func (r *postgresMatchRepository) StartDue(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE matches SET status = $1
		WHERE status = $2 AND start_time <= $3
		RETURNING id`

	rows, err := r.db.QueryContext(ctx, query, models.MatchStatusOngoing, models.MatchStatusUpcoming, now)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error) {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, mapPQError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.Court,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.HomeScore,
		&match.AwayScore,
		&match.Status,
		&match.StartTime,
		&match.EndTime,
		&match.League,
		&match.Date,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23514" { // check_violation
			return fmt.Errorf("%w: %s", ErrMatchInvalidFields, pqErr.Constraint)
		}
	}
	return mapPQError(err)
}

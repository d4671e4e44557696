package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cybertour/tournament-api/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchInvalidRef = errors.New("invalid tournament or team reference")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateResult(ctx context.Context, match *models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, round, team1_id, team2_id, score1, score2, winner_id, match_date, status`

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, round, team1_id, team2_id, score1, score2, match_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		m.TournamentID, m.Round, m.Team1ID, m.Team2ID,
		m.Score1, m.Score2, m.MatchDate, m.Status,
	).Scan(&m.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrMatchInvalidRef
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.Round, &m.Team1ID, &m.Team2ID,
		&m.Score1, &m.Score2, &m.WinnerID, &m.MatchDate, &m.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.Round, &m.Team1ID, &m.Team2ID,
			&m.Score1, &m.Score2, &m.WinnerID, &m.MatchDate, &m.Status,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET score1 = $1, score2 = $2, winner_id = $3, status = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, m.Score1, m.Score2, m.WinnerID, m.Status, m.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

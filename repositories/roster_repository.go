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
	ErrTeamPlayerNotFound   = errors.New("team player not found")
	ErrTeamPlayerConflict   = errors.New("user is already on this team")
	ErrTeamPlayerInvalidRef = errors.New("invalid team or user reference")
)

type TeamPlayerRepository interface {
	Create(ctx context.Context, player *models.TeamPlayer) error
	FindByTeamAndUser(ctx context.Context, teamID, userID int) (*models.TeamPlayer, error)
	FindCaptain(ctx context.Context, teamID int) (*models.TeamPlayer, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.TeamPlayer, error)
	CountByTeam(ctx context.Context, teamID int) (int, error)
}

type postgresTeamPlayerRepository struct {
	db *sql.DB
}

func NewPostgresTeamPlayerRepository(db *sql.DB) TeamPlayerRepository {
	return &postgresTeamPlayerRepository{db: db}
}

func (r *postgresTeamPlayerRepository) Create(ctx context.Context, p *models.TeamPlayer) error {
	query := `
		INSERT INTO team_players (team_id, user_id, is_captain)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`

	err := r.db.QueryRowContext(ctx, query, p.TeamID, p.UserID, p.IsCaptain).
		Scan(&p.ID, &p.JoinedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "team_players_team_id_user_id_key" {
					return ErrTeamPlayerConflict
				}
			case "23503":
				return ErrTeamPlayerInvalidRef
			}
		}
		return fmt.Errorf("failed to insert team player: %w", err)
	}
	return nil
}

func (r *postgresTeamPlayerRepository) FindByTeamAndUser(ctx context.Context, teamID, userID int) (*models.TeamPlayer, error) {
	query := `
		SELECT id, team_id, user_id, is_captain, joined_at
		FROM team_players
		WHERE team_id = $1 AND user_id = $2`
	return r.scanPlayer(ctx, query, teamID, userID)
}

func (r *postgresTeamPlayerRepository) FindCaptain(ctx context.Context, teamID int) (*models.TeamPlayer, error) {
	query := `
		SELECT id, team_id, user_id, is_captain, joined_at
		FROM team_players
		WHERE team_id = $1 AND is_captain = TRUE`
	return r.scanPlayer(ctx, query, teamID)
}

func (r *postgresTeamPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.TeamPlayer, error) {
	query := `
		SELECT id, team_id, user_id, is_captain, joined_at
		FROM team_players
		WHERE team_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.TeamPlayer, 0)
	for rows.Next() {
		var p models.TeamPlayer
		if err := rows.Scan(&p.ID, &p.TeamID, &p.UserID, &p.IsCaptain, &p.JoinedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresTeamPlayerRepository) CountByTeam(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM team_players WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresTeamPlayerRepository) scanPlayer(ctx context.Context, query string, args ...interface{}) (*models.TeamPlayer, error) {
	p := &models.TeamPlayer{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.TeamID, &p.UserID, &p.IsCaptain, &p.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

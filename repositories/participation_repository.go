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
	ErrParticipationNotFound   = errors.New("participation not found")
	ErrParticipationConflict   = errors.New("team is already registered for this tournament")
	ErrParticipationInvalidRef = errors.New("invalid tournament or team reference")
)

type ParticipationRepository interface {
	Create(ctx context.Context, participation *models.Participation) error
	FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) (*models.Participation, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error)
}

type postgresParticipationRepository struct {
	db *sql.DB
}

func NewPostgresParticipationRepository(db *sql.DB) ParticipationRepository {
	return &postgresParticipationRepository{db: db}
}

func (r *postgresParticipationRepository) Create(ctx context.Context, p *models.Participation) error {
	query := `
		INSERT INTO participations (tournament_id, team_id)
		VALUES ($1, $2)
		RETURNING id, registered_at`

	err := r.db.QueryRowContext(ctx, query, p.TournamentID, p.TeamID).
		Scan(&p.ID, &p.RegisteredAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				// The unique constraint is the authority on duplicate
				// registration; the service pre-check only narrows the window.
				if pqErr.Constraint == "participations_tournament_id_team_id_key" {
					return ErrParticipationConflict
				}
			case "23503":
				return ErrParticipationInvalidRef
			}
		}
		return fmt.Errorf("failed to insert participation: %w", err)
	}
	return nil
}

func (r *postgresParticipationRepository) FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) (*models.Participation, error) {
	query := `
		SELECT id, tournament_id, team_id, registered_at, final_position
		FROM participations
		WHERE tournament_id = $1 AND team_id = $2`

	p := &models.Participation{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, teamID).Scan(
		&p.ID, &p.TournamentID, &p.TeamID, &p.RegisteredAt, &p.FinalPosition,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipationNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresParticipationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error) {
	query := `
		SELECT id, tournament_id, team_id, registered_at, final_position
		FROM participations
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]models.Participation, 0)
	for rows.Next() {
		var p models.Participation
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.TeamID, &p.RegisteredAt, &p.FinalPosition); err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}

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
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrTournamentInvalidOrg = errors.New("invalid organizer reference")
)

// ListTournamentsFilter narrows List results. Game is an exact match when set.
type ListTournamentsFilter struct {
	Game   *string
	Offset int
	Limit  int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	UpdateBannerKey(ctx context.Context, tournamentID int, bannerKey *string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, game, description, max_teams, prize_pool, start_date, end_date, status, organizer_id, banner_key, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, game, description, max_teams, prize_pool, start_date, end_date, status, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Game, t.Description, t.MaxTeams, t.PrizePool,
		t.StartDate, t.EndDate, t.Status, t.OrganizerID,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "tournaments_organizer_id_fkey" {
			return ErrTournamentInvalidOrg
		}
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Game, &t.Description, &t.MaxTeams, &t.PrizePool,
		&t.StartDate, &t.EndDate, &t.Status, &t.OrganizerID, &t.BannerKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE ($1::text IS NULL OR game = $1)
		ORDER BY id ASC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, filter.Game, filter.Offset, normalizeLimit(filter.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Game, &t.Description, &t.MaxTeams, &t.PrizePool,
			&t.StartDate, &t.EndDate, &t.Status, &t.OrganizerID, &t.BannerKey, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	// organizer_id is immutable after creation and deliberately absent here.
	query := `
		UPDATE tournaments SET
			name = $1, game = $2, description = $3, max_teams = $4,
			prize_pool = $5, start_date = $6, end_date = $7, status = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Game, t.Description, t.MaxTeams,
		t.PrizePool, t.StartDate, t.EndDate, t.Status, t.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateBannerKey(ctx context.Context, tournamentID int, bannerKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET banner_key = $1 WHERE id = $2`, bannerKey, tournamentID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

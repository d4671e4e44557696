package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/repositories"
	"github.com/cybertour/tournament-api/storage"
)

const defaultMaxTeams = 16

// TournamentInput carries every mutable tournament field. Update applies it
// with full-replace semantics: fields left empty fall back to their
// defaults, exactly as on creation.
type TournamentInput struct {
	Name        string                   `json:"name"`
	Game        string                   `json:"game"`
	Description *string                  `json:"description"`
	MaxTeams    int                      `json:"max_teams"`
	PrizePool   int                      `json:"prize_pool"`
	StartDate   *time.Time               `json:"start_date"`
	EndDate     *time.Time               `json:"end_date"`
	Status      *models.TournamentStatus `json:"status"`
}

type ListTournamentsInput struct {
	Game   *string
	Offset int
	Limit  int
}

type TournamentService interface {
	Create(ctx context.Context, actor *models.User, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
	Update(ctx context.Context, actor *models.User, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, actor *models.User, id int) error
	UploadBanner(ctx context.Context, actor *models.User, id int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, uploader storage.FileUploader) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
	}
}

func (s *tournamentService) Create(ctx context.Context, actor *models.User, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Game:        input.Game,
		Description: input.Description,
		MaxTeams:    input.MaxTeams,
		PrizePool:   input.PrizePool,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.TournamentUpcoming,
		OrganizerID: actor.ID,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.fillBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		Game:   input.Game,
		Offset: input.Offset,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for i := range tournaments {
		s.fillBannerURL(&tournaments[i])
	}
	return tournaments, nil
}

// Update overwrites every mutable field from input. Only the organizer may
// call it; a missing tournament is reported before the authorization check.
func (s *tournamentService) Update(ctx context.Context, actor *models.User, id int, input TournamentInput) (*models.Tournament, error) {
	tournament, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	tournament.Name = input.Name
	tournament.Game = input.Game
	tournament.Description = input.Description
	tournament.MaxTeams = input.MaxTeams
	tournament.PrizePool = input.PrizePool
	tournament.StartDate = input.StartDate
	tournament.EndDate = input.EndDate
	if input.Status != nil {
		tournament.Status = *input.Status
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return nil
}

func (s *tournamentService) UploadBanner(ctx context.Context, actor *models.User, id int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	key := fmt.Sprintf("banners/tournament_%d", id)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload banner: %w", err)
	}

	if err := s.tournamentRepo.UpdateBannerKey(ctx, id, &result.Key); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	tournament.BannerKey = &result.Key
	s.fillBannerURL(tournament)
	return tournament, nil
}

// getOwned loads the tournament and enforces the organizer rule. NotFound
// wins over Forbidden when the tournament does not exist; Forbidden is
// never downgraded to NotFound for an existing one.
func (s *tournamentService) getOwned(ctx context.Context, actor *models.User, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != actor.ID {
		return nil, ErrForbidden
	}
	return tournament, nil
}

func (s *tournamentService) fillBannerURL(t *models.Tournament) {
	if s.uploader == nil || t.BannerKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.BannerKey)
	t.BannerURL = &url
}

func validateTournamentInput(input *TournamentInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.Game == "" {
		return ErrGameRequired
	}
	if input.MaxTeams == 0 {
		input.MaxTeams = defaultMaxTeams
	}
	if input.MaxTeams < 1 {
		return ErrMaxTeamsInvalid
	}
	if input.PrizePool < 0 {
		return ErrPrizePoolNegative
	}
	if input.Status != nil && !input.Status.Valid() {
		return ErrStatusInvalid
	}
	return nil
}

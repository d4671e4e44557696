package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/repositories"
	"github.com/cybertour/tournament-api/storage"
)

type TeamInput struct {
	Name        string  `json:"name"`
	Tag         *string `json:"tag"`
	Description *string `json:"description"`
}

type TeamService interface {
	Create(ctx context.Context, actor *models.User, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, offset, limit int) ([]models.Team, error)
	UploadLogo(ctx context.Context, actor *models.User, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	teamPlayerRepo repositories.TeamPlayerRepository
	uploader       storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	teamPlayerRepo repositories.TeamPlayerRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		teamPlayerRepo: teamPlayerRepo,
		uploader:       uploader,
	}
}

// Create registers a new team. Any authenticated user may create one; name
// and tag collisions are rejected.
func (s *teamService) Create(ctx context.Context, actor *models.User, input TeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	team := &models.Team{
		Name:        input.Name,
		Tag:         input.Tag,
		Description: input.Description,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameTaken
		case errors.Is(err, repositories.ErrTeamTagConflict):
			return nil, ErrTeamTagTaken
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context, offset, limit int) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		s.fillLogoURL(&teams[i])
	}
	return teams, nil
}

// UploadLogo stores a new logo for the team. Only the team captain may
// change it.
func (s *teamService) UploadLogo(ctx context.Context, actor *models.User, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	captain, err := s.teamPlayerRepo.FindCaptain(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamPlayerNotFound) {
			return nil, ErrCaptainRequired
		}
		return nil, err
	}
	if captain.UserID != actor.ID {
		return nil, ErrCaptainRequired
	}

	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	key := fmt.Sprintf("logos/team_%d", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	team.LogoKey = &result.Key
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) fillLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	team.LogoURL = &url
}

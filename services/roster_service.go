package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/repositories"
)

type RosterService interface {
	AddPlayer(ctx context.Context, actor *models.User, teamID, userID int) (*models.TeamPlayer, error)
	ListPlayers(ctx context.Context, teamID int) ([]models.TeamPlayer, error)
}

type rosterService struct {
	teamPlayerRepo repositories.TeamPlayerRepository
	teamRepo       repositories.TeamRepository
	userRepo       repositories.UserRepository
}

func NewRosterService(
	teamPlayerRepo repositories.TeamPlayerRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
) RosterService {
	return &rosterService{
		teamPlayerRepo: teamPlayerRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
	}
}

// AddPlayer puts a user on a team roster. The first player on an empty
// roster becomes captain; after that only the captain may add players.
func (s *rosterService) AddPlayer(ctx context.Context, actor *models.User, teamID, userID int) (*models.TeamPlayer, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.teamPlayerRepo.CountByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count roster: %w", err)
	}

	isCaptain := count == 0
	if !isCaptain {
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
	}

	player := &models.TeamPlayer{
		TeamID:    teamID,
		UserID:    userID,
		IsCaptain: isCaptain,
	}

	if err := s.teamPlayerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrTeamPlayerConflict) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add player to roster: %w", err)
	}
	return player, nil
}

func (s *rosterService) ListPlayers(ctx context.Context, teamID int) ([]models.TeamPlayer, error) {
	players, err := s.teamPlayerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for team %d: %w", teamID, err)
	}
	return players, nil
}

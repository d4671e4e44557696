package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/repositories"
)

type ParticipationInput struct {
	TournamentID int `json:"tournament_id"`
	TeamID       int `json:"team_id"`
}

type ParticipationService interface {
	RegisterTeam(ctx context.Context, actor *models.User, input ParticipationInput) (*models.Participation, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error)
}

type participationService struct {
	participationRepo repositories.ParticipationRepository
	tournamentRepo    repositories.TournamentRepository
	teamRepo          repositories.TeamRepository
}

func NewParticipationService(
	participationRepo repositories.ParticipationRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
) ParticipationService {
	return &participationService{
		participationRepo: participationRepo,
		tournamentRepo:    tournamentRepo,
		teamRepo:          teamRepo,
	}
}

// RegisterTeam enters a team into a tournament. Any authenticated user may
// register any team; the only rule is that the (tournament, team) pair is
// unique. Two concurrent registrations for the same pair are decided by the
// unique constraint, surfaced here as ErrAlreadyRegistered.
func (s *participationService) RegisterTeam(ctx context.Context, actor *models.User, input ParticipationInput) (*models.Participation, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	_, err := s.participationRepo.FindByTournamentAndTeam(ctx, input.TournamentID, input.TeamID)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, repositories.ErrParticipationNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	participation := &models.Participation{
		TournamentID: input.TournamentID,
		TeamID:       input.TeamID,
	}

	if err := s.participationRepo.Create(ctx, participation); err != nil {
		if errors.Is(err, repositories.ErrParticipationConflict) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}
	return participation, nil
}

func (s *participationService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error) {
	participations, err := s.participationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %d: %w", tournamentID, err)
	}
	return participations, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/repositories"
)

type MatchInput struct {
	TournamentID int        `json:"tournament_id"`
	Round        int        `json:"round"`
	Team1ID      int        `json:"team1_id"`
	Team2ID      int        `json:"team2_id"`
	MatchDate    *time.Time `json:"match_date"`
}

type MatchService interface {
	Create(ctx context.Context, actor *models.User, input MatchInput) (*models.Match, error)
	RecordScore(ctx context.Context, actor *models.User, matchID, score1, score2 int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
	}
}

// Create schedules a match inside a tournament. The tournament must exist
// and the actor must be its organizer.
func (s *matchService) Create(ctx context.Context, actor *models.User, input MatchInput) (*models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != actor.ID {
		return nil, ErrForbidden
	}

	if input.Round == 0 {
		input.Round = 1
	}
	if input.Round < 1 {
		return nil, ErrRoundInvalid
	}
	if input.Team1ID == input.Team2ID {
		return nil, ErrSameTeamMatch
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Round:        input.Round,
		Team1ID:      input.Team1ID,
		Team2ID:      input.Team2ID,
		MatchDate:    input.MatchDate,
		Status:       models.MatchScheduled,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchInvalidRef) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

// RecordScore sets both scores and resolves the winner: the team with the
// strictly higher score wins and the match completes; a tie records no
// winner and leaves the match ongoing.
func (s *matchService) RecordScore(ctx context.Context, actor *models.User, matchID, score1, score2 int) (*models.Match, error) {
	if score1 < 0 || score2 < 0 {
		return nil, ErrScoreNegative
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != actor.ID {
		return nil, ErrForbidden
	}

	var winnerID *int
	switch {
	case score1 > score2:
		winnerID = &match.Team1ID
	case score2 > score1:
		winnerID = &match.Team2ID
	}

	match.Score1 = score1
	match.Score2 = score2
	match.WinnerID = winnerID
	if winnerID != nil {
		match.Status = models.MatchCompleted
	} else {
		match.Status = models.MatchOngoing
	}

	if err := s.matchRepo.UpdateResult(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match result: %w", err)
	}
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cybertour/tournament-api/models"
)

type participationFixture struct {
	svc    ParticipationService
	actor  *models.User
	cupID  int
	openID int
	redID  int
	blueID int
}

func newParticipationFixture(t *testing.T) *participationFixture {
	t.Helper()
	ctx := context.Background()

	tournaments := newMockTournamentRepo()
	teams := newMockTeamRepo()

	f := &participationFixture{
		svc:   NewParticipationService(newMockParticipationRepo(), tournaments, teams),
		actor: testUser(1, "alice"),
	}

	cup := &models.Tournament{Name: "Cup", Game: "CS:GO", OrganizerID: 1}
	open := &models.Tournament{Name: "Open", Game: "Dota 2", OrganizerID: 1}
	red := &models.Team{Name: "Red"}
	blue := &models.Team{Name: "Blue"}
	for _, err := range []error{
		tournaments.Create(ctx, cup),
		tournaments.Create(ctx, open),
		teams.Create(ctx, red),
		teams.Create(ctx, blue),
	} {
		if err != nil {
			t.Fatalf("failed to seed fixture: %v", err)
		}
	}
	f.cupID, f.openID, f.redID, f.blueID = cup.ID, open.ID, red.ID, blue.ID
	return f
}

func TestRegisterTeam(t *testing.T) {
	f := newParticipationFixture(t)
	ctx := context.Background()

	p, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: f.redID})
	if err != nil {
		t.Fatalf("RegisterTeam failed: %v", err)
	}
	if p.FinalPosition != nil {
		t.Fatal("expected no final position on registration")
	}
	if p.RegisteredAt.IsZero() {
		t.Fatal("expected registered_at to be set")
	}
}

func TestRegisterTeamDuplicatePair(t *testing.T) {
	f := newParticipationFixture(t)
	ctx := context.Background()

	if _, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: f.redID}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Same pair is rejected, not overwritten.
	_, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: f.redID})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	// A different team or a different tournament is fine.
	if _, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: f.blueID}); err != nil {
		t.Fatalf("different team registration failed: %v", err)
	}
	if _, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.openID, TeamID: f.redID}); err != nil {
		t.Fatalf("different tournament registration failed: %v", err)
	}
}

func TestRegisterTeamUnknownReferences(t *testing.T) {
	f := newParticipationFixture(t)
	ctx := context.Background()

	_, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: 999, TeamID: f.redID})
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}

	_, err = f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: 999})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestListParticipants(t *testing.T) {
	f := newParticipationFixture(t)
	ctx := context.Background()

	if _, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: f.redID}); err != nil {
		t.Fatalf("RegisterTeam failed: %v", err)
	}
	if _, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.cupID, TeamID: f.blueID}); err != nil {
		t.Fatalf("RegisterTeam failed: %v", err)
	}
	if _, err := f.svc.RegisterTeam(ctx, f.actor, ParticipationInput{TournamentID: f.openID, TeamID: f.redID}); err != nil {
		t.Fatalf("RegisterTeam failed: %v", err)
	}

	participants, err := f.svc.ListByTournament(ctx, f.cupID)
	if err != nil {
		t.Fatalf("ListByTournament failed: %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("expected 2 participants in cup, got %d", len(participants))
	}
}

package services

import (
	"context"
	"sort"
	"time"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/repositories"
)

// In-memory repository doubles. They mirror the postgres implementations'
// contracts, including the typed conflict errors the unique constraints
// would produce.

type mockUserRepo struct {
	nextID int
	users  map[int]models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: map[int]models.User{}}
}

func (r *mockUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *mockUserRepo) List(_ context.Context, offset, limit int) ([]models.User, error) {
	ids := make([]int, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := make([]models.User, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(users) == limit {
			break
		}
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *mockUserRepo) UpdateAvatarKey(_ context.Context, userID int, avatarKey *string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.AvatarKey = avatarKey
	r.users[userID] = u
	return nil
}

type mockTournamentRepo struct {
	nextID      int
	tournaments map[int]models.Tournament
}

func newMockTournamentRepo() *mockTournamentRepo {
	return &mockTournamentRepo{nextID: 1, tournaments: map[int]models.Tournament{}}
}

func (r *mockTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	r.nextID++
	r.tournaments[t.ID] = *t
	return nil
}

func (r *mockTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *mockTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	ids := make([]int, 0, len(r.tournaments))
	for id := range r.tournaments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	tournaments := make([]models.Tournament, 0)
	skipped := 0
	for _, id := range ids {
		t := r.tournaments[id]
		if filter.Game != nil && t.Game != *filter.Game {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if len(tournaments) == limit {
			break
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func (r *mockTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = *t
	return nil
}

func (r *mockTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *mockTournamentRepo) UpdateBannerKey(_ context.Context, tournamentID int, bannerKey *string) error {
	t, ok := r.tournaments[tournamentID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.BannerKey = bannerKey
	r.tournaments[tournamentID] = t
	return nil
}

type mockTeamRepo struct {
	nextID int
	teams  map[int]models.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{nextID: 1, teams: map[int]models.Team{}}
}

func (r *mockTeamRepo) Create(_ context.Context, team *models.Team) error {
	for _, t := range r.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
		if t.Tag != nil && team.Tag != nil && *t.Tag == *team.Tag {
			return repositories.ErrTeamTagConflict
		}
	}
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	r.nextID++
	r.teams[team.ID] = *team
	return nil
}

func (r *mockTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *mockTeamRepo) List(_ context.Context, offset, limit int) ([]models.Team, error) {
	ids := make([]int, 0, len(r.teams))
	for id := range r.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	teams := make([]models.Team, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(teams) == limit {
			break
		}
		teams = append(teams, r.teams[id])
	}
	return teams, nil
}

func (r *mockTeamRepo) UpdateLogoKey(_ context.Context, teamID int, logoKey *string) error {
	t, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	r.teams[teamID] = t
	return nil
}

type mockParticipationRepo struct {
	nextID         int
	participations map[int]models.Participation
}

func newMockParticipationRepo() *mockParticipationRepo {
	return &mockParticipationRepo{nextID: 1, participations: map[int]models.Participation{}}
}

func (r *mockParticipationRepo) Create(_ context.Context, p *models.Participation) error {
	for _, existing := range r.participations {
		if existing.TournamentID == p.TournamentID && existing.TeamID == p.TeamID {
			return repositories.ErrParticipationConflict
		}
	}
	p.ID = r.nextID
	p.RegisteredAt = time.Now()
	r.nextID++
	r.participations[p.ID] = *p
	return nil
}

func (r *mockParticipationRepo) FindByTournamentAndTeam(_ context.Context, tournamentID, teamID int) (*models.Participation, error) {
	for _, p := range r.participations {
		if p.TournamentID == tournamentID && p.TeamID == teamID {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrParticipationNotFound
}

func (r *mockParticipationRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Participation, error) {
	ids := make([]int, 0, len(r.participations))
	for id := range r.participations {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]models.Participation, 0)
	for _, id := range ids {
		if r.participations[id].TournamentID == tournamentID {
			result = append(result, r.participations[id])
		}
	}
	return result, nil
}

type mockMatchRepo struct {
	nextID  int
	matches map[int]models.Match
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{nextID: 1, matches: map[int]models.Match{}}
}

func (r *mockMatchRepo) Create(_ context.Context, m *models.Match) error {
	m.ID = r.nextID
	r.nextID++
	r.matches[m.ID] = *m
	return nil
}

func (r *mockMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (r *mockMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Match, error) {
	ids := make([]int, 0, len(r.matches))
	for id := range r.matches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]models.Match, 0)
	for _, id := range ids {
		if r.matches[id].TournamentID == tournamentID {
			result = append(result, r.matches[id])
		}
	}
	return result, nil
}

func (r *mockMatchRepo) UpdateResult(_ context.Context, m *models.Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[m.ID] = *m
	return nil
}

type mockTeamPlayerRepo struct {
	nextID  int
	players map[int]models.TeamPlayer
}

func newMockTeamPlayerRepo() *mockTeamPlayerRepo {
	return &mockTeamPlayerRepo{nextID: 1, players: map[int]models.TeamPlayer{}}
}

func (r *mockTeamPlayerRepo) Create(_ context.Context, p *models.TeamPlayer) error {
	for _, existing := range r.players {
		if existing.TeamID == p.TeamID && existing.UserID == p.UserID {
			return repositories.ErrTeamPlayerConflict
		}
	}
	p.ID = r.nextID
	p.JoinedAt = time.Now()
	r.nextID++
	r.players[p.ID] = *p
	return nil
}

func (r *mockTeamPlayerRepo) FindByTeamAndUser(_ context.Context, teamID, userID int) (*models.TeamPlayer, error) {
	for _, p := range r.players {
		if p.TeamID == teamID && p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrTeamPlayerNotFound
}

func (r *mockTeamPlayerRepo) FindCaptain(_ context.Context, teamID int) (*models.TeamPlayer, error) {
	for _, p := range r.players {
		if p.TeamID == teamID && p.IsCaptain {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrTeamPlayerNotFound
}

func (r *mockTeamPlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.TeamPlayer, error) {
	ids := make([]int, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]models.TeamPlayer, 0)
	for _, id := range ids {
		if r.players[id].TeamID == teamID {
			result = append(result, r.players[id])
		}
	}
	return result, nil
}

func (r *mockTeamPlayerRepo) CountByTeam(_ context.Context, teamID int) (int, error) {
	count := 0
	for _, p := range r.players {
		if p.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

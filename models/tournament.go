package models

import "time"

// TournamentStatus mirrors the tournament status ENUM in the database.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

// Valid reports whether s is one of the three enumerated statuses.
func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentOngoing, TournamentCompleted:
		return true
	}
	return false
}

type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Game        string           `json:"game" db:"game"`
	Description *string          `json:"description,omitempty" db:"description"`
	MaxTeams    int              `json:"max_teams" db:"max_teams"`
	PrizePool   int              `json:"prize_pool" db:"prize_pool"`
	StartDate   *time.Time       `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time       `json:"end_date,omitempty" db:"end_date"`
	Status      TournamentStatus `json:"status" db:"status"`
	OrganizerID int              `json:"organizer_id" db:"organizer_id"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`

	BannerKey *string `json:"-" db:"banner_key"`
	BannerURL *string `json:"banner_url,omitempty" db:"-"`

	// Optional related entities, filled by the service layer when requested.
	Organizer *User `json:"organizer,omitempty" db:"-"`
}

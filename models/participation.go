package models

import "time"

// Participation records a team's registration in a tournament. The pair
// (tournament_id, team_id) is unique: a team registers at most once.
type Participation struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	TeamID        int       `json:"team_id" db:"team_id"`
	RegisteredAt  time.Time `json:"registered_at" db:"registered_at"`
	FinalPosition *int      `json:"final_position,omitempty" db:"final_position"`

	Team *Team `json:"team,omitempty" db:"-"`
}

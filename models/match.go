package models

import "time"

// MatchStatus is derived from the recorded result, never set directly:
// a match is completed exactly when a winner is recorded.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchOngoing   MatchStatus = "ongoing"
	MatchCompleted MatchStatus = "completed"
)

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Round        int         `json:"round" db:"round"`
	Team1ID      int         `json:"team1_id" db:"team1_id"`
	Team2ID      int         `json:"team2_id" db:"team2_id"`
	Score1       int         `json:"score1" db:"score1"`
	Score2       int         `json:"score2" db:"score2"`
	WinnerID     *int        `json:"winner_id,omitempty" db:"winner_id"`
	MatchDate    *time.Time  `json:"match_date,omitempty" db:"match_date"`
	Status       MatchStatus `json:"status" db:"status"`
}

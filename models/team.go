package models

import "time"

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Tag         *string   `json:"tag,omitempty" db:"tag"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Players []TeamPlayer `json:"players,omitempty" db:"-"`
}

// TeamPlayer links a user to a team roster. The first player added to an
// empty roster becomes the captain.
type TeamPlayer struct {
	ID        int       `json:"id" db:"id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	IsCaptain bool      `json:"is_captain" db:"is_captain"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`

	User *User `json:"user,omitempty" db:"-"`
}

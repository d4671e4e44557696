package services

import "errors"

// Typed failures shared across services and mapped to HTTP status codes by
// the handlers package.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Authorization
	ErrForbidden       = errors.New("operation not allowed for the current user")
	ErrCaptainRequired = errors.New("only the team captain can perform this action")

	// Authentication
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrTokenExpired       = errors.New("authentication token has expired")

	// Conflicts
	ErrUsernameTaken     = errors.New("username is already registered")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrTeamNameTaken     = errors.New("team name is already taken")
	ErrTeamTagTaken      = errors.New("team tag is already taken")
	ErrAlreadyRegistered = errors.New("team is already registered for this tournament")
	ErrAlreadyMember     = errors.New("user is already on this team")

	// Validation and business rules
	ErrUsernameRequired  = errors.New("username is required")
	ErrEmailInvalid      = errors.New("a valid email is required")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrNameRequired      = errors.New("name is required")
	ErrGameRequired      = errors.New("game is required")
	ErrMaxTeamsInvalid   = errors.New("max teams must be at least 1")
	ErrPrizePoolNegative = errors.New("prize pool must not be negative")
	ErrStatusInvalid     = errors.New("invalid tournament status")
	ErrRoundInvalid      = errors.New("round must be at least 1")
	ErrScoreNegative     = errors.New("scores must not be negative")
	ErrSameTeamMatch     = errors.New("a match requires two different teams")

	ErrUploadsDisabled = errors.New("file uploads are not configured")
)

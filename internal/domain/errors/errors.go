package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("illegal state transition")
	ErrInvalidShares      = errors.New("share percentages must sum to 100")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNotGroupMember     = errors.New("vendor is not a group member")
)

package domain

import "errors"

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrRecordNotFound    = errors.New("record not found")
	ErrNoSeatsSelected   = errors.New("reservation does not name any seats")
	ErrEditConflict      = errors.New("edit conflict")
	ErrSeatUnavailable   = errors.New("seat(s) are not in the required availability state")
	ErrForbidden         = errors.New("operation is not permitted for this user")
	ErrInconsistentState = errors.New("seat map and reservation ledger are out of sync")
)

package service

import "errors"

var (
	// ErrInvalidIdentity is returned when a username fails validation after
	// sanitization (too short, too long, or nothing left after stripping).
	ErrInvalidIdentity = errors.New("invalid username")

	// ErrInvalidPassword is returned when a password fails length validation.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrWrongPassword is returned when the password digest does not match
	// the stored credential.
	ErrWrongPassword = errors.New("wrong password")

	// ErrAccrualCapped is returned by the progress engine when a single
	// accrual would exceed the level-up iteration cap. The accompanying
	// record is clamped at the cap boundary and remains consistent.
	ErrAccrualCapped = errors.New("accrual level-up cap exceeded")
)

package engine

import "errors"

// Business-rule rejections. None of them is fatal: every one simply
// declines the requested mutation and leaves engine state unchanged.
var (
	// ErrCapacityExceeded is returned when a sixth active personal
	// challenge would be created.
	ErrCapacityExceeded = errors.New("active challenge limit reached")
	// ErrWindowExpired is returned when a challenge is removed after the
	// 12-hour deletion window.
	ErrWindowExpired = errors.New("deletion window has expired")
	// ErrChallengeNotFound is returned for an unknown challenge id.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrUnknownStatus is returned for a status outside active/success/fail.
	ErrUnknownStatus = errors.New("unknown challenge status")

	// ErrRosterFull is returned when the group week already has the
	// maximum number of participants.
	ErrRosterFull = errors.New("group challenge is full")
	// ErrMissingName is returned when neither a nickname nor a login name
	// remains after trimming.
	ErrMissingName = errors.New("participant name is required")
	// ErrDuplicateName is returned when a roster name already exists,
	// compared case-insensitively.
	ErrDuplicateName = errors.New("participant name already taken")
	// ErrParticipantNotFound is returned for an unknown participant id.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrSelfImmutable is returned when the caller tries to cycle their
	// own entry; only finalization may change it.
	ErrSelfImmutable = errors.New("own entry can only change on finalize")
	// ErrNotJoined is returned by finalize when the caller has no entry
	// in the current week.
	ErrNotJoined = errors.New("join the group challenge first")
	// ErrWeekNotEnded is returned by finalize before the week is over.
	ErrWeekNotEnded = errors.New("week has not ended yet")

	// ErrInsufficientFunds is returned when a debit would push the
	// balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount is returned for non-positive credit or debit
	// amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrLoginTooShort is returned at registration for login names
	// shorter than the minimum.
	ErrLoginTooShort = errors.New("login name must be at least 5 characters")
	// ErrInvalidEmail is returned at registration for malformed emails.
	ErrInvalidEmail = errors.New("email address is not valid")
	// ErrPasswordRequired is returned for blank passwords.
	ErrPasswordRequired = errors.New("password is required")
	// ErrNotRegistered is returned on login before any registration.
	ErrNotRegistered = errors.New("no registered user")
	// ErrInvalidCredentials is returned on a failed login. It stays
	// generic on purpose.
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrLoginRequired is returned for a blank login-name change.
	ErrLoginRequired = errors.New("login name is required")
	// ErrCooldownActive is returned when the login name was changed less
	// than the cooldown period ago.
	ErrCooldownActive = errors.New("login name was changed recently")

	// ErrTitleRequired is returned for a blank habit title.
	ErrTitleRequired = errors.New("habit title is required")
	// ErrHabitNotFound is returned for an unknown habit id.
	ErrHabitNotFound = errors.New("habit not found")
)

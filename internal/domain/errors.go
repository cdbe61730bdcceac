package domain

import "errors"

var (
	ErrNoParticipants          = errors.New("no participants")
	ErrInvalidParticipant      = errors.New("invalid participant")
	ErrDuplicateParticipant    = errors.New("duplicate participant")
	ErrInvalidMaxPerTable      = errors.New("invalid maximum persons per table")
	ErrMalformedHistory        = errors.New("malformed history")
	ErrRosterNotFound          = errors.New("roster not found")
	ErrUnsupportedRosterFormat = errors.New("unsupported roster format")
	ErrUnknownWeighting        = errors.New("unknown weighting")
)

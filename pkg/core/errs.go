package core

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrMalformedEvent   = errors.New("malformed event document")
	ErrInvalidEventID   = errors.New("invalid event identifier")
	ErrUnknownTimeframe = errors.New("unknown timeframe")
)

package services

import "errors"

// Service-level sentinel errors. Handlers map these onto API errors.
var (
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidOrder       = errors.New("invalid ranking order")
	ErrInvalidPersonKind  = errors.New("invalid person kind")
	ErrInvalidGranularity = errors.New("invalid time granularity")
	ErrInvalidScore       = errors.New("invalid review score")
	ErrInvalidFormat      = errors.New("invalid export format")
)

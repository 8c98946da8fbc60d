package model

import "errors"

var (
	// ErrEmptyInput is returned when no bars are available; no analysis is produced.
	ErrEmptyInput = errors.New("empty bar series")
	// ErrInsufficientData marks a degraded run: some indicators lack history and score neutral.
	ErrInsufficientData = errors.New("insufficient bar history")
)

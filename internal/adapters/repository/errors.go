package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrNotFound     = errors.New("build not found")
	ErrInvalidLimit = errors.New("invalid ledger limit")
	ErrInvalidBuild = errors.New("invalid build record")
	ErrOpenLedger   = errors.New("open ledger failed")
)

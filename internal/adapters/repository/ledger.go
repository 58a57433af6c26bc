// Package repository persists the build ledger.
package repository

import (
	"context"
	"time"
)

// Build is one recorded presentation build.
type Build struct {
	ID         string    `json:"id"`
	DeckTitle  string    `json:"deck_title"`
	OutputPath string    `json:"output_path"`
	Slides     int       `json:"slides"`
	Elements   int       `json:"elements"`
	Bytes      int64     `json:"bytes"`
	SHA256     string    `json:"sha256"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Ledger records builds and lists them back.
type Ledger interface {
	// Record stores b. IDs must be unique.
	Record(ctx context.Context, b Build) error
	// Get returns the build with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Build, error)
	// Recent returns up to limit builds, newest first.
	Recent(ctx context.Context, limit int) ([]Build, error)
	// Count returns the number of recorded builds.
	Count(ctx context.Context) (int, error)
	// Close releases the underlying database.
	Close() error
}

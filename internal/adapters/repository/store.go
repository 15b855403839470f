// Package repository builds and serves the indexed reference table.
package repository

import (
	"context"

	"github.com/okian/critiq/internal/domain/features"
	"github.com/okian/critiq/internal/domain/types"
)

// Store provides read access to the reference table aggregates. All
// methods are safe for concurrent use; the table is immutable once built.
type Store interface {
	features.Table

	// Options lists the sorted unique category values in the dataset.
	Options(ctx context.Context) types.Options

	// Insights summarizes the dataset.
	Insights(ctx context.Context) types.Insights

	// Count returns the number of reference rows.
	Count(ctx context.Context) int
}

// Package features derives the model feature vector from raw game input
// and the precomputed reference table aggregates.
package features

import (
	"context"
	"fmt"

	"github.com/okian/critiq/internal/domain/game"
	"github.com/okian/critiq/pkg/metrics"
)

// Canonical feature names, matching the reference dataset columns.
const (
	MetascoreScaled      = "metascore_scaled"
	Month                = "month"
	DeveloperAvgScore    = "developer_avg_score"
	PlatformAge          = "platform_age"
	IsHolidayRelease     = "is_holiday_release"
	GenrePopularity      = "genre_popularity"
	PlatformGenreEncoded = "platform_genre_encoded"
	GenreEncoded         = "genre_encoded"
	PlatformEncoded      = "platform_encoded"
	ManufacturerEncoded  = "manufacturer_encoded"
)

// metascoreScale converts the 0-100 critic score to the model's 0-10 range.
const metascoreScale = 10.0

// Table provides aggregate lookups over the reference dataset. Each method
// returns the aggregate value and whether an exact category match existed;
// on a miss the value is the dataset-wide mean of the column, never an
// error. Implementations must be safe for concurrent readers.
type Table interface {
	DeveloperAvgScore(ctx context.Context, developer string) (float64, bool)
	PlatformAge(ctx context.Context, platform string) (float64, bool)
	PlatformGenreEncoded(ctx context.Context, platform, genre string) (float64, bool)
	GenreEncoded(ctx context.Context, genre string) (float64, bool)
	PlatformEncoded(ctx context.Context, platform string) (float64, bool)
	ManufacturerEncoded(ctx context.Context, manufacturer string) (float64, bool)
	GenrePopularity(ctx context.Context, genre string) (float64, bool)
}

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithManufacturerOverrides adds platform -> manufacturer mappings on top
// of the built-in table.
func WithManufacturerOverrides(overrides map[string]string) Option {
	return func(a *Assembler) {
		if len(overrides) == 0 {
			return
		}
		a.overrides = make(map[string]string, len(overrides))
		for platform, manufacturer := range overrides {
			a.overrides[platform] = manufacturer
		}
	}
}

// Assembler derives feature vectors by joining validated input against the
// reference table. It holds no mutable state; a single instance serves
// concurrent requests.
type Assembler struct {
	table     Table
	overrides map[string]string
}

// NewAssembler creates an assembler backed by the given reference table.
func NewAssembler(table Table, opts ...Option) *Assembler {
	a := &Assembler{table: table}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble validates the input and builds the feature vector in the exact
// order given by required (the model's declared feature list). Derived
// fields not named in required are dropped. Category misses degrade to
// dataset-wide means and are counted, never surfaced as errors.
func (a *Assembler) Assemble(ctx context.Context, in game.Input, required []string) (*Vector, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.Normalized(a.overrides)

	derived := a.derive(ctx, in)

	vec := NewVector(len(required))
	for _, name := range required {
		value, ok := derived[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, name)
		}
		vec.Set(name, value)
	}
	return vec, nil
}

// derive computes every feature the assembler knows how to produce.
func (a *Assembler) derive(ctx context.Context, in game.Input) map[string]float64 {
	out := make(map[string]float64, 10)

	out[MetascoreScaled] = float64(in.Metascore) / metascoreScale
	out[Month] = float64(in.Month)

	if in.IsHolidayRelease() {
		out[IsHolidayRelease] = 1
	} else {
		out[IsHolidayRelease] = 0
	}

	out[DeveloperAvgScore] = a.lookup(DeveloperAvgScore, func() (float64, bool) {
		return a.table.DeveloperAvgScore(ctx, in.Developer)
	})
	out[PlatformAge] = a.lookup(PlatformAge, func() (float64, bool) {
		return a.table.PlatformAge(ctx, in.Platform)
	})
	out[GenrePopularity] = a.lookup(GenrePopularity, func() (float64, bool) {
		return a.table.GenrePopularity(ctx, in.Genre)
	})
	out[PlatformGenreEncoded] = a.lookup(PlatformGenreEncoded, func() (float64, bool) {
		return a.table.PlatformGenreEncoded(ctx, in.Platform, in.Genre)
	})
	out[GenreEncoded] = a.lookup(GenreEncoded, func() (float64, bool) {
		return a.table.GenreEncoded(ctx, in.Genre)
	})
	out[PlatformEncoded] = a.lookup(PlatformEncoded, func() (float64, bool) {
		return a.table.PlatformEncoded(ctx, in.Platform)
	})
	out[ManufacturerEncoded] = a.lookup(ManufacturerEncoded, func() (float64, bool) {
		return a.table.ManufacturerEncoded(ctx, in.Manufacturer)
	})

	return out
}

// lookup runs a table lookup and counts fallbacks to the dataset-wide mean.
func (a *Assembler) lookup(feature string, fn func() (float64, bool)) float64 {
	value, matched := fn()
	if !matched {
		metrics.RecordFeatureFallback(feature)
	}
	return value
}

package repository

import (
	"context"
	"math"
	"sort"

	"github.com/okian/critiq/internal/adapters/dataset"
	"github.com/okian/critiq/internal/domain/types"
)

// agg accumulates a sum and a row count for one category key.
type agg struct {
	sum   float64
	count int
}

func (a agg) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// AggregateStore is the indexed form of the reference dataset: grouped
// per-key aggregate maps computed once at load time, so per-request
// lookups never rescan rows. Unseen keys resolve to the dataset-wide
// column mean — a deliberate robustness policy, not an error path.
type AggregateStore struct {
	rows int

	developerScore map[string]agg
	platformAge    map[string]agg
	platformGenre  map[string]agg // keyed by the "{platform}_{genre}" composite
	genreEncoded   map[string]agg
	platformEnc    map[string]agg
	manufacturer   map[string]agg
	genreCount     map[string]int

	// Dataset-wide column means used as fallbacks.
	developerScoreMean float64
	platformAgeMean    float64
	platformGenreMean  float64
	genreEncodedMean   float64
	platformEncMean    float64
	manufacturerMean   float64
	genreCountMean     float64

	options  types.Options
	insights types.Insights
}

// NewAggregateStore indexes the reference rows. The row slice is not
// retained; the store holds only the grouped aggregates.
func NewAggregateStore(_ context.Context, rows []dataset.Row) (*AggregateStore, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	s := &AggregateStore{
		rows:           len(rows),
		developerScore: make(map[string]agg),
		platformAge:    make(map[string]agg),
		platformGenre:  make(map[string]agg),
		genreEncoded:   make(map[string]agg),
		platformEnc:    make(map[string]agg),
		manufacturer:   make(map[string]agg),
		genreCount:     make(map[string]int),
	}

	var (
		sumDeveloperScore float64
		sumPlatformAge    float64
		sumPlatformGenre  float64
		sumGenreEncoded   float64
		sumPlatformEnc    float64
		sumManufacturer   float64
		sumMetascore      float64
		metascoreRows     int
	)

	for _, row := range rows {
		accumulate(s.developerScore, row.Developer, row.DeveloperAvgScore)
		accumulate(s.platformAge, row.Platform, row.PlatformAge)
		accumulate(s.platformGenre, row.PlatformGenre, row.PlatformGenreEncoded)
		accumulate(s.genreEncoded, row.Genre, row.GenreEncoded)
		accumulate(s.platformEnc, row.Platform, row.PlatformEncoded)
		accumulate(s.manufacturer, row.Manufacturer, row.ManufacturerEncoded)
		s.genreCount[row.Genre]++

		sumDeveloperScore += row.DeveloperAvgScore
		sumPlatformAge += row.PlatformAge
		sumPlatformGenre += row.PlatformGenreEncoded
		sumGenreEncoded += row.GenreEncoded
		sumPlatformEnc += row.PlatformEncoded
		sumManufacturer += row.ManufacturerEncoded
		if !math.IsNaN(row.Metascore) {
			sumMetascore += row.Metascore
			metascoreRows++
		}
	}

	n := float64(len(rows))
	s.developerScoreMean = sumDeveloperScore / n
	s.platformAgeMean = sumPlatformAge / n
	s.platformGenreMean = sumPlatformGenre / n
	s.genreEncodedMean = sumGenreEncoded / n
	s.platformEncMean = sumPlatformEnc / n
	s.manufacturerMean = sumManufacturer / n
	s.genreCountMean = n / float64(len(s.genreCount))

	s.options = types.Options{
		Developers:    sortedKeys(s.developerScore),
		Platforms:     sortedKeys(s.platformAge),
		Genres:        sortedKeysInt(s.genreCount),
		Manufacturers: sortedKeys(s.manufacturer),
	}

	averageScore := s.developerScoreMean
	if metascoreRows > 0 {
		averageScore = sumMetascore / float64(metascoreRows)
	}
	s.insights = types.Insights{
		TotalGames:       len(rows),
		UniqueDevelopers: len(s.developerScore),
		UniquePlatforms:  len(s.platformAge),
		UniqueGenres:     len(s.genreCount),
		AverageScore:     averageScore,
	}

	return s, nil
}

func accumulate(m map[string]agg, key string, value float64) {
	a := m[key]
	a.sum += value
	a.count++
	m[key] = a
}

func sortedKeys(m map[string]agg) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysInt(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// lookup resolves one keyed aggregate with its column-mean fallback.
func lookup(m map[string]agg, key string, fallback float64) (float64, bool) {
	if a, ok := m[key]; ok && a.count > 0 {
		return a.mean(), true
	}
	return fallback, false
}

// DeveloperAvgScore returns the mean precomputed score for a developer.
func (s *AggregateStore) DeveloperAvgScore(_ context.Context, developer string) (float64, bool) {
	return lookup(s.developerScore, developer, s.developerScoreMean)
}

// PlatformAge returns the mean platform age for a platform.
func (s *AggregateStore) PlatformAge(_ context.Context, platform string) (float64, bool) {
	return lookup(s.platformAge, platform, s.platformAgeMean)
}

// PlatformGenreEncoded returns the mean encoding for a platform+genre pair.
func (s *AggregateStore) PlatformGenreEncoded(_ context.Context, platform, genre string) (float64, bool) {
	return lookup(s.platformGenre, platform+"_"+genre, s.platformGenreMean)
}

// GenreEncoded returns the mean encoding for a genre.
func (s *AggregateStore) GenreEncoded(_ context.Context, genre string) (float64, bool) {
	return lookup(s.genreEncoded, genre, s.genreEncodedMean)
}

// PlatformEncoded returns the mean encoding for a platform.
func (s *AggregateStore) PlatformEncoded(_ context.Context, platform string) (float64, bool) {
	return lookup(s.platformEnc, platform, s.platformEncMean)
}

// ManufacturerEncoded returns the mean encoding for a manufacturer.
func (s *AggregateStore) ManufacturerEncoded(_ context.Context, manufacturer string) (float64, bool) {
	return lookup(s.manufacturer, manufacturer, s.manufacturerMean)
}

// GenrePopularity returns the number of reference rows sharing the genre,
// or the mean per-genre row count when the genre is unseen.
func (s *AggregateStore) GenrePopularity(_ context.Context, genre string) (float64, bool) {
	if c, ok := s.genreCount[genre]; ok {
		return float64(c), true
	}
	return s.genreCountMean, false
}

// Options lists the sorted unique category values in the dataset.
func (s *AggregateStore) Options(_ context.Context) types.Options {
	return s.options
}

// Insights summarizes the dataset.
func (s *AggregateStore) Insights(_ context.Context) types.Insights {
	return s.insights
}

// Count returns the number of reference rows the store was built from.
func (s *AggregateStore) Count(_ context.Context) int {
	return s.rows
}

package batch

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/okian/critiq/pkg/logger"
)

// Constants for request generation.
const (
	metascoreRange    = 101 // 0..100 inclusive
	monthRange        = 12
	unknownNameEvery  = 10 // every Nth request uses a category absent from the dataset
	unknownDeveloper  = "Studio Nobody Heard Of"
	omitManufacturers = 2 // every other request omits the manufacturer
)

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// pick returns a random element of options.
func pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[getRandomInt(int64(len(options)))]
}

// generateRequests builds synthetic prediction requests by sampling the
// category values the service actually knows about. A slice of requests
// deliberately uses an unknown developer to exercise the mean fallback
// path, and some omit the manufacturer so the service derives it.
func generateRequests(ctx context.Context, config *Config, options Options, stats *Stats) ([]Request, error) {
	logger.Get().Info(ctx, "generating prediction requests",
		logger.Int("numRequests", config.NumRequests),
		logger.Int("developers", len(options.Developers)),
		logger.Int("platforms", len(options.Platforms)),
		logger.Int("genres", len(options.Genres)))

	requests := make([]Request, config.NumRequests)
	for i := range requests {
		req := Request{
			Metascore: int(getRandomInt(metascoreRange)),
			Month:     int(getRandomInt(monthRange)) + 1,
			Developer: pick(options.Developers),
			Platform:  pick(options.Platforms),
			Genre:     pick(options.Genres),
		}

		if i%unknownNameEvery == unknownNameEvery-1 {
			req.Developer = unknownDeveloper
		}
		if i%omitManufacturers == 0 {
			req.Manufacturer = pick(options.Manufacturers)
		}

		requests[i] = req
	}

	stats.RequestsGenerated = len(requests)
	logger.Get().Info(ctx, "requests generated", logger.Int("count", len(requests)))
	return requests, nil
}

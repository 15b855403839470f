package service

import (
	"context"
	"strings"

	"github.com/okian/critiq/internal/domain/game"
	"github.com/okian/critiq/internal/domain/types"
)

const defaultExampleMonth = 6

// presetExamples are curated inputs shown to API consumers. Their
// category values are reconciled against the loaded dataset before
// being returned so that every example predicts cleanly.
var presetExamples = []types.Example{
	{
		Name:      "Nintendo Switch Zelda Game",
		Metascore: 95,
		Month:     11,
		Developer: "Nintendo",
		Platform:  "Nintendo Switch",
		Genre:     "Open-World Action",
	},
	{
		Name:      "PlayStation Action Game",
		Metascore: 85,
		Month:     6,
		Developer: "Sony",
		Platform:  "PlayStation 5",
		Genre:     "Action",
	},
	{
		Name:      "PC Indie Game",
		Metascore: 70,
		Month:     3,
		Developer: "Independent",
		Platform:  "PC",
		Genre:     "Indie",
	},
}

// Examples returns the preset inputs adjusted to the loaded dataset.
func (s *Service) Examples(ctx context.Context) ([]types.Example, error) {
	store := s.store.Load()
	if store == nil {
		return nil, ErrNotStarted
	}

	opts := store.Options(ctx)
	s.mu.RLock()
	overrides := s.manufacturerOverrides
	s.mu.RUnlock()

	out := make([]types.Example, len(presetExamples))
	for i, ex := range presetExamples {
		out[i] = reconcileExample(ex, opts, overrides)
	}
	return out, nil
}

// reconcileExample clamps the numeric fields into their valid ranges and
// replaces category values absent from the dataset with the closest
// available option.
func reconcileExample(ex types.Example, opts types.Options, overrides map[string]string) types.Example {
	if ex.Metascore < game.MinMetascore {
		ex.Metascore = game.MinMetascore
	}
	if ex.Metascore > game.MaxMetascore {
		ex.Metascore = game.MaxMetascore
	}
	if ex.Month < game.MinMonth || ex.Month > game.MaxMonth {
		ex.Month = defaultExampleMonth
	}

	ex.Developer = closestOption(ex.Developer, opts.Developers)
	ex.Platform = closestOption(ex.Platform, opts.Platforms)
	ex.Genre = closestOption(ex.Genre, opts.Genres)
	ex.Manufacturer = game.ManufacturerFor(ex.Platform, overrides)

	return ex
}

// closestOption picks the dataset value best matching want: an exact
// case-insensitive match first, then the option sharing the most words,
// then the first option as a last resort.
func closestOption(want string, options []string) string {
	if len(options) == 0 {
		return want
	}

	for _, opt := range options {
		if strings.EqualFold(opt, want) {
			return opt
		}
	}

	wantWords := fieldSet(want)
	best := ""
	bestOverlap := 0
	for _, opt := range options {
		overlap := 0
		for word := range fieldSet(opt) {
			if wantWords[word] {
				overlap++
			}
		}
		if overlap > bestOverlap {
			best = opt
			bestOverlap = overlap
		}
	}
	if best != "" {
		return best
	}

	return options[0]
}

// fieldSet splits s into a set of lowercase words.
func fieldSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

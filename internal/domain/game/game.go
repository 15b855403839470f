// Package game contains the domain model for prediction inputs.
package game

import (
	"fmt"
	"strings"
)

// Metascore and month bounds for input validation.
const (
	MinMetascore = 0
	MaxMetascore = 100
	MinMonth     = 1
	MaxMonth     = 12
)

// Holiday release months (November, December).
const (
	holidayStartMonth = 11
	holidayEndMonth   = 12
)

// Input represents the raw game attributes submitted by clients.
// Manufacturer is optional; it is derived from the platform when blank.
type Input struct {
	Metascore    int    // professional critic score, 0-100
	Month        int    // release month, 1-12
	Developer    string // development studio
	Platform     string // gaming platform
	Genre        string // game category
	Manufacturer string // platform manufacturer, optional
}

// Validate checks the input against the domain constraints. It returns a
// *ValidationError carrying one message per violated constraint, or nil
// when the input is acceptable. No prediction is attempted on failure.
func (in Input) Validate() error {
	var messages []string

	if strings.TrimSpace(in.Developer) == "" {
		messages = append(messages, "Developer name cannot be empty")
	}
	if strings.TrimSpace(in.Platform) == "" {
		messages = append(messages, "Platform cannot be empty")
	}
	if strings.TrimSpace(in.Genre) == "" {
		messages = append(messages, "Genre cannot be empty")
	}
	if in.Metascore < MinMetascore || in.Metascore > MaxMetascore {
		messages = append(messages, fmt.Sprintf("Metascore must be between %d and %d", MinMetascore, MaxMetascore))
	}
	if in.Month < MinMonth || in.Month > MaxMonth {
		messages = append(messages, fmt.Sprintf("Month must be between %d and %d", MinMonth, MaxMonth))
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// IsHolidayRelease reports whether the release month falls in the
// November/December holiday window.
func (in Input) IsHolidayRelease() bool {
	return in.Month >= holidayStartMonth && in.Month <= holidayEndMonth
}

// Normalized returns a copy with categorical fields trimmed and the
// manufacturer resolved (supplied value wins over derivation).
func (in Input) Normalized(overrides map[string]string) Input {
	out := in
	out.Developer = strings.TrimSpace(in.Developer)
	out.Platform = strings.TrimSpace(in.Platform)
	out.Genre = strings.TrimSpace(in.Genre)
	out.Manufacturer = strings.TrimSpace(in.Manufacturer)
	if out.Manufacturer == "" {
		out.Manufacturer = ManufacturerFor(out.Platform, overrides)
	}
	return out
}

// Package types contains common types used across the application
package types

// FeatureValue is one named feature as echoed back to API clients.
type FeatureValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Prediction is the result of a scoring request.
type Prediction struct {
	Score    float64        `json:"score"`
	Model    string         `json:"model"`
	Features []FeatureValue `json:"features"`
}

// Options lists the category values present in the loaded dataset,
// sorted, for populating client dropdowns.
type Options struct {
	Developers    []string `json:"developers"`
	Platforms     []string `json:"platforms"`
	Genres        []string `json:"genres"`
	Manufacturers []string `json:"manufacturers"`
}

// Example is a curated sample input, reconciled against the dataset.
type Example struct {
	Name         string `json:"name"`
	Metascore    int    `json:"metascore"`
	Month        int    `json:"month"`
	Developer    string `json:"developer"`
	Platform     string `json:"platform"`
	Genre        string `json:"genre"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// Insights summarizes the loaded reference dataset.
type Insights struct {
	TotalGames       int     `json:"total_games"`
	UniqueDevelopers int     `json:"unique_developers"`
	UniquePlatforms  int     `json:"unique_platforms"`
	UniqueGenres     int     `json:"unique_genres"`
	AverageScore     float64 `json:"average_score"`
}

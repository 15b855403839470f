package batch

import "time"

// Config holds configuration for the batch prediction run
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of prediction requests to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for predictions
	LogFile     string        // Log file for run output
	Verbose     bool          // Enable verbose logging
}

// Request mirrors the POST /predict request body
type Request struct {
	Metascore    int    `json:"metascore"`
	Month        int    `json:"month"`
	Developer    string `json:"developer"`
	Platform     string `json:"platform"`
	Genre        string `json:"genre"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// FeatureValue is one named feature echoed back by the service
type FeatureValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Prediction mirrors the POST /predict response body
type Prediction struct {
	Score    float64        `json:"score"`
	Model    string         `json:"model"`
	Features []FeatureValue `json:"features"`
}

// Options mirrors the GET /options response body
type Options struct {
	Developers    []string `json:"developers"`
	Platforms     []string `json:"platforms"`
	Genres        []string `json:"genres"`
	Manufacturers []string `json:"manufacturers"`
}

// Insights mirrors the GET /insights response body
type Insights struct {
	TotalGames       int     `json:"total_games"`
	UniqueDevelopers int     `json:"unique_developers"`
	UniquePlatforms  int     `json:"unique_platforms"`
	UniqueGenres     int     `json:"unique_genres"`
	AverageScore     float64 `json:"average_score"`
}

// Result pairs a request with the prediction it produced
type Result struct {
	Request    Request     `json:"request"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Stats holds run statistics
type Stats struct {
	RequestsGenerated  int
	RequestsSubmitted  int
	RequestsSuccessful int
	RequestsRejected   int
	RequestsFailed     int
	ScoreSum           float64
	MinScore           float64
	MaxScore           float64
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}

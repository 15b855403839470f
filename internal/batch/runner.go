package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/critiq/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete batch prediction run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting batch prediction run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch category options from the service
	options, err := fetchOptions(ctx, config)
	if err != nil {
		return fmt.Errorf("options retrieval failed: %w", err)
	}

	// Step 3: Generate requests from the known categories
	requests, err := generateRequests(ctx, config, options, stats)
	if err != nil {
		return fmt.Errorf("request generation failed: %w", err)
	}

	// Step 4: Submit requests concurrently
	results, err := submitPredictions(ctx, config, requests, stats)
	if err != nil {
		return fmt.Errorf("prediction submission failed: %w", err)
	}

	// Step 5: Cross-check against dataset insights
	if err := reportInsights(ctx, config, stats); err != nil {
		logger.Get().Warn(ctx, "failed to retrieve insights", logger.Error(err))
	}

	// Step 6: Save results to file
	if err := saveResultsToFile(ctx, config, results); err != nil {
		logger.Get().Warn(ctx, "failed to save results to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "batch run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// fetchOptions retrieves the category values known to the service.
func fetchOptions(ctx context.Context, config *Config) (Options, error) {
	client := newHTTPClient(config.Timeout)

	var options Options
	if err := getJSON(ctx, client, config.BaseURL+"/options", &options); err != nil {
		return Options{}, err
	}
	if len(options.Developers) == 0 || len(options.Platforms) == 0 || len(options.Genres) == 0 {
		return Options{}, fmt.Errorf("service returned empty category options")
	}
	return options, nil
}

// reportInsights logs the dataset summary next to the run averages.
func reportInsights(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	var insights Insights
	if err := getJSON(ctx, client, config.BaseURL+"/insights", &insights); err != nil {
		return err
	}

	var avgPredicted float64
	if stats.RequestsSuccessful > 0 {
		avgPredicted = stats.ScoreSum / float64(stats.RequestsSuccessful)
	}

	logger.Get().Info(ctx, "dataset insights",
		logger.Int("totalGames", insights.TotalGames),
		logger.Int("uniqueDevelopers", insights.UniqueDevelopers),
		logger.Int("uniquePlatforms", insights.UniquePlatforms),
		logger.Int("uniqueGenres", insights.UniqueGenres),
		logger.Float64("datasetAverageScore", insights.AverageScore),
		logger.Float64("runAveragePrediction", avgPredicted))
	return nil
}

// saveResultsToFile saves the request/prediction pairs to a JSON file.
func saveResultsToFile(ctx context.Context, config *Config, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "predictions_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	logger.Get().Info(ctx, "results saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond, avgScore float64

	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsSuccessful) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	if stats.RequestsSuccessful > 0 {
		avgScore = stats.ScoreSum / float64(stats.RequestsSuccessful)
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("requestsGenerated", stats.RequestsGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsSuccessful", stats.RequestsSuccessful),
		logger.Int("requestsRejected", stats.RequestsRejected),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Float64("averagePrediction", avgScore),
		logger.Float64("minPrediction", stats.MinScore),
		logger.Float64("maxPrediction", stats.MaxScore),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}

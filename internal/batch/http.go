package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// getJSON performs a GET request and decodes the JSON response into v
func getJSON(ctx context.Context, client *HTTPClient, url string, v interface{}) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// submitPredictions submits requests concurrently using worker pools
func submitPredictions(ctx context.Context, config *Config, requests []Request, stats *Stats) ([]Result, error) {
	log.Printf("📤 Submitting %d prediction requests with %d workers...", len(requests), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predict"

	// Counters for statistics
	var (
		successful int64
		rejected   int64
		failed     int64
		submitted  int64
	)

	results := make([]Result, len(requests))

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	type job struct {
		index   int
		request Request
	}

	// Create worker pool
	jobChan := make(chan job, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSinglePrediction(ctx, client, url, j.request)
					results[j.index] = result

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch {
					case result.Prediction != nil:
						atomic.AddInt64(&successful, 1)
					case result.Error == "rejected":
						atomic.AddInt64(&rejected, 1)
					default:
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						rej := atomic.LoadInt64(&rejected)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, rejected: %d, failed: %d)",
								total, len(requests), succ, rej, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, rejected: %d, failed: %d)",
								total, len(requests), succ, rej, fail)
						}
					}
				}
			}
		}()
	}

	// Send requests to workers
	go func() {
		defer close(jobChan)
		for i, request := range requests {
			select {
			case <-ctx.Done():
				return
			case jobChan <- job{index: i, request: request}:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsSuccessful = int(atomic.LoadInt64(&successful))
	stats.RequestsRejected = int(atomic.LoadInt64(&rejected))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))

	for _, r := range results {
		if r.Prediction == nil {
			continue
		}
		score := r.Prediction.Score
		stats.ScoreSum += score
		if stats.MinScore == 0 && stats.MaxScore == 0 {
			stats.MinScore, stats.MaxScore = score, score
			continue
		}
		if score < stats.MinScore {
			stats.MinScore = score
		}
		if score > stats.MaxScore {
			stats.MaxScore = score
		}
	}

	log.Printf(`✅ Prediction submission completed:
   Successful: %d
   Rejected: %d
   Failed: %d
`, stats.RequestsSuccessful, stats.RequestsRejected, stats.RequestsFailed)

	return results, nil
}

// submitSinglePrediction submits a single request and returns the result
func submitSinglePrediction(ctx context.Context, client *HTTPClient, url string, request Request) Result {
	result := Result{Request: request}

	resp, err := client.Post(ctx, url, request)
	if err != nil {
		result.Error = "failed"
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = "failed"
		return result
	}

	switch resp.StatusCode {
	case StatusOK:
		var pred Prediction
		if err := json.Unmarshal(body, &pred); err != nil {
			result.Error = "failed"
			return result
		}
		result.Prediction = &pred
		return result
	case StatusBadRequest:
		// The service rejected the input as invalid
		result.Error = "rejected"
		return result
	default:
		result.Error = "failed"
		return result
	}
}

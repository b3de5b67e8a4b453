package loadtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// Run executes the complete signup load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting activities signup load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.NumStudents),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("unregister", config.Unregister),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the activity catalog
	client := newHTTPClient(config.Timeout)
	listing, err := fetchActivities(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("catalog fetch failed: %w", err)
	}
	names := make([]string, 0, len(listing))
	for name := range listing {
		names = append(names, name)
	}
	sort.Strings(names)

	// Step 3: Generate signups
	signups, err := generateSignups(ctx, config, names, stats)
	if err != nil {
		return fmt.Errorf("signup generation failed: %w", err)
	}

	// Step 4: Submit signups concurrently
	if err := submitSignups(ctx, config, signups, stats); err != nil {
		return fmt.Errorf("signup submission failed: %w", err)
	}

	// Step 5: Verify rosters
	if err := verifyRosters(ctx, config, signups, stats); err != nil {
		return fmt.Errorf("roster verification failed: %w", err)
	}

	// Step 6: Optionally unwind the registrations
	if config.Unregister {
		unregisterSignups(ctx, config, signups, stats)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "load test completed successfully")
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

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, signupsPerSecond float64

	if stats.SignupsSubmitted > 0 {
		successRate = float64(stats.SignupsSuccessful) / float64(stats.SignupsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		signupsPerSecond = float64(stats.SignupsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("signupsGenerated", stats.SignupsGenerated),
		logger.Int("signupsSubmitted", stats.SignupsSubmitted),
		logger.Int("signupsSuccessful", stats.SignupsSuccessful),
		logger.Int("signupsRejected", stats.SignupsRejected),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("rostersVerified", stats.RostersVerified),
		logger.Int("unregistersSucceeded", stats.UnregistersSucceded),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("signupsPerSecond", signupsPerSecond))
}

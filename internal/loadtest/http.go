package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
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
func (c *HTTPClient) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request without a body; the activities API takes
// its inputs from the path and query string.
func (c *HTTPClient) Post(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// registrationURL builds a signup or unregister URL for one student.
func registrationURL(baseURL, activity, action, email string) string {
	return baseURL + "/activities/" + url.PathEscape(activity) + "/" + action +
		"?email=" + url.QueryEscape(email)
}

// activityRecord mirrors the listing payload fields the tool needs.
type activityRecord struct {
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// fetchActivities retrieves the activity directory from the service.
func fetchActivities(ctx context.Context, client *HTTPClient, baseURL string) (map[string]activityRecord, error) {
	resp, err := client.Get(ctx, baseURL+"/activities")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("activities request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities response: %w", err)
	}

	var listing map[string]activityRecord
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode activities response: %w", err)
	}
	return listing, nil
}

// submitSignups submits signups concurrently using a worker pool
func submitSignups(ctx context.Context, config *Config, signups []Signup, stats *Stats) error {
	log.Printf("submitting %d signups with %d workers...", len(signups), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		rejected   int64
		failed     int64
		submitted  int64
	)

	signupChan := make(chan Signup, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for signup := range signupChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSignup(ctx, client, config.BaseURL, signup)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "rejected":
						atomic.AddInt64(&rejected, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						total := atomic.LoadInt64(&submitted)
						log.Printf("progress: %d/%d submitted (success: %d, rejected: %d, failed: %d)",
							total, len(signups),
							atomic.LoadInt64(&successful),
							atomic.LoadInt64(&rejected),
							atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(signupChan)
		for _, signup := range signups {
			select {
			case <-ctx.Done():
				return
			case signupChan <- signup:
			}
		}
	}()

	wg.Wait()

	stats.SignupsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SignupsSuccessful = int(atomic.LoadInt64(&successful))
	stats.SignupsRejected = int(atomic.LoadInt64(&rejected))
	stats.SignupsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("signup submission completed: successful=%d rejected=%d failed=%d",
		stats.SignupsSuccessful, stats.SignupsRejected, stats.SignupsFailed)
	return nil
}

// submitSingleSignup submits a single signup and classifies the outcome.
func submitSingleSignup(ctx context.Context, client *HTTPClient, baseURL string, signup Signup) string {
	resp, err := client.Post(ctx, registrationURL(baseURL, signup.Activity, "signup", signup.Email))
	if err != nil {
		return "failed"
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case StatusOK:
		return "success"
	case StatusBadRequest:
		// Duplicate signup; only possible when generated emails collide.
		return "rejected"
	default:
		return "failed"
	}
}

// unregisterSignups removes every submitted signup again.
func unregisterSignups(ctx context.Context, config *Config, signups []Signup, stats *Stats) {
	log.Printf("unregistering %d students...", len(signups))

	client := newHTTPClient(config.Timeout)
	for _, signup := range signups {
		stats.UnregistersAttempts++
		resp, err := client.Post(ctx, registrationURL(config.BaseURL, signup.Activity, "unregister", signup.Email))
		if err != nil {
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode == StatusOK {
			stats.UnregistersSucceded++
		}
	}

	log.Printf("unregister pass completed: %d/%d succeeded",
		stats.UnregistersSucceded, stats.UnregistersAttempts)
}

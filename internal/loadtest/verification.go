package loadtest

import (
	"context"
	"fmt"
	"log"
)

// verifyRosters re-fetches the directory and confirms every successful
// signup is visible on its roster.
func verifyRosters(ctx context.Context, config *Config, signups []Signup, stats *Stats) error {
	log.Println("verifying rosters...")

	client := newHTTPClient(config.Timeout)
	listing, err := fetchActivities(ctx, client, config.BaseURL)
	if err != nil {
		return err
	}

	missing := 0
	for _, signup := range signups {
		record, ok := listing[signup.Activity]
		if !ok {
			missing++
			continue
		}
		if containsEmail(record.Participants, signup.Email) {
			stats.RostersVerified++
		} else {
			missing++
			if config.Verbose {
				log.Printf("missing from roster: %s on %s", signup.Email, signup.Activity)
			}
		}
	}

	if missing > stats.SignupsRejected+stats.SignupsFailed {
		return fmt.Errorf("%d signups missing from rosters, only %d were rejected or failed",
			missing, stats.SignupsRejected+stats.SignupsFailed)
	}

	log.Printf("roster verification completed: %d/%d present", stats.RostersVerified, len(signups))
	return nil
}

func containsEmail(participants []string, email string) bool {
	for _, p := range participants {
		if p == email {
			return true
		}
	}
	return false
}

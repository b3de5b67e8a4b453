package loadtest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mergington/activities/pkg/logger"
)

// generateSignups creates one signup per student, spreading students
// round-robin over the activity names fetched from the service. Emails
// are uuid-derived so repeated runs never collide with earlier rosters.
func generateSignups(ctx context.Context, config *Config, activities []string, stats *Stats) ([]Signup, error) {
	if len(activities) == 0 {
		return nil, fmt.Errorf("no activities available to sign up for")
	}

	logger.Get().Info(ctx, "generating signups",
		logger.Int("numStudents", config.NumStudents),
		logger.Int("activities", len(activities)))

	signups := make([]Signup, config.NumStudents)
	for i := range signups {
		signups[i] = Signup{
			Activity: activities[i%len(activities)],
			Email:    studentEmail(),
		}
	}

	stats.SignupsGenerated = len(signups)
	return signups, nil
}

// studentEmail builds a unique synthetic student address.
func studentEmail() string {
	return "load-" + uuid.New().String()[:8] + "@mergington.edu"
}

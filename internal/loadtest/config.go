package loadtest

import "time"

// Config holds configuration for the signup load test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumStudents int           // Number of students to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for test output
	Unregister  bool          // Also exercise the unregister path
	Verbose     bool          // Enable verbose logging
}

// Signup represents a single registration to submit
type Signup struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

// Stats holds test statistics
type Stats struct {
	SignupsGenerated    int
	SignupsSubmitted    int
	SignupsSuccessful   int
	SignupsRejected     int
	SignupsFailed       int
	UnregistersAttempts int
	UnregistersSucceded int
	RostersVerified     int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}

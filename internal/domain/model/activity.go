// Package model contains domain models passed between layers.
package model

// Activity describes one extracurricular offering and its roster.
// JSON field names mirror the public API schema for GET /activities.
type Activity struct {
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	// MaxParticipants is the stated capacity. It is informational only:
	// signup never checks it.
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is already on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out activity records
// without exposing the store's internal slices.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

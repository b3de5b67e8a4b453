package model

import "time"

// Action identifies the kind of roster mutation.
type Action string

// Roster mutation actions.
const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Registration is the audit record emitted after a successful roster
// mutation. It flows from the service through the audit queue into the
// journal and is never part of the request/response path.
type Registration struct {
	ID       string    // unique id assigned at publish time
	Activity string    // activity name
	Email    string    // participant email
	Action   Action    // signup or unregister
	At       time.Time // time the mutation committed
}

package domain

import "time"

// LoginOutcome classifies how a login request ended.
type LoginOutcome string

const (
	OutcomeSuccess      LoginOutcome = "success"
	OutcomeMissingParam LoginOutcome = "missing_param"
	OutcomeInvalidParam LoginOutcome = "invalid_param"
	OutcomeUnauthorized LoginOutcome = "unauthorized"
	OutcomeInternal     LoginOutcome = "internal_error"
)

// LoginAttempt is an audit record of a single login request.
type LoginAttempt struct {
	Email      string       `json:"email" bson:"email"`
	Outcome    LoginOutcome `json:"outcome" bson:"outcome"`
	StatusCode int          `json:"status_code" bson:"status_code"`
	RemoteIP   string       `json:"remote_ip,omitempty" bson:"remote_ip,omitempty"`
	UserAgent  string       `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	At         time.Time    `json:"at" bson:"at"`
}

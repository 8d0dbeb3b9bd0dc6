package core

import "time"

const (
	// AuditActionLogin records a login attempt.
	AuditActionLogin = "user.login"

	// AuditActionDenied records an ownership check that failed.
	AuditActionDenied = "auth.denied"
)

type AuditEntry struct {
	// ID is the transaction id of the request (X-Transaction-ID).
	ID string `json:"id"`

	// Time is the timestamp of the event.
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "user.login", "auth.denied").
	Action string `json:"action"`

	// PrincipalID identifies who made the request, if authenticated.
	PrincipalID string `json:"principal_id,omitempty"`

	// Resource is the owner id the request was scoped to.
	Resource string `json:"resource,omitempty"`

	Granted bool   `json:"granted"`
	Error   string `json:"error,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

package trust

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a trust. Anything other than
// StatusActive resolves as "not found" to the routing core.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Trust is a single tenant organization: a school trust owning an
// isolated database. Records are created by the onboarding workflow
// and are read-only from the resolution core's perspective.
type Trust struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Status       Status    `json:"status"`
	DatabaseName string    `json:"database_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsActive reports whether the trust may serve traffic.
func (t *Trust) IsActive() bool {
	return t != nil && t.Status == StatusActive
}

// Directory loads trust records from the system dataset.
// Lookup receives an already normalized key and returns
// ErrTrustNotFound when no record matches.
type Directory interface {
	Lookup(ctx context.Context, key string) (*Trust, error)
}

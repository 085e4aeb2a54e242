package domain

import (
	"encoding/json"
	"time"
)

// Group is a named collection of instances sharing a lifecycle. A group is
// created together with its first instance and deleted once its last
// instance is removed or expires.
type Group struct {
	GroupID   string    `json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // bumped on every heartbeat to any member instance
}

// Instance is one tracked liveness unit, identified by (group id, instance id).
// UpdatedAt is refreshed on every heartbeat; an instance whose UpdatedAt falls
// behind the liveness timeout is expired by the next sweep.
type Instance struct {
	InstanceID string          `json:"instance_id"`
	GroupID    string          `json:"group_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Meta       json.RawMessage `json:"meta,omitempty"` // opaque client payload, stored as submitted
}

// GroupSummary is the listing view of a group: its id and how many instances
// its index currently holds.
type GroupSummary struct {
	GroupID       string
	InstanceCount int
}

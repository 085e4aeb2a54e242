package handlers

import (
	"encoding/json"
	"time"
)

// API types for the registry HTTP surface. Field naming follows the wire
// format (snake_case ids), not the domain types.

// UpsertRequest is the body of PUT /v1/groups/{group_id}/instances/{instance_id}.
type UpsertRequest struct {
	Meta json.RawMessage `json:"meta,omitempty"`
}

// InstanceInfo is one instance in API responses.
type InstanceInfo struct {
	InstanceId string          `json:"instance_id"`
	GroupId    string          `json:"group_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Meta       json.RawMessage `json:"meta,omitempty"`
}

// InstancesResponse is the body of GET /v1/groups/{group_id}/instances.
type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}

// GroupInfo is one group in the GET /v1/groups response.
type GroupInfo struct {
	GroupId       string `json:"group_id"`
	InstanceCount int    `json:"instance_count"`
}

// GroupsResponse is the body of GET /v1/groups.
type GroupsResponse struct {
	Groups []GroupInfo `json:"groups"`
}

package interfaces

import (
	"context"
	"encoding/json"

	"myregistry/domain"
)

// Registry is the liveness-tracking contract consumed by the HTTP handlers.
// All implementations read and write exclusively through the shared Store;
// no local state is authoritative.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// UpsertInstance registers instanceID under groupID or, when the record
	// already exists, heartbeats it (refreshes its liveness timestamp while
	// preserving the prior payload and created-at).
	// Returns:
	// 1) (instance, nil) — the stored record after the operation;
	// 2) (zero, bad_parameter) when groupID or instanceID is empty;
	// 3) (zero, internal_server_error) when a storage operation fails.
	UpsertInstance(ctx context.Context, groupID, instanceID string, meta json.RawMessage) (domain.Instance, error)

	// RemoveInstance removes instanceID from groupID; removing the last
	// instance removes the group itself.
	// Returns:
	// 1) nil on success;
	// 2) entity_not_found when the group does not exist;
	// 3) internal_server_error when a storage operation fails.
	RemoveInstance(ctx context.Context, groupID, instanceID string) error

	// ListGroups returns every existing group with its instance count.
	// An empty registry yields an empty slice, not an error.
	ListGroups(ctx context.Context) ([]domain.GroupSummary, error)

	// ListInstances returns all instances of one group.
	// Returns:
	// 1) (instances, nil) on success;
	// 2) (nil, entity_not_found) when the group does not exist;
	// 3) (nil, internal_server_error) when a storage operation fails.
	ListInstances(ctx context.Context, groupID string) ([]domain.Instance, error)
}

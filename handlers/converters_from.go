package handlers

import (
	"encoding/json"

	"myregistry/service"
)

// fromGroupParam validates the group_id path parameter.
// Returns service.BadParameterError on validation failure.
func fromGroupParam(groupID string) (string, error) {
	if groupID == "" {
		return "", service.NewBadParameterError("group_id is required", nil)
	}
	return groupID, nil
}

// fromUpsertRequest validates the upsert path parameters and body.
// A missing meta field is stored as an empty payload.
func fromUpsertRequest(groupID, instanceID string, req UpsertRequest) (string, string, json.RawMessage, error) {
	if groupID == "" {
		return "", "", nil, service.NewBadParameterError("group_id is required", nil)
	}
	if instanceID == "" {
		return "", "", nil, service.NewBadParameterError("instance_id is required", nil)
	}
	if len(req.Meta) > 0 && !json.Valid(req.Meta) {
		return "", "", nil, service.NewBadParameterError("meta must be valid JSON", nil)
	}

	return groupID, instanceID, req.Meta, nil
}

// Package handlers contains http handlers for myregistry.
package handlers

import (
	"fmt"
	"net/http"

	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// RegisterHandlers attaches all registry routes to the echo instance.
func RegisterHandlers(e *echo.Echo, server *HTTPServer) {
	e.GET("/v1/groups", server.ListGroups)
	e.GET("/v1/groups/:group_id/instances", server.ListInstances)
	e.PUT("/v1/groups/:group_id/instances/:instance_id", server.UpsertInstance)
	e.DELETE("/v1/groups/:group_id/instances/:instance_id", server.RemoveInstance)
}

// HTTPServer exposes the registry over HTTP. It contains no business logic:
// it binds and validates requests, delegates to interfaces.Registry, and
// converts domain types to API types.
type HTTPServer struct {
	registry interfaces.Registry
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(registry interfaces.Registry, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		registry: registry,
		logger:   logger,
	}
}

// ListGroups (GET /v1/groups) returns all groups with their instance counts.
func (h *HTTPServer) ListGroups(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	groups, err := h.registry.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("listGroups failed to list groups, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toGroupsResponse(groups))
}

// ListInstances (GET /v1/groups/{group_id}/instances) returns all instances of one group.
// Returns 404 when the group does not exist.
func (h *HTTPServer) ListInstances(ectx echo.Context) error {
	groupID, err := fromGroupParam(ectx.Param("group_id"))
	if err != nil {
		return err
	}

	ctx := ectx.Request().Context()
	instances, err := h.registry.ListInstances(ctx, groupID)
	if err != nil {
		return fmt.Errorf("listInstances failed to list instances of group '%s', err: %w", groupID, err)
	}

	return ectx.JSON(http.StatusOK, toInstancesResponse(instances))
}

// UpsertInstance (PUT /v1/groups/{group_id}/instances/{instance_id}) registers or
// heartbeats one instance and returns the stored record.
func (h *HTTPServer) UpsertInstance(ectx echo.Context) error {
	var req UpsertRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	groupID, instanceID, meta, err := fromUpsertRequest(ectx.Param("group_id"), ectx.Param("instance_id"), req)
	if err != nil {
		return fmt.Errorf("upsertInstance failed to convert request, err: %w", err)
	}

	ctx := ectx.Request().Context()
	instance, err := h.registry.UpsertInstance(ctx, groupID, instanceID, meta)
	if err != nil {
		return fmt.Errorf("upsertInstance failed to upsert instance, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toInstanceInfo(instance))
}

// RemoveInstance (DELETE /v1/groups/{group_id}/instances/{instance_id}) removes one
// instance; removing the last instance removes the group. Returns 404 when the
// group does not exist.
func (h *HTTPServer) RemoveInstance(ectx echo.Context) error {
	groupID, err := fromGroupParam(ectx.Param("group_id"))
	if err != nil {
		return err
	}
	instanceID := ectx.Param("instance_id")
	if instanceID == "" {
		return service.NewBadParameterError("instance_id is required", nil)
	}

	ctx := ectx.Request().Context()
	if err := h.registry.RemoveInstance(ctx, groupID, instanceID); err != nil {
		return fmt.Errorf("removeInstance failed to remove instance, err: %w", err)
	}

	return ectx.NoContent(http.StatusOK)
}

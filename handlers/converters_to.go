package handlers

import (
	"myregistry/domain"
)

// toInstanceInfo converts a domain instance to its API representation.
func toInstanceInfo(instance domain.Instance) InstanceInfo {
	return InstanceInfo{
		InstanceId: instance.InstanceID,
		GroupId:    instance.GroupID,
		CreatedAt:  instance.CreatedAt,
		UpdatedAt:  instance.UpdatedAt,
		Meta:       instance.Meta,
	}
}

// toInstancesResponse converts domain instances to API response.
func toInstancesResponse(instances []domain.Instance) InstancesResponse {
	out := make([]InstanceInfo, 0, len(instances))
	for _, i := range instances {
		out = append(out, toInstanceInfo(i))
	}
	return InstancesResponse{Instances: out}
}

// toGroupsResponse converts group summaries to API response.
func toGroupsResponse(groups []domain.GroupSummary) GroupsResponse {
	out := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupInfo{
			GroupId:       g.GroupID,
			InstanceCount: g.InstanceCount,
		})
	}
	return GroupsResponse{Groups: out}
}

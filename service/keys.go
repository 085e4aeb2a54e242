package service

// Key derivation for the flat keyspace. Every component addresses the store
// through these functions only; no other file builds keys by hand.
//
// Layout:
//
//	groups                      global group-id list (JSON array)
//	group:<gid>                 group record (JSON)
//	group:<gid>:instances       group instance-index (JSON array of ids)
//	instance:<gid>:<id>         instance record (JSON)
//	mutex:<key>                 advisory lock (bare unix-nano timestamp)
//	gc:last                     shared last-sweep timestamp (bare unix-nano)

const (
	globalListKey = "groups"
	lastSweepKey  = "gc:last"
)

func groupKey(groupID string) string {
	return "group:" + groupID
}

func groupIndexKey(groupID string) string {
	return "group:" + groupID + ":instances"
}

func instanceKey(groupID, instanceID string) string {
	return "instance:" + groupID + ":" + instanceID
}

func mutexKey(key string) string {
	return "mutex:" + key
}

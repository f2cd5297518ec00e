package model

// Permission is the read/write bit-set attached to one tracked instance.
type Permission struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

// InstancePermission pairs an instance ID with its permission bits. It is the
// element type of a user's direct-report tracking list, stored as JSON.
type InstancePermission struct {
	InstanceID  string     `json:"id"`
	Permissions Permission `json:"permissions"`
}

// NewInstancePermission returns a fresh owner-grade record for the given
// instance: the holder can both read and write it.
func NewInstancePermission(instanceID string) InstancePermission {
	return InstancePermission{
		InstanceID:  instanceID,
		Permissions: Permission{Read: true, Write: true},
	}
}

// DirectReport is the per-user ledger of instances currently visible to that
// user through hierarchy-derived permissions.
type DirectReport struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Documents []InstancePermission `json:"documents"`
}

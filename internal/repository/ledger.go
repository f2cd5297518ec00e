package repository

import (
	"context"

	"okrhub/internal/model"
)

// Ledger is the per-user instance-permission store: each user has one
// direct-report tracking list per module, holding {instance, permissions}
// pairs. Grants recorded here are derived state; the propagation engine keeps
// them in lockstep with document ownership and status.
type Ledger interface {
	// GrantToUsers records the given read/write bits for one instance on the
	// tracking list of every user in userIDs, replacing any previous entry
	// for that instance.
	GrantToUsers(ctx context.Context, instanceID string, module ModuleType, read, write bool, userIDs []string) error

	// AddToTrackingList appends the record to the user's tracking list,
	// replacing any previous entry for the same instance.
	AddToTrackingList(ctx context.Context, userID string, module ModuleType, rec model.InstancePermission) error

	// RemoveFromTrackingList removes the instance from the tracking list of
	// every user in userID's company. The company-wide sweep is deliberate:
	// it revokes hierarchy-derived visibility without re-walking the graph to
	// find the exact holder set.
	RemoveFromTrackingList(ctx context.Context, userID string, module ModuleType, instanceID string) error

	// DirectReportByID resolves a tracking list by its own identifier.
	DirectReportByID(ctx context.Context, id string) (*model.DirectReport, error)

	// TrackedPermission returns the permission bits the user holds on the
	// instance, or sql.ErrNoRows when the instance is not on their list.
	TrackedPermission(ctx context.Context, userID string, module ModuleType, instanceID string) (*model.Permission, error)
}

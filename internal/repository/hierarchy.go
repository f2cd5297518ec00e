package repository

import "context"

// SeniorityGraph answers reachability questions over the manager/reportee
// edges of the organizational hierarchy. It is consumed as a black box by the
// permission propagation engine.
type SeniorityGraph interface {
	// IsTopOfHierarchy reports whether the user holds the top-of-hierarchy
	// (CEO) role.
	IsTopOfHierarchy(ctx context.Context, userID string) (bool, error)

	// AllSeniorsOf returns every user reachable by walking "manager of" edges
	// upward from the given reportee, at any depth.
	AllSeniorsOf(ctx context.Context, reporteeID string) ([]string, error)

	// ReporteeSubtreeOf returns every user reachable by walking "manager of"
	// edges downward from the given senior, at any depth.
	ReporteeSubtreeOf(ctx context.Context, seniorID string) ([]string, error)
}

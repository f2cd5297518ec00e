package postgres

import (
	"context"
	"database/sql"

	"okrhub/internal/database"
	"okrhub/internal/repository"
)

// HierarchyPostgres answers seniority-graph queries over the
// reportee_trackers edge table using recursive closures.
type HierarchyPostgres struct {
	db *sql.DB
}

// NewHierarchyPostgres creates a new HierarchyPostgres graph.
func NewHierarchyPostgres(db *sql.DB) *HierarchyPostgres {
	return &HierarchyPostgres{db: db}
}

var _ repository.SeniorityGraph = (*HierarchyPostgres)(nil)

// IsTopOfHierarchy reports whether the user holds the CEO role.
func (g *HierarchyPostgres) IsTopOfHierarchy(ctx context.Context, userID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = $1 AND r.name = 'CEO'
		)
	`
	var isTop bool
	err := database.Conn(ctx, g.db).QueryRowContext(ctx, q, userID).Scan(&isTop)
	return isTop, err
}

// AllSeniorsOf walks the manager edges upward from the reportee.
func (g *HierarchyPostgres) AllSeniorsOf(ctx context.Context, reporteeID string) ([]string, error) {
	const q = `
		WITH RECURSIVE seniors AS (
			SELECT senior_id
			FROM reportee_trackers
			WHERE reportee_id = $1
			UNION
			SELECT rt.senior_id
			FROM reportee_trackers rt
			JOIN seniors s ON rt.reportee_id = s.senior_id
		)
		SELECT senior_id FROM seniors
	`
	return g.queryIDs(ctx, q, reporteeID)
}

// ReporteeSubtreeOf walks the manager edges downward from the senior.
func (g *HierarchyPostgres) ReporteeSubtreeOf(ctx context.Context, seniorID string) ([]string, error) {
	const q = `
		WITH RECURSIVE reportees AS (
			SELECT reportee_id
			FROM reportee_trackers
			WHERE senior_id = $1
			UNION
			SELECT rt.reportee_id
			FROM reportee_trackers rt
			JOIN reportees r ON rt.senior_id = r.reportee_id
		)
		SELECT reportee_id FROM reportees
	`
	return g.queryIDs(ctx, q, seniorID)
}

func (g *HierarchyPostgres) queryIDs(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := database.Conn(ctx, g.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

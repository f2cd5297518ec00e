package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"okrhub/internal/database"
	"okrhub/internal/model"
	"okrhub/internal/repository"
)

// LedgerPostgres stores per-user tracking lists as JSONB arrays on the
// direct_reports table, one row per user.
type LedgerPostgres struct {
	db *sql.DB
}

// NewLedgerPostgres creates a new LedgerPostgres ledger.
func NewLedgerPostgres(db *sql.DB) *LedgerPostgres {
	return &LedgerPostgres{db: db}
}

var _ repository.Ledger = (*LedgerPostgres)(nil)

// stripInstance rebuilds a tracking list without the entry for one instance.
// Used before every append so an instance never appears twice on a list.
const stripInstance = `(
	SELECT COALESCE(jsonb_agg(e), '[]'::jsonb)
	FROM jsonb_array_elements(direct_reports.documents) e
	WHERE e->>'id' <> %s
)`

// GrantToUsers records the permission bits for one instance on every listed
// user's tracking list. Users without a tracking row yet get one created, so
// grants reach seniors who have never owned a document themselves.
func (l *LedgerPostgres) GrantToUsers(ctx context.Context, instanceID string, module repository.ModuleType, read, write bool, userIDs []string) error {
	if err := validateModule(module); err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	const entry = `jsonb_build_array(jsonb_build_object(
			'id', $1::text,
			'permissions', jsonb_build_object('read', $2::bool, 'write', $3::bool)
		))`
	q := fmt.Sprintf(`
		INSERT INTO direct_reports (user_id, documents)
		SELECT u, %s
		FROM unnest($4::uuid[]) AS u
		ON CONFLICT (user_id) DO UPDATE
		SET documents = %s || %s
	`, entry, fmt.Sprintf(stripInstance, "$1"), entry)
	_, err := database.Conn(ctx, l.db).ExecContext(ctx, q, instanceID, read, write, userIDs)
	return err
}

// AddToTrackingList appends the record to the user's tracking list, creating
// the list row when the user does not have one yet.
func (l *LedgerPostgres) AddToTrackingList(ctx context.Context, userID string, module repository.ModuleType, rec model.InstancePermission) error {
	if err := validateModule(module); err != nil {
		return err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal tracking entry: %w", err)
	}
	q := fmt.Sprintf(`
		INSERT INTO direct_reports (user_id, documents)
		VALUES ($1, jsonb_build_array($2::jsonb))
		ON CONFLICT (user_id) DO UPDATE
		SET documents = %s || jsonb_build_array($2::jsonb)
	`, fmt.Sprintf(stripInstance, "$3"))
	_, err = database.Conn(ctx, l.db).ExecContext(ctx, q, userID, string(payload), rec.InstanceID)
	return err
}

// RemoveFromTrackingList purges the instance from the tracking list of every
// user in userID's company.
func (l *LedgerPostgres) RemoveFromTrackingList(ctx context.Context, userID string, module repository.ModuleType, instanceID string) error {
	if err := validateModule(module); err != nil {
		return err
	}
	q := fmt.Sprintf(`
		UPDATE direct_reports
		SET documents = %s
		WHERE user_id IN (
			SELECT ur.user_id
			FROM user_roles ur
			WHERE ur.company_id IN (
				SELECT company_id FROM user_roles WHERE user_id = $1
			)
		)
	`, fmt.Sprintf(stripInstance, "$2"))
	_, err := database.Conn(ctx, l.db).ExecContext(ctx, q, userID, instanceID)
	return err
}

// DirectReportByID fetches one tracking list by its identifier.
func (l *LedgerPostgres) DirectReportByID(ctx context.Context, id string) (*model.DirectReport, error) {
	const q = `SELECT id, user_id, documents FROM direct_reports WHERE id = $1`
	var (
		dr  model.DirectReport
		raw []byte
	)
	if err := database.Conn(ctx, l.db).QueryRowContext(ctx, q, id).Scan(&dr.ID, &dr.UserID, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &dr.Documents); err != nil {
		return nil, fmt.Errorf("unmarshal tracking list: %w", err)
	}
	return &dr, nil
}

// TrackedPermission returns the permission bits the user holds on one instance.
func (l *LedgerPostgres) TrackedPermission(ctx context.Context, userID string, module repository.ModuleType, instanceID string) (*model.Permission, error) {
	if err := validateModule(module); err != nil {
		return nil, err
	}
	const q = `
		SELECT e->'permissions'
		FROM direct_reports dr, jsonb_array_elements(dr.documents) e
		WHERE dr.user_id = $1 AND e->>'id' = $2
		LIMIT 1
	`
	var raw []byte
	if err := database.Conn(ctx, l.db).QueryRowContext(ctx, q, userID, instanceID).Scan(&raw); err != nil {
		return nil, err
	}
	var p model.Permission
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal permission: %w", err)
	}
	return &p, nil
}

// Only the documents module has a tracking-list column today.
func validateModule(module repository.ModuleType) error {
	if module != repository.ModuleDocuments {
		return fmt.Errorf("unknown module type %q", module)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"okrhub/internal/database"
	"okrhub/internal/model"
	"okrhub/internal/repository"
)

// DirectoryPostgres resolves users, roles and company membership from the
// users / roles / user_roles tables.
type DirectoryPostgres struct {
	db *sql.DB
}

// NewDirectoryPostgres creates a new DirectoryPostgres directory.
func NewDirectoryPostgres(db *sql.DB) *DirectoryPostgres {
	return &DirectoryPostgres{db: db}
}

var _ repository.Directory = (*DirectoryPostgres)(nil)

// UserByID fetches a single user by ID.
func (d *DirectoryPostgres) UserByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, username, first_name, last_name FROM users WHERE id = $1`
	var u model.User
	err := database.Conn(ctx, d.db).QueryRowContext(ctx, q, id).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CEOOf fetches the company's top-of-hierarchy user.
func (d *DirectoryPostgres) CEOOf(ctx context.Context, companyID string) (*model.User, error) {
	const q = `
		SELECT u.id, u.username, u.first_name, u.last_name
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.company_id = $1 AND r.name = 'CEO'
		LIMIT 1
	`
	var u model.User
	err := database.Conn(ctx, d.db).QueryRowContext(ctx, q, companyID).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleOf fetches the user's company membership and success-manager flag.
func (d *DirectoryPostgres) RoleOf(ctx context.Context, userID string) (*model.UserRole, error) {
	const q = `SELECT user_id, company_id, is_success_manager FROM user_roles WHERE user_id = $1 LIMIT 1`
	var r model.UserRole
	err := database.Conn(ctx, d.db).QueryRowContext(ctx, q, userID).
		Scan(&r.UserID, &r.CompanyID, &r.IsSuccessManager)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UsersOfCompany returns the IDs of all users belonging to the company.
func (d *DirectoryPostgres) UsersOfCompany(ctx context.Context, companyID string) ([]string, error) {
	const q = `SELECT user_id FROM user_roles WHERE company_id = $1`
	rows, err := database.Conn(ctx, d.db).QueryContext(ctx, q, companyID)
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

// SameCompany reports whether every listed user has a role row and all of
// them share one company. Duplicate IDs count once, so a self-transfer
// ([actor, actor]) still passes.
func (d *DirectoryPostgres) SameCompany(ctx context.Context, userIDs []string) (bool, error) {
	distinct := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	const q = `
		SELECT COUNT(DISTINCT user_id), COUNT(DISTINCT company_id)
		FROM user_roles
		WHERE user_id = ANY($1)
	`
	var users, companies int
	if err := database.Conn(ctx, d.db).QueryRowContext(ctx, q, distinct).Scan(&users, &companies); err != nil {
		return false, err
	}
	return users == len(distinct) && companies == 1, nil
}

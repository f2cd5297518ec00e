package repository

import (
	"context"

	"okrhub/internal/model"
)

// Directory resolves users, roles and company membership. The document
// lifecycle consumes it for identity checks only; user administration lives
// elsewhere.
type Directory interface {
	// UserByID returns the user record, or sql.ErrNoRows when absent.
	UserByID(ctx context.Context, id string) (*model.User, error)

	// CEOOf returns the top-of-hierarchy user of the company, or
	// sql.ErrNoRows when the company has none.
	CEOOf(ctx context.Context, companyID string) (*model.User, error)

	// RoleOf returns the user's organizational role attributes.
	RoleOf(ctx context.Context, userID string) (*model.UserRole, error)

	// UsersOfCompany returns the IDs of every user belonging to the company.
	UsersOfCompany(ctx context.Context, companyID string) ([]string, error)

	// SameCompany reports whether all of the given users belong to one company.
	SameCompany(ctx context.Context, userIDs []string) (bool, error)
}

package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"okrhub/internal/repository"
)

// ErrNoWriteAccess is returned when a user asks to mutate an instance their
// tracking list does not grant write permission on.
var ErrNoWriteAccess = errors.New("user does not have write access to this instance")

// Control is the instance-level access check consumed by the document
// lifecycle before any mutating operation.
type Control interface {
	// RequireWriteAccess returns ErrNoWriteAccess unless the user (or, for a
	// success manager acting on a company, that company's top-of-hierarchy
	// user) holds a write grant on the instance.
	RequireWriteAccess(ctx context.Context, userID, instanceID string, module repository.ModuleType, companyID string) error
}

// ledgerControl decides write access from the instance-permission ledger.
type ledgerControl struct {
	ledger    repository.Ledger
	directory repository.Directory
}

// NewControl constructs the ledger-backed access control.
func NewControl(ledger repository.Ledger, directory repository.Directory) Control {
	return &ledgerControl{ledger: ledger, directory: directory}
}

func (c *ledgerControl) RequireWriteAccess(ctx context.Context, userID, instanceID string, module repository.ModuleType, companyID string) error {
	actingID := userID
	if companyID != "" {
		role, err := c.directory.RoleOf(ctx, userID)
		if err != nil {
			return fmt.Errorf("resolve role: %w", err)
		}
		if role.IsSuccessManager {
			ceo, err := c.directory.CEOOf(ctx, companyID)
			switch {
			case err == nil:
				actingID = ceo.ID
			case errors.Is(err, sql.ErrNoRows):
				// company without a CEO: fall back to the caller
			default:
				return fmt.Errorf("resolve company ceo: %w", err)
			}
		}
	}

	perm, err := c.ledger.TrackedPermission(ctx, actingID, module, instanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoWriteAccess
		}
		return err
	}
	if !perm.Write {
		return ErrNoWriteAccess
	}
	return nil
}

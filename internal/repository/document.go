package repository

import (
	"context"

	"okrhub/internal/model"
)

// DocumentFilter narrows and orders a document listing. Empty slices and an
// empty sort key mean "no restriction"; the default order is newest-first.
type DocumentFilter struct {
	Priorities []string
	Statuses   []string
	Owners     []string
	SortBy     string
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations. Every method runs
// through the transaction stored in ctx when one is active.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByIDForOwners returns the document with the given ID, but only when
	// it is owned by one of ownerIDs. Missing rows surface as sql.ErrNoRows.
	FindByIDForOwners(ctx context.Context, id string, ownerIDs []string) (*model.Document, error)

	// ListByOwners returns a filtered, paginated page of documents owned by
	// any of ownerIDs, with the total row count for the same filter.
	ListByOwners(ctx context.Context, ownerIDs []string, f DocumentFilter, pq PageQuery) (*PageResult[model.Document], error)

	// ListActiveByIDs returns the active documents whose IDs are in ids,
	// ordered newest-first.
	ListActiveByIDs(ctx context.Context, ids []string) ([]model.Document, error)

	// ListIDsByOwnerAndStatus returns the IDs of documents with the given
	// owner and status.
	ListIDsByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]string, error)

	// Update persists the mutable document fields and bumps modified_at.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

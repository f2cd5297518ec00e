package service

import (
	"context"
	"fmt"

	"okrhub/internal/model"
	"okrhub/internal/repository"
)

// ownerRoleRule is one row of the grant table applied when a document becomes
// visible to the owner's hierarchy:
//
//	owner position      | grant      | holders
//	top-of-hierarchy    | read       | owner's full reportee subtree
//	anyone else         | read+write | every direct and indirect senior
type ownerRoleRule struct {
	read    bool
	write   bool
	holders func(ctx context.Context, graph repository.SeniorityGraph, ownerID string) ([]string, error)
}

var ownerRoleRules = map[bool]ownerRoleRule{
	true: {
		read:  true,
		write: false,
		holders: func(ctx context.Context, graph repository.SeniorityGraph, ownerID string) ([]string, error) {
			return graph.ReporteeSubtreeOf(ctx, ownerID)
		},
	},
	false: {
		read:  true,
		write: true,
		holders: func(ctx context.Context, graph repository.SeniorityGraph, ownerID string) ([]string, error) {
			return graph.AllSeniorsOf(ctx, ownerID)
		},
	},
}

// PropagationEngine keeps the instance-permission ledger consistent with
// document ownership and status. All methods are expected to run inside the
// caller's transaction; any error aborts it, leaving grants and tracking
// lists untouched.
type PropagationEngine struct {
	graph  repository.SeniorityGraph
	ledger repository.Ledger
}

// NewPropagationEngine constructs an engine over the given collaborators.
func NewPropagationEngine(graph repository.SeniorityGraph, ledger repository.Ledger) *PropagationEngine {
	return &PropagationEngine{graph: graph, ledger: ledger}
}

// ApplyOwnerRolePermissions grants hierarchy-derived visibility on the
// document according to the owner's position. A silent no-op when the holder
// set is empty.
func (e *PropagationEngine) ApplyOwnerRolePermissions(ctx context.Context, ownerIsTop bool, ownerID, documentID string) error {
	rule := ownerRoleRules[ownerIsTop]
	holders, err := rule.holders(ctx, e.graph, ownerID)
	if err != nil {
		return fmt.Errorf("resolve grant holders: %w", err)
	}
	if len(holders) == 0 {
		return nil
	}
	return e.ledger.GrantToUsers(ctx, documentID, repository.ModuleDocuments, rule.read, rule.write, holders)
}

// ShareWithHierarchy evaluates the owner's position and applies the matching
// grant rule. Fired on creation with Shared status and on every
// Private->Shared transition.
func (e *PropagationEngine) ShareWithHierarchy(ctx context.Context, ownerID, documentID string) error {
	isTop, err := e.graph.IsTopOfHierarchy(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("resolve owner position: %w", err)
	}
	return e.ApplyOwnerRolePermissions(ctx, isTop, ownerID, documentID)
}

// RevokeToPrivate handles the Shared->Private transition: the instance is
// purged from every tracking list in the owner's company, then a fresh
// owner-grade record is registered for the owner alone. The purge is
// deliberately company-wide; the exact holder set is not invertible without
// re-walking the graph.
func (e *PropagationEngine) RevokeToPrivate(ctx context.Context, ownerID, documentID string) error {
	if err := e.ledger.RemoveFromTrackingList(ctx, ownerID, repository.ModuleDocuments, documentID); err != nil {
		return err
	}
	return e.ledger.AddToTrackingList(ctx, ownerID, repository.ModuleDocuments, model.NewInstancePermission(documentID))
}

// TransferOwnership moves the document's ledger registration from the current
// holder set to the new owner, re-deriving hierarchy grants when the document
// is shared.
func (e *PropagationEngine) TransferOwnership(ctx context.Context, fromUserID, newOwnerID, documentID string, shared bool) error {
	if err := e.ledger.RemoveFromTrackingList(ctx, fromUserID, repository.ModuleDocuments, documentID); err != nil {
		return err
	}
	if err := e.ledger.AddToTrackingList(ctx, newOwnerID, repository.ModuleDocuments, model.NewInstancePermission(documentID)); err != nil {
		return err
	}
	if shared {
		return e.ShareWithHierarchy(ctx, newOwnerID, documentID)
	}
	return nil
}

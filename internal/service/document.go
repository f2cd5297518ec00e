package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"okrhub/internal/access"
	"okrhub/internal/database"
	"okrhub/internal/model"
	"okrhub/internal/repository"
	"okrhub/internal/storage"
)

// CreateDocumentInput carries the fields for a new document. Owner, when set,
// creates the document on behalf of another user (delegate create). CompanyID
// lets a success manager act on a company other than their own.
type CreateDocumentInput struct {
	Title     string
	Priority  string
	Status    string
	Link      string
	Owner     string
	File      *storage.Upload
	CompanyID string
}

// UpdateDocumentInput carries the mutable document fields; empty fields are
// left unchanged. Status and Owner must not both be set in one call.
type UpdateDocumentInput struct {
	Title     string
	Priority  string
	Status    string
	Link      string
	Owner     string
	File      *storage.Upload
	CompanyID string
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the document lifecycle use cases. Each mutating
// operation runs as one all-or-nothing transaction covering the entity write
// and every permission side effect; errors surface to the caller untranslated.
type DocumentService interface {
	// Create validates, stores the optional file, persists the document and
	// registers its permissions with the owner's hierarchy.
	Create(ctx context.Context, requesterID string, in CreateDocumentInput) (*model.Document, error)

	// Update applies field changes, file replacement, status transitions and
	// ownership transfer, propagating permission changes for the latter two.
	Update(ctx context.Context, requesterID, documentID string, in UpdateDocumentInput) (*model.Document, error)

	// Delete removes the document, its attached file and its tracking-list
	// registration.
	Delete(ctx context.Context, requesterID, documentID, companyID string) error

	// ListAll returns the documents owned by any user visible to the
	// requester, filtered and paginated.
	ListAll(ctx context.Context, requesterID, companyID string, f repository.DocumentFilter, pq repository.PageQuery) (*DocumentListResult, error)

	// ListForDirectReport returns the active documents tracked by the given
	// direct-report record, annotated with per-document permission bits.
	// Private documents owned by the tracked user are never exposed to any
	// other requester, even while still referenced by the tracking list.
	ListForDirectReport(ctx context.Context, requesterID, directReportID string) ([]model.DocumentWithPermission, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	db          *sql.DB
	repo        repository.DocumentRepository
	ledger      repository.Ledger
	directory   repository.Directory
	files       storage.FileStore
	access      access.Control
	engine      *PropagationEngine
	allowedExts map[string]struct{}
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	db *sql.DB,
	repo repository.DocumentRepository,
	ledger repository.Ledger,
	directory repository.Directory,
	graph repository.SeniorityGraph,
	files storage.FileStore,
	accessCtl access.Control,
	allowedExtensions []string,
) DocumentService {
	exts := make(map[string]struct{}, len(allowedExtensions))
	for _, e := range allowedExtensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	return &documentService{
		db:          db,
		repo:        repo,
		ledger:      ledger,
		directory:   directory,
		files:       files,
		access:      accessCtl,
		engine:      NewPropagationEngine(graph, ledger),
		allowedExts: exts,
	}
}

func (s *documentService) Create(ctx context.Context, requesterID string, in CreateDocumentInput) (*model.Document, error) {
	if in.File != nil {
		if err := s.checkExtension(in.File.Filename); err != nil {
			return nil, err
		}
	}
	if in.Link == "" && in.File == nil {
		return nil, ErrLinkOrFileRequired
	}
	if !model.ValidPriority(in.Priority) {
		return nil, ErrInvalidPriority
	}
	if !model.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	if in.Owner != "" && in.Status == model.StatusPrivate {
		return nil, ErrPrivateDelegateCreate
	}

	actor, _, err := s.resolveActor(ctx, requesterID, in.CompanyID)
	if err != nil {
		return nil, err
	}

	owner := actor
	if in.Owner != "" {
		owner, err = s.directory.UserByID(ctx, in.Owner)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	var created *model.Document
	err = database.InTx(ctx, s.db, func(ctx context.Context) error {
		// An explicit link wins over an attached file; the file is only
		// stored, and the upload flags only set, when it becomes the link.
		link := in.Link
		uploaded := false
		var fileName *string
		if link == "" {
			info, err := s.files.StoreOrReplace(ctx, *in.File, owner.Username)
			if err != nil {
				return err
			}
			link = info.URL
			uploaded = true
			fileName = &in.File.Filename
		}

		now := time.Now().UTC()
		doc := &model.Document{
			ID:             uuid.NewString(),
			Title:          in.Title,
			Priority:       in.Priority,
			Status:         in.Status,
			Owner:          owner.ID,
			Link:           link,
			IsFileUploaded: uploaded,
			FileName:       fileName,
			CreatedAt:      now,
			ModifiedAt:     now,
			IsActive:       true,
		}
		created, err = s.repo.Create(ctx, doc)
		if err != nil {
			return err
		}

		if err := s.ledger.AddToTrackingList(ctx, owner.ID, repository.ModuleDocuments, model.NewInstancePermission(created.ID)); err != nil {
			return err
		}

		if in.Status == model.StatusShared {
			return s.engine.ShareWithHierarchy(ctx, owner.ID, created.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *documentService) Update(ctx context.Context, requesterID, documentID string, in UpdateDocumentInput) (*model.Document, error) {
	if err := s.access.RequireWriteAccess(ctx, requesterID, documentID, repository.ModuleDocuments, in.CompanyID); err != nil {
		return nil, err
	}

	owners, err := s.visibleOwners(ctx, requesterID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByIDForOwners(ctx, documentID, owners)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if in.Status != "" && in.Owner != "" {
		return nil, ErrOwnerStatusConflict
	}
	if in.Status != "" && !model.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	if in.Priority != "" && !model.ValidPriority(in.Priority) {
		return nil, ErrInvalidPriority
	}

	actor, _, err := s.resolveActor(ctx, requesterID, in.CompanyID)
	if err != nil {
		return nil, err
	}

	var updated *model.Document
	err = database.InTx(ctx, s.db, func(ctx context.Context) error {
		link := in.Link
		if in.Link != "" || in.File != nil {
			if doc.IsFileUploaded {
				if err := s.files.Remove(ctx, doc.Link); err != nil {
					return err
				}
			}
			if in.File != nil {
				if err := s.checkExtension(in.File.Filename); err != nil {
					return err
				}
				info, err := s.files.StoreOrReplace(ctx, *in.File, actor.Username)
				if err != nil {
					return err
				}
				link = info.URL
				doc.FileName = &in.File.Filename
			} else {
				doc.FileName = nil
			}
			doc.IsFileUploaded = in.File != nil
		}

		if in.Status != "" {
			switch {
			case doc.Status == model.StatusShared && in.Status == model.StatusPrivate:
				if err := s.engine.RevokeToPrivate(ctx, doc.Owner, doc.ID); err != nil {
					return err
				}
			case doc.Status == model.StatusPrivate && in.Status == model.StatusShared:
				if err := s.engine.ShareWithHierarchy(ctx, doc.Owner, doc.ID); err != nil {
					return err
				}
			}
		}

		if in.Owner != "" {
			newOwner, err := s.directory.UserByID(ctx, in.Owner)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrUserNotFound
				}
				return err
			}
			same, err := s.directory.SameCompany(ctx, []string{actor.ID, newOwner.ID})
			if err != nil {
				return err
			}
			if !same {
				return ErrNotSameCompany
			}
			doc.Owner = newOwner.ID
			if err := s.engine.TransferOwnership(ctx, actor.ID, newOwner.ID, doc.ID, doc.Status == model.StatusShared); err != nil {
				return err
			}
		}

		doc.ApplyUpdate(in.Title, in.Priority, in.Status, link)
		updated, err = s.repo.Update(ctx, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *documentService) Delete(ctx context.Context, requesterID, documentID, companyID string) error {
	owners, err := s.visibleOwners(ctx, requesterID, companyID)
	if err != nil {
		return err
	}
	doc, err := s.repo.FindByIDForOwners(ctx, documentID, owners)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return err
	}

	if err := s.access.RequireWriteAccess(ctx, requesterID, documentID, repository.ModuleDocuments, companyID); err != nil {
		return err
	}

	return database.InTx(ctx, s.db, func(ctx context.Context) error {
		if doc.IsFileUploaded {
			if err := s.files.Remove(ctx, doc.Link); err != nil {
				return err
			}
		}
		if err := s.ledger.RemoveFromTrackingList(ctx, requesterID, repository.ModuleDocuments, doc.ID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, doc.ID)
	})
}

func (s *documentService) ListAll(ctx context.Context, requesterID, companyID string, f repository.DocumentFilter, pq repository.PageQuery) (*DocumentListResult, error) {
	if pq.Limit <= 0 {
		pq.Limit = 10
	}
	if pq.Offset < 0 {
		pq.Offset = 0
	}

	owners, err := s.visibleOwners(ctx, requesterID, companyID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.ListByOwners(ctx, owners, f, pq)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) ListForDirectReport(ctx context.Context, requesterID, directReportID string) ([]model.DocumentWithPermission, error) {
	dr, err := s.ledger.DirectReportByID(ctx, directReportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDirectReportNotFound
		}
		return nil, err
	}
	if len(dr.Documents) == 0 {
		return []model.DocumentWithPermission{}, nil
	}

	perms := make(map[string]model.Permission, len(dr.Documents))
	for _, rec := range dr.Documents {
		perms[rec.InstanceID] = rec.Permissions
	}

	// Tracking lists may still reference documents their owner has since made
	// private; those must never reach anyone but the owner.
	if dr.UserID != requesterID {
		privateIDs, err := s.repo.ListIDsByOwnerAndStatus(ctx, dr.UserID, model.StatusPrivate)
		if err != nil {
			return nil, err
		}
		for _, id := range privateIDs {
			delete(perms, id)
		}
	}
	if len(perms) == 0 {
		return []model.DocumentWithPermission{}, nil
	}

	ids := make([]string, 0, len(perms))
	for _, rec := range dr.Documents {
		if _, ok := perms[rec.InstanceID]; ok {
			ids = append(ids, rec.InstanceID)
		}
	}

	docs, err := s.repo.ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.DocumentWithPermission, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.DocumentWithPermission{Document: d, Permissions: perms[d.ID]})
	}
	return out, nil
}

// resolveActor resolves the requesting user and applies the success-manager
// company override: when a success manager acts on an explicit company, the
// effective identity becomes that company's top-of-hierarchy user (falling
// back to the caller when the company has none).
func (s *documentService) resolveActor(ctx context.Context, requesterID, companyID string) (*model.User, *model.UserRole, error) {
	user, err := s.directory.UserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	role, err := s.directory.RoleOf(ctx, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve role: %w", err)
	}

	if companyID != "" && role.IsSuccessManager {
		ceo, err := s.directory.CEOOf(ctx, companyID)
		switch {
		case err == nil:
			user = ceo
		case errors.Is(err, sql.ErrNoRows):
			// keep the caller
		default:
			return nil, nil, err
		}
	}
	return user, role, nil
}

// visibleOwners returns the IDs of every user whose documents the requester
// may see: the users of the requester's company, or of the override company
// when the requester is a success manager.
func (s *documentService) visibleOwners(ctx context.Context, requesterID, companyID string) ([]string, error) {
	role, err := s.directory.RoleOf(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}
	cid := role.CompanyID
	if companyID != "" && role.IsSuccessManager {
		cid = companyID
	}
	return s.directory.UsersOfCompany(ctx, cid)
}

func (s *documentService) checkExtension(filename string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := s.allowedExts[ext]; !ok {
		return ErrFileExtensionNotAllowed
	}
	return nil
}

package service

import "errors"

// Validation errors.
var (
	ErrLinkOrFileRequired      = errors.New("a link or a document file is required")
	ErrFileExtensionNotAllowed = errors.New("file type is not allowed")
	ErrInvalidPriority         = errors.New("priority must be Low, Medium or High")
	ErrInvalidStatus           = errors.New("status must be Private or Shared")
)

// Permission errors.
var (
	ErrPrivateDelegateCreate = errors.New("cannot create a private document for another user")
	ErrOwnerStatusConflict   = errors.New("cannot update the owner and status of a document at the same time")
	ErrNotSameCompany        = errors.New("owner does not belong to the same company")
)

// Not-found errors.
var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrUserNotFound         = errors.New("user does not exist")
	ErrDirectReportNotFound = errors.New("direct report not found")
)

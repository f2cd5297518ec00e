package model

import "time"

// Document priority levels.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Document visibility status.
const (
	StatusPrivate = "Private"
	StatusShared  = "Shared"
)

// Document represents a document owned by a user of a company.
// This is a pure domain model with no database-specific dependencies or tags.
// Link is always non-empty: it is either supplied by the caller or derived
// from the storage URL of an uploaded file.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Owner          string    `json:"owner"`
	Link           string    `json:"link"`
	IsFileUploaded bool      `json:"is_file_uploaded"`
	FileName       *string   `json:"file_name"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
	IsActive       bool      `json:"is_active"`
}

// ApplyUpdate merges the non-empty incoming fields into the document.
// Owner and file bookkeeping are handled separately by the lifecycle service.
func (d *Document) ApplyUpdate(title, priority, status, link string) {
	if title != "" {
		d.Title = title
	}
	if priority != "" {
		d.Priority = priority
	}
	if status != "" {
		d.Status = status
	}
	if link != "" {
		d.Link = link
	}
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	return s == StatusPrivate || s == StatusShared
}

// DocumentWithPermission is a document annotated with the permission bits the
// requesting direct report holds on it.
type DocumentWithPermission struct {
	Document
	Permissions Permission `json:"permissions"`
}

package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ModuleType names the instance-permission module a grant is scoped to.
type ModuleType string

// ModuleDocuments scopes grants and tracking-list entries to documents.
const ModuleDocuments ModuleType = "documents"

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

package mocks

import (
	"context"

	"okrhub/internal/model"
	"okrhub/internal/repository"
	"okrhub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, requesterID string, in service.CreateDocumentInput) (*model.Document, error) {
	args := m.Called(ctx, requesterID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, requesterID, documentID string, in service.UpdateDocumentInput) (*model.Document, error) {
	args := m.Called(ctx, requesterID, documentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, requesterID, documentID, companyID string) error {
	args := m.Called(ctx, requesterID, documentID, companyID)
	return args.Error(0)
}

func (m *MockDocumentService) ListAll(ctx context.Context, requesterID, companyID string, f repository.DocumentFilter, pq repository.PageQuery) (*service.DocumentListResult, error) {
	args := m.Called(ctx, requesterID, companyID, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) ListForDirectReport(ctx context.Context, requesterID, directReportID string) ([]model.DocumentWithPermission, error) {
	args := m.Called(ctx, requesterID, directReportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentWithPermission), args.Error(1)
}

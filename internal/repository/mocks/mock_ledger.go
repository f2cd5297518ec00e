package mocks

import (
	"context"

	"okrhub/internal/model"
	"okrhub/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GrantToUsers(ctx context.Context, instanceID string, module repository.ModuleType, read, write bool, userIDs []string) error {
	args := m.Called(ctx, instanceID, module, read, write, userIDs)
	return args.Error(0)
}

func (m *MockLedger) AddToTrackingList(ctx context.Context, userID string, module repository.ModuleType, rec model.InstancePermission) error {
	args := m.Called(ctx, userID, module, rec)
	return args.Error(0)
}

func (m *MockLedger) RemoveFromTrackingList(ctx context.Context, userID string, module repository.ModuleType, instanceID string) error {
	args := m.Called(ctx, userID, module, instanceID)
	return args.Error(0)
}

func (m *MockLedger) DirectReportByID(ctx context.Context, id string) (*model.DirectReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DirectReport), args.Error(1)
}

func (m *MockLedger) TrackedPermission(ctx context.Context, userID string, module repository.ModuleType, instanceID string) (*model.Permission, error) {
	args := m.Called(ctx, userID, module, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

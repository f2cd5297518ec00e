package mocks

import (
	"context"

	"okrhub/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockControl struct {
	mock.Mock
}

func (m *MockControl) RequireWriteAccess(ctx context.Context, userID, instanceID string, module repository.ModuleType, companyID string) error {
	args := m.Called(ctx, userID, instanceID, module, companyID)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSeniorityGraph struct {
	mock.Mock
}

func (m *MockSeniorityGraph) IsTopOfHierarchy(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeniorityGraph) AllSeniorsOf(ctx context.Context, reporteeID string) ([]string, error) {
	args := m.Called(ctx, reporteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSeniorityGraph) ReporteeSubtreeOf(ctx context.Context, seniorID string) ([]string, error) {
	args := m.Called(ctx, seniorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

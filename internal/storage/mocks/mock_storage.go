package mocks

import (
	"context"
	"io"

	"okrhub/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) StoreOrReplace(ctx context.Context, up storage.Upload, ownerName string) (storage.FileInfo, error) {
	args := m.Called(ctx, up, ownerName)
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockFileStore) Remove(ctx context.Context, link string) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

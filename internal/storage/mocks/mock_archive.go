package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"pantryapi/internal/storage"
)

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Create(ctx context.Context, folder, name, contentType string, r io.Reader, size int64) (storage.Object, error) {
	args := m.Called(ctx, folder, name, contentType, r, size)
	return args.Get(0).(storage.Object), args.Error(1)
}

func (m *MockArchive) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArchive) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

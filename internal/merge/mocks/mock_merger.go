package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantryapi/internal/merge"
)

type MockMerger struct {
	mock.Mock
}

func (m *MockMerger) Merge(ctx context.Context, inputs []merge.Input) ([]byte, error) {
	args := m.Called(ctx, inputs)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

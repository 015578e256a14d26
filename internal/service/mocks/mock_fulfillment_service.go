package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantryapi/internal/model"
)

type MockFulfillmentService struct {
	mock.Mock
}

func (m *MockFulfillmentService) Lookup(ctx context.Context, formID string) (*model.IntakeRecord, error) {
	args := m.Called(ctx, formID)
	if rec, ok := args.Get(0).(*model.IntakeRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFulfillmentService) GenerateLabels(ctx context.Context, req model.LabelRequest) (*model.GenerateResult, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*model.GenerateResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFulfillmentService) UpdateAfterGenerate(ctx context.Context, req model.UpdateRequest) (*model.UpdateResult, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*model.UpdateResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

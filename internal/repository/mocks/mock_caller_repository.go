package mocks

import (
	"context"

	"calldash/internal/model"
	"calldash/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCallerRepository struct {
	mock.Mock
}

func (m *MockCallerRepository) Create(ctx context.Context, c *model.Caller) (*model.Caller, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Caller), args.Error(1)
}

func (m *MockCallerRepository) FindByID(ctx context.Context, id string) (*model.Caller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Caller), args.Error(1)
}

func (m *MockCallerRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Caller], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Caller]), args.Error(1)
}

func (m *MockCallerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

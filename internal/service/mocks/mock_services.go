package mocks

import (
	"context"
	"io"

	"calldash/internal/model"
	"calldash/internal/pagination"
	"calldash/internal/service"
	"calldash/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockCallerService struct {
	mock.Mock
}

func (m *MockCallerService) List(ctx context.Context, page, limit int, filter model.CallerFilter) (pagination.Response[model.Caller], error) {
	args := m.Called(ctx, page, limit, filter)
	if f, ok := args.Get(0).(func(int, int) pagination.Response[model.Caller]); ok {
		return f(page, limit), args.Error(1)
	}
	return args.Get(0).(pagination.Response[model.Caller]), args.Error(1)
}

func (m *MockCallerService) Get(ctx context.Context, id string) (*model.Caller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Caller), args.Error(1)
}

func (m *MockCallerService) Create(ctx context.Context, in service.CreateCallerInput) (*model.Caller, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Caller), args.Error(1)
}

func (m *MockCallerService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, filter model.CallerFilter) (*model.Export, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}

func (m *MockExportService) Open(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"intranet/internal/graph"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListChildren(ctx context.Context, folderID string) ([]graph.DriveItem, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.DriveItem), args.Error(1)
}

func (m *MockClient) Upload(ctx context.Context, folderID, filename string, r io.Reader, size int64) (*graph.DriveItem, error) {
	args := m.Called(ctx, folderID, filename, r, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graph.DriveItem), args.Error(1)
}

func (m *MockClient) Search(ctx context.Context, query string) ([]graph.DriveItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.DriveItem), args.Error(1)
}

func (m *MockClient) ListItems(ctx context.Context, listID string) ([]graph.ListItem, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.ListItem), args.Error(1)
}

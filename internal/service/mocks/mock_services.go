package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"intranet/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) ListByCategory(ctx context.Context, cat string) ([]model.DocumentEntry, error) {
	args := m.Called(ctx, cat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentEntry), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, cat, filename string, r io.Reader, size int64) (*model.UploadedFile, error) {
	args := m.Called(ctx, cat, filename, r, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadedFile), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchResult), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) News(ctx context.Context) ([]model.NewsItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NewsItem), args.Error(1)
}

func (m *MockContentService) CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

func (m *MockContentService) Partners(ctx context.Context, cat string) ([]model.Partner, error) {
	args := m.Called(ctx, cat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Partner), args.Error(1)
}

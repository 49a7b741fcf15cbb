package service

import (
	"context"
	"fmt"
	"io"

	"intranet/internal/category"
	"intranet/internal/graph"
	"intranet/internal/model"
)

// DocumentService lists and uploads documents per category, going straight to
// the remote document service (not through the index).
type DocumentService interface {
	// ListByCategory enumerates the folder mapped to the category.
	// Unknown categories yield category.ErrUnknownCategory.
	ListByCategory(ctx context.Context, cat string) ([]model.DocumentEntry, error)

	// Upload stores the content in the category's folder. The category is
	// resolved before any upstream call is made.
	Upload(ctx context.Context, cat, filename string, r io.Reader, size int64) (*model.UploadedFile, error)
}

type documentService struct {
	registry *category.Registry
	drive    graph.Client
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(registry *category.Registry, drive graph.Client) DocumentService {
	return &documentService{registry: registry, drive: drive}
}

func (s *documentService) ListByCategory(ctx context.Context, cat string) ([]model.DocumentEntry, error) {
	folderID, err := s.registry.Resolve(cat)
	if err != nil {
		return nil, err
	}

	items, err := s.drive.ListChildren(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder for %q: %w", cat, err)
	}

	entries := make([]model.DocumentEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, model.DocumentEntry{
			ID:   item.ID,
			Name: item.Name,
			Path: item.Link(),
			Size: item.Size,
		})
	}
	return entries, nil
}

func (s *documentService) Upload(ctx context.Context, cat, filename string, r io.Reader, size int64) (*model.UploadedFile, error) {
	folderID, err := s.registry.Resolve(cat)
	if err != nil {
		return nil, err
	}

	item, err := s.drive.Upload(ctx, folderID, filename, r, size)
	if err != nil {
		return nil, fmt.Errorf("upload to %q: %w", cat, err)
	}

	return &model.UploadedFile{
		Name: item.Name,
		Path: item.Link(),
		Size: item.Size,
	}, nil
}

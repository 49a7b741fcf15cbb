package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"intranet/internal/index"
	"intranet/internal/model"
)

// SearchService answers free-text queries against the document index. The
// deployment uses the indexed strategy exclusively: every query reads the
// last published snapshot, never the remote service, so result shape and
// latency stay consistent.
type SearchService interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// NewsProvider is the slice of the content service the search engine uses to
// concatenate headlines onto document results.
type NewsProvider interface {
	News(ctx context.Context) ([]model.NewsItem, error)
}

type searchService struct {
	index *index.Index
	news  NewsProvider
	log   *zap.Logger
}

// NewSearchService constructs a new SearchService. news may be nil to search
// documents only.
func NewSearchService(idx *index.Index, news NewsProvider, log *zap.Logger) SearchService {
	return &searchService{index: idx, news: news, log: log}
}

// Search matches the query case-insensitively as a substring. Documents come
// first in discovery order, then matching news headlines. A news fetch
// failure degrades to documents-only rather than failing the query.
func (s *searchService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	var results []model.SearchResult
	for _, rec := range s.index.Snapshot().Records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			results = append(results, model.SearchResult{
				Type:        "document",
				Title:       rec.Name,
				Description: rec.Category,
				Link:        rec.Link,
			})
		}
	}

	if s.news == nil {
		return results, nil
	}

	items, err := s.news.News(ctx)
	if err != nil {
		s.log.Warn("news lookup failed during search", zap.Error(err))
		return results, nil
	}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Summary), needle) {
			results = append(results, model.SearchResult{
				Type:        "news",
				Title:       item.Title,
				Description: item.Summary,
				Link:        item.Link,
			})
		}
	}
	return results, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"intranet/internal/graph"
	"intranet/internal/model"
)

// ContentService reads the news, calendar, and partner lists through the
// remote document service. These are pure read-through proxies with no local
// state.
type ContentService interface {
	News(ctx context.Context) ([]model.NewsItem, error)
	CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error)
	// Partners returns the partner rows whose category matches, compared
	// case-insensitively. An unmatched category yields an empty list.
	Partners(ctx context.Context, cat string) ([]model.Partner, error)
}

type contentService struct {
	client        graph.Client
	newsListID    string
	calendarID    string
	partnerListID string
}

// NewContentService constructs a new ContentService.
func NewContentService(client graph.Client, newsListID, calendarID, partnerListID string) ContentService {
	return &contentService{
		client:        client,
		newsListID:    newsListID,
		calendarID:    calendarID,
		partnerListID: partnerListID,
	}
}

func (s *contentService) News(ctx context.Context) ([]model.NewsItem, error) {
	items, err := s.client.ListItems(ctx, s.newsListID)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	news := make([]model.NewsItem, 0, len(items))
	for _, it := range items {
		news = append(news, model.NewsItem{
			ID:      it.ID,
			Title:   it.Field("Title"),
			Summary: it.Field("Summary"),
			Link:    it.Field("Link"),
			Date:    it.Field("Published"),
		})
	}
	return news, nil
}

func (s *contentService) CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	items, err := s.client.ListItems(ctx, s.calendarID)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	events := make([]model.CalendarEvent, 0, len(items))
	for _, it := range items {
		events = append(events, model.CalendarEvent{
			ID:       it.ID,
			Title:    it.Field("Title"),
			Start:    it.Field("EventDate"),
			End:      it.Field("EndDate"),
			Location: it.Field("Location"),
		})
	}
	return events, nil
}

func (s *contentService) Partners(ctx context.Context, cat string) ([]model.Partner, error) {
	items, err := s.client.ListItems(ctx, s.partnerListID)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}

	partners := make([]model.Partner, 0)
	for _, it := range items {
		if !strings.EqualFold(it.Field("Category"), cat) {
			continue
		}
		partners = append(partners, model.Partner{
			ID:       it.ID,
			Name:     it.Field("Title"),
			Category: strings.ToLower(it.Field("Category")),
			Contact:  it.Field("Contact"),
			Website:  it.Field("Website"),
		})
	}
	return partners, nil
}

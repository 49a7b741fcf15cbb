package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"intranet/internal/category"
	"intranet/internal/graph"
	"intranet/internal/model"
	"intranet/internal/service"
	serviceMocks "intranet/internal/service/mocks"
)

func TestRoot(t *testing.T) {
	app := fiber.New()
	app.Get("/", Root())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "live")
}

func TestHealth(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", Health(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func loginBody(email, password string) *bytes.Reader {
	b, _ := json.Marshal(map[string]string{"email": email, "password": password})
	return bytes.NewReader(b)
}

func TestLogin(t *testing.T) {
	mockAuth := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/login", Login(mockAuth))

	t.Run("success omits password", func(t *testing.T) {
		mockAuth.On("Login", mock.Anything, "peter@gutfelt.com", "123").Return(&model.User{
			ID: 1, Name: "Peter Jensen", Email: "peter@gutfelt.com", Role: "Medarbejder",
			PasswordHash: "$2a$10$secret",
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/login", loginBody("peter@gutfelt.com", "123"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var user map[string]any
		require.NoError(t, json.Unmarshal(body, &user))
		assert.Equal(t, float64(1), user["id"])
		assert.Equal(t, "Peter Jensen", user["name"])
		assert.Equal(t, "peter@gutfelt.com", user["email"])
		assert.Equal(t, "Medarbejder", user["role"])
		assert.NotContains(t, string(body), "password")
		assert.NotContains(t, string(body), "secret")
		mockAuth.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/login", loginBody("peter@gutfelt.com", ""))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown email and wrong password yield identical bodies", func(t *testing.T) {
		mockAuth.On("Login", mock.Anything, "nobody@gutfelt.com", "123").
			Return(nil, service.ErrInvalidCredential).Once()
		mockAuth.On("Login", mock.Anything, "peter@gutfelt.com", "wrong").
			Return(nil, service.ErrInvalidCredential).Once()

		req1 := httptest.NewRequest(http.MethodPost, "/api/login", loginBody("nobody@gutfelt.com", "123"))
		req1.Header.Set("Content-Type", "application/json")
		resp1, _ := app.Test(req1)

		req2 := httptest.NewRequest(http.MethodPost, "/api/login", loginBody("peter@gutfelt.com", "wrong"))
		req2.Header.Set("Content-Type", "application/json")
		resp2, _ := app.Test(req2)

		assert.Equal(t, http.StatusUnauthorized, resp1.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)

		body1, _ := io.ReadAll(resp1.Body)
		body2, _ := io.ReadAll(resp2.Body)
		assert.Equal(t, body1, body2)
	})

	t.Run("store failure stays generic", func(t *testing.T) {
		mockAuth.On("Login", mock.Anything, "peter@gutfelt.com", "123").
			Return(nil, errors.New("pq: connection refused")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/login", loginBody("peter@gutfelt.com", "123"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(body), "pq:")
	})
}

func TestListDocuments(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:category", ListDocuments(mockDocs))

	t.Run("success", func(t *testing.T) {
		mockDocs.On("ListByCategory", mock.Anything, "personale").Return([]model.DocumentEntry{
			{ID: "1", Name: "handbook.pdf", Path: "https://dl/1", Size: 42},
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/personale", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var entries []model.DocumentEntry
		json.NewDecoder(resp.Body).Decode(&entries)
		require.Len(t, entries, 1)
		assert.Equal(t, "handbook.pdf", entries[0].Name)
		mockDocs.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		mockDocs.On("ListByCategory", mock.Anything, "gdpr").
			Return(nil, category.ErrUnknownCategory).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/gdpr", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("upstream failure", func(t *testing.T) {
		mockDocs.On("ListByCategory", mock.Anything, "personale").
			Return(nil, graph.ErrUpstreamUnavailable).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/personale", nil))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func uploadRequest(t *testing.T, target, field, filename string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	part.Write([]byte("hello world"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadDocument(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/upload/:category", UploadDocument(mockDocs))

	t.Run("success", func(t *testing.T) {
		mockDocs.On("Upload", mock.Anything, "personale", "report.pdf", mock.Anything, mock.Anything).
			Return(&model.UploadedFile{Name: "report.pdf", Path: "https://dl/99", Size: 11}, nil).Once()

		resp, _ := app.Test(uploadRequest(t, "/api/upload/personale", "document", "report.pdf"))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			Message string             `json:"message"`
			File    model.UploadedFile `json:"file"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.NotEmpty(t, result.Message)
		assert.Equal(t, "report.pdf", result.File.Name)
		mockDocs.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload/personale", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockDocs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		mockDocs.On("Upload", mock.Anything, "unknown-category", "report.pdf", mock.Anything, mock.Anything).
			Return(nil, category.ErrUnknownCategory).Once()

		resp, _ := app.Test(uploadRequest(t, "/api/upload/unknown-category", "document", "report.pdf"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockDocs.On("Upload", mock.Anything, "personale", "dup.pdf", mock.Anything, mock.Anything).
			Return(nil, graph.ErrConflict).Once()

		resp, _ := app.Test(uploadRequest(t, "/api/upload/personale", "document", "dup.pdf"))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestSearch(t *testing.T) {
	mockSearch := new(serviceMocks.MockSearchService)
	app := fiber.New()
	app.Get("/api/search", Search(mockSearch))

	t.Run("success", func(t *testing.T) {
		mockSearch.On("Search", mock.Anything, "report").Return([]model.SearchResult{
			{Type: "document", Title: "Q1 Report.pdf", Description: "personale", Link: "https://dl/1"},
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/search?q=report", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var results []model.SearchResult
		json.NewDecoder(resp.Body).Decode(&results)
		require.Len(t, results, 1)
		assert.Equal(t, "Q1 Report.pdf", results[0].Title)
	})

	t.Run("missing query", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/search", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSearch.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		mockSearch.On("Search", mock.Anything, "nothing").Return(nil, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/search?q=nothing", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", string(bytes.TrimSpace(body)))
	})
}

func TestContentProxies(t *testing.T) {
	mockContent := new(serviceMocks.MockContentService)
	app := fiber.New()
	app.Get("/api/news", News(mockContent))
	app.Get("/api/calendar-events", CalendarEvents(mockContent))
	app.Get("/api/partners/:category", Partners(mockContent))

	t.Run("news", func(t *testing.T) {
		mockContent.On("News", mock.Anything).Return([]model.NewsItem{{Title: "Welcome"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/news", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("news upstream failure", func(t *testing.T) {
		mockContent.On("News", mock.Anything).Return(nil, graph.ErrUpstreamUnavailable).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/news", nil))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("calendar events", func(t *testing.T) {
		mockContent.On("CalendarEvents", mock.Anything).Return([]model.CalendarEvent{{Title: "All hands"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/calendar-events", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("partners", func(t *testing.T) {
		mockContent.On("Partners", mock.Anything, "kunder").Return([]model.Partner{{Name: "Beta"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/partners/kunder", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Auth:      new(serviceMocks.MockAuthService),
		Documents: new(serviceMocks.MockDocumentService),
		Search:    new(serviceMocks.MockSearchService),
		Content:   new(serviceMocks.MockContentService),
	})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "resource not found", res.Message)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

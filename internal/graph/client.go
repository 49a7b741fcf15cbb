// Package graph wraps the remote document service (Microsoft Graph): drive
// folder enumeration, uploads, drive-side search, and list reads. The client
// performs no retries; callers decide retry policy.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"intranet/internal/config"
)

var (
	// ErrUpstreamUnavailable covers transport failures, auth failures, and
	// unexpected upstream status codes, including timeouts.
	ErrUpstreamUnavailable = errors.New("remote document service unavailable")
	// ErrNotFound means the addressed folder or resource no longer exists.
	ErrNotFound = errors.New("remote resource not found")
	// ErrConflict is the upstream's duplicate-name rejection, passed through.
	ErrConflict = errors.New("remote resource conflict")
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// DriveItem is one file or folder entry in a drive.
type DriveItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	WebURL      string `json:"webUrl"`
	DownloadURL string `json:"@microsoft.graph.downloadUrl"`
}

// Link returns the best available URL for the item: the short-lived download
// URL when present, the permanent web URL otherwise.
func (d DriveItem) Link() string {
	if d.DownloadURL != "" {
		return d.DownloadURL
	}
	return d.WebURL
}

// ListItem is one row of a SharePoint list with its expanded field values.
type ListItem struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Field returns a list field as a string, or "" if absent or not a string.
func (it ListItem) Field(name string) string {
	if s, ok := it.Fields[name].(string); ok {
		return s
	}
	return ""
}

// Client is the narrow contract the rest of the application depends on.
type Client interface {
	// ListChildren enumerates the direct children of a drive folder.
	ListChildren(ctx context.Context, folderID string) ([]DriveItem, error)
	// Upload stores content under the given folder and returns the created item.
	Upload(ctx context.Context, folderID, filename string, r io.Reader, size int64) (*DriveItem, error)
	// Search runs the service-side free-text search over the whole drive.
	Search(ctx context.Context, query string) ([]DriveItem, error)
	// ListItems reads all rows of a SharePoint list with fields expanded.
	ListItems(ctx context.Context, listID string) ([]ListItem, error)
}

// HTTPClient implements Client against the Graph REST API. The underlying
// oauth2 transport acquires a client-credentials token and checks its expiry
// before every request, so each call runs with a currently-valid credential.
type HTTPClient struct {
	http    *http.Client
	baseURL string
	siteID  string
	driveID string
	timeout time.Duration
}

var _ Client = (*HTTPClient)(nil)

// NewClient builds a Graph client from configuration.
func NewClient(cfg config.GraphConfig) *HTTPClient {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		http:    creds.Client(context.Background()),
		baseURL: defaultBaseURL,
		siteID:  cfg.SiteID,
		driveID: cfg.DriveID,
		timeout: timeout,
	}
}

func (c *HTTPClient) ListChildren(ctx context.Context, folderID string) ([]DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/items/%s/children", c.baseURL, c.driveID, url.PathEscape(folderID))

	var out struct {
		Value []DriveItem `json:"value"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

func (c *HTTPClient) Upload(ctx context.Context, folderID, filename string, r io.Reader, size int64) (*DriveItem, error) {
	u := fmt.Sprintf("%s/drives/%s/items/%s:/%s:/content",
		c.baseURL, c.driveID, url.PathEscape(folderID), url.PathEscape(filename))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, r)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var item DriveItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("%w: decode upload response: %v", ErrUpstreamUnavailable, err)
	}
	return &item, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string) ([]DriveItem, error) {
	// Single quotes delimit the Graph search term and must be doubled inside it.
	escaped := strings.ReplaceAll(query, "'", "''")
	u := fmt.Sprintf("%s/drives/%s/root/search(q='%s')", c.baseURL, c.driveID, url.PathEscape(escaped))

	var out struct {
		Value []DriveItem `json:"value"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, listID string) ([]ListItem, error) {
	u := fmt.Sprintf("%s/sites/%s/lists/%s/items?expand=fields",
		c.baseURL, c.siteID, url.PathEscape(listID))

	var out struct {
		Value []ListItem `json:"value"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// getJSON performs a GET with the client timeout and decodes the body into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// statusError maps upstream status codes onto the package sentinels.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Request.URL.Path)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, resp.Request.URL.Path)
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
}

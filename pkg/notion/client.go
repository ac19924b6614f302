package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/subtrackhq/subtrack-backend/pkg/config"
	pkgerrors "github.com/subtrackhq/subtrack-backend/pkg/errors"
	"github.com/subtrackhq/subtrack-backend/pkg/logger"
)

const versionHeader = "Notion-Version"

var (
	errTokenRequired    = pkgerrors.New(pkgerrors.CodeUnauthorized, "notion token is required")
	errDatabaseRequired = errors.New("notion database id is required")
	errLoggerRequired   = errors.New("notion logger is required")
)

// Client wraps the Notion REST API with centralized auth, logging, and
// error mapping. Each operation is a single request/response cycle: no
// retries, no caching, no cursor following.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	version    string
	databaseID string
	logger     *logger.Logger
}

// NewClient initializes the Notion wrapper and validates the credentials.
// A missing token fails here, before any network call is attempted.
func NewClient(ctx context.Context, cfg config.NotionConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errTokenRequired
	}

	databaseID := strings.TrimSpace(cfg.DatabaseID)
	if databaseID == "" {
		return nil, errDatabaseRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.notion.com"
	}

	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = "2022-06-28"
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		token:      token,
		version:    version,
		databaseID: databaseID,
		logger:     logg,
	}

	logg.Info(ctx, "notion client initialized")
	return c, nil
}

// DatabaseID returns the configured collection id.
func (c *Client) DatabaseID() string {
	if c == nil {
		return ""
	}
	return c.databaseID
}

// Ready reports whether the client holds a usable credential.
func (c *Client) Ready() bool {
	return c != nil && c.token != ""
}

type createPageRequest struct {
	Parent     pageParent `json:"parent"`
	Properties Properties `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties Properties `json:"properties"`
}

type archivePageRequest struct {
	Archived bool `json:"archived"`
}

// CreatePage inserts a new record into the subscription database and
// returns the stored page with its server-assigned id.
func (c *Client) CreatePage(ctx context.Context, properties Properties) (*Page, error) {
	c.log(ctx, "request", "create_page", map[string]any{"database_id": c.databaseID})

	var page Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", createPageRequest{
		Parent:     pageParent{DatabaseID: c.databaseID},
		Properties: properties,
	}, &page, "create page"); err != nil {
		c.log(ctx, "error", "create_page", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "create_page", map[string]any{"page_id": page.ID})
	return &page, nil
}

// UpdatePage patches an existing record. Only the keys present in the
// property bag are touched.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties Properties) (*Page, error) {
	if strings.TrimSpace(pageID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page id is required")
	}
	c.log(ctx, "request", "update_page", map[string]any{"page_id": pageID})

	var page Page
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, updatePageRequest{
		Properties: properties,
	}, &page, "update page"); err != nil {
		c.log(ctx, "error", "update_page", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "update_page", map[string]any{"page_id": page.ID})
	return &page, nil
}

// ArchivePage flags a record as archived, which hides it from every
// database view. The page is not physically removed.
func (c *Client) ArchivePage(ctx context.Context, pageID string) (*Page, error) {
	if strings.TrimSpace(pageID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page id is required")
	}
	c.log(ctx, "request", "archive_page", map[string]any{"page_id": pageID})

	var page Page
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, archivePageRequest{
		Archived: true,
	}, &page, "archive page"); err != nil {
		c.log(ctx, "error", "archive_page", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "archive_page", map[string]any{
		"page_id":  page.ID,
		"archived": page.Archived,
	})
	return &page, nil
}

// QueryDatabase fetches one page of records from the collection.
func (c *Client) QueryDatabase(ctx context.Context, query QueryRequest) (*QueryResponse, error) {
	c.log(ctx, "request", "query_database", map[string]any{
		"database_id": c.databaseID,
		"page_size":   query.PageSize,
	})

	var resp QueryResponse
	path := fmt.Sprintf("/v1/databases/%s/query", c.databaseID)
	if err := c.do(ctx, http.MethodPost, path, query, &resp, "query database"); err != nil {
		c.log(ctx, "error", "query_database", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "query_database", map[string]any{
		"results":  len(resp.Results),
		"has_more": resp.HasMore,
	})
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any, op string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s request", op))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", op))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set(versionHeader, c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("notion %s failed", op))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read %s response", op))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(op, resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", op))
		}
	}
	return nil
}

// remoteError surfaces a non-2xx response with the body text verbatim.
func remoteError(op string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("notion %s failed with status %d", op, status)
	}
	return pkgerrors.New(codeForStatus(status), msg).WithDetails(map[string]any{
		"status": status,
		"body":   string(body),
	})
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.CodeUnauthorized
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		return pkgerrors.CodeDependency
	}
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = c.redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("notion %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("notion %s", phase))
	}
}

func (c *Client) redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "secret", "authorization"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

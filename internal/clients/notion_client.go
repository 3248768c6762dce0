package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spacesedan/redditqa/config"
	"github.com/spacesedan/redditqa/internal/json"
	"github.com/spacesedan/redditqa/internal/models"
)

type NotionClient struct {
	Client     *http.Client
	apiURL     string
	apiToken   string
	databaseID string
}

// NotionResponse is the raw answer of the pages endpoint. Callers decide what
// counts as success.
type NotionResponse struct {
	StatusCode int
	Body       string
}

// NewNotionClient falls back to http.DefaultClient when httpClient is nil.
func NewNotionClient(cfg config.NotionConfig, httpClient *http.Client) *NotionClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = NOTION_API_URL
	}

	return &NotionClient{
		Client:     httpClient,
		apiURL:     apiURL,
		apiToken:   cfg.APIToken,
		databaseID: cfg.DatabaseID,
	}
}

func (nc *NotionClient) DatabaseID() string {
	return nc.databaseID
}

func (nc *NotionClient) HasToken() bool {
	return nc.apiToken != ""
}

// CreatePage posts page to the pages endpoint. Only transport failures are
// returned as errors.
func (nc *NotionClient) CreatePage(ctx context.Context, page models.NotionPageRequest) (*NotionResponse, error) {
	payload, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("[NotionClient] Failed to encode page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, nc.apiURL+"/pages", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+nc.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", NOTION_VERSION)

	resp, err := nc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MAX_ERROR_BODY))
	if err != nil {
		return nil, err
	}

	slog.Debug("[NotionClient] Create page response", slog.Int("status", resp.StatusCode))

	return &NotionResponse{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/redditqa/config"
	"github.com/spacesedan/redditqa/internal/json"
)

func TestHealthHandler(t *testing.T) {
	cfg := config.Config{}
	cfg.Reddit.ClientID = "id"
	cfg.Notion.APIToken = "token"
	cfg.Server.APIKey = "super-secret"

	rec := httptest.NewRecorder()
	HealthHandler(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "super-secret")

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, HealthStatus{
		Status:           "ok",
		RedditClientID:   true,
		NotionConfigured: false,
		AuthConfigured:   true,
	}, status)
}

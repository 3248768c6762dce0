package monitoring

import (
	"net/http"

	"github.com/spacesedan/redditqa/config"
	"github.com/spacesedan/redditqa/internal/json"
)

type HealthStatus struct {
	Status           string `json:"status"`
	RedditClientID   bool   `json:"reddit_client_id"`
	NotionConfigured bool   `json:"notion_configured"`
	AuthConfigured   bool   `json:"auth_configured"`
}

// HealthHandler reports which credentials are present, never their values.
func HealthHandler(cfg config.Config) http.Handler {
	status := HealthStatus{
		Status:           "ok",
		RedditClientID:   cfg.Reddit.ClientID != "",
		NotionConfigured: cfg.Notion.APIToken != "" && cfg.Notion.DatabaseID != "",
		AuthConfigured:   cfg.Server.APIKey != "",
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status)
	})
}

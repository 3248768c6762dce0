package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spacesedan/redditqa/internal/json"
)

const PROTECTED_RESOURCE_PATH = "/.well-known/oauth-protected-resource"

var REQUIRED_SCOPES = []string{"reddit:read", "notion:write"}

// BearerAuth checks every request against one static secret. An empty secret
// rejects everything.
type BearerAuth struct {
	secret      []byte
	metadataURL string
}

func NewBearerAuth(secret, resourceURL string) *BearerAuth {
	if secret == "" {
		slog.Warn("[Auth] MCP_API_KEY not set - authentication will fail")
	}
	return &BearerAuth{
		secret:      []byte(secret),
		metadataURL: strings.TrimRight(resourceURL, "/") + PROTECTED_RESOURCE_PATH,
	}
}

func (a *BearerAuth) Verify(token string) bool {
	if len(a.secret) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), a.secret) == 1
}

func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok || !a.Verify(token) {
			slog.Warn("[Auth] Rejected request",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Bool("token_present", ok))
			a.reject(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *BearerAuth) reject(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(
		`Bearer error="invalid_token", error_description="Authentication required", scope=%q, resource_metadata=%q`,
		strings.Join(REQUIRED_SCOPES, " "), a.metadataURL))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             "invalid_token",
		"error_description": "Authentication required",
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type protectedResource struct {
	Resource             string   `json:"resource"`
	AuthorizationServers []string `json:"authorization_servers"`
	ScopesSupported      []string `json:"scopes_supported"`
	BearerMethods        []string `json:"bearer_methods_supported"`
}

// ProtectedResourceHandler serves the OAuth protected resource metadata
// document clients fetch after a 401.
func ProtectedResourceHandler(resourceURL, issuerURL string) http.Handler {
	doc := protectedResource{
		Resource:             resourceURL,
		AuthorizationServers: []string{issuerURL},
		ScopesSupported:      REQUIRED_SCOPES,
		BearerMethods:        []string{"header"},
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})
}

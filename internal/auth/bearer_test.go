package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/redditqa/internal/json"
)

func TestVerify(t *testing.T) {
	a := NewBearerAuth("s3cret", "http://localhost:8000")

	assert.True(t, a.Verify("s3cret"))
	assert.False(t, a.Verify("s3cret "))
	assert.False(t, a.Verify("S3CRET"))
	assert.False(t, a.Verify(""))

	unset := NewBearerAuth("", "http://localhost:8000")
	assert.False(t, unset.Verify(""))
	assert.False(t, unset.Verify("anything"))
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = bearerToken("bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = bearerToken("Bearer")
	assert.False(t, ok)
	_, ok = bearerToken("")
	assert.False(t, ok)
}

func TestMiddleware(t *testing.T) {
	var reached int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached++
		w.WriteHeader(http.StatusNoContent)
	})
	h := NewBearerAuth("s3cret", "http://localhost:8000/").Middleware(next)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"valid", "Bearer s3cret", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				challenge := rec.Header().Get("WWW-Authenticate")
				assert.Contains(t, challenge, `error="invalid_token"`)
				assert.Contains(t, challenge, `scope="reddit:read notion:write"`)
				assert.Contains(t, challenge, `resource_metadata="http://localhost:8000/.well-known/oauth-protected-resource"`)
			}
		})
	}
	assert.Equal(t, 1, reached)
}

func TestMiddlewareRejectsAllWithoutSecret(t *testing.T) {
	h := NewBearerAuth("", "http://localhost:8000").Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedResourceHandler(t *testing.T) {
	h := ProtectedResourceHandler("http://localhost:8000", "http://issuer.local")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PROTECTED_RESOURCE_PATH, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "http://localhost:8000", doc["resource"])
	assert.Equal(t, []any{"http://issuer.local"}, doc["authorization_servers"])
	assert.Equal(t, []any{"reddit:read", "notion:write"}, doc["scopes_supported"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, PROTECTED_RESOURCE_PATH, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spacesedan/redditqa/config"
	"github.com/spacesedan/redditqa/internal/json"
	"github.com/spacesedan/redditqa/internal/models"
)

// RedditClient talks to the Reddit JSON API. It is built once at startup and
// only read afterwards, so it can be shared between tool invocations.
type RedditClient struct {
	Client   *http.Client
	apiURL   string
	clientID string
	readOnly bool
}

// NewRedditClient uses the application-only grant unless a username and
// password are configured, in which case it acts as that user.
func NewRedditClient(cfg config.RedditConfig) *RedditClient {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = USER_AGENT
	}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = REDDIT_AUTH_URL
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = REDDIT_API_URL
	}

	// Token requests must carry the user agent too.
	base := &http.Client{Transport: &userAgentTransport{userAgent: userAgent, base: http.DefaultTransport}}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	rc := &RedditClient{apiURL: apiURL, clientID: cfg.ClientID}
	if cfg.Username != "" && cfg.Password != "" {
		conf := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  authURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		}
		src := &passwordTokenSource{ctx: ctx, conf: conf, username: cfg.Username, password: cfg.Password}
		rc.Client = oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, src))
		rc.readOnly = false
	} else {
		conf := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     authURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		rc.Client = conf.Client(ctx)
		rc.readOnly = true
	}

	slog.Info("[RedditClient] Reddit client initialized",
		slog.Bool("read_only", rc.readOnly),
		slog.Bool("client_id_exists", rc.ClientIDConfigured()))

	return rc
}

func (rc *RedditClient) ReadOnly() bool {
	return rc.readOnly
}

func (rc *RedditClient) ClientIDConfigured() bool {
	return rc.clientID != ""
}

// TopPosts lists the top posts of one or more '+' joined subreddits.
func (rc *RedditClient) TopPosts(ctx context.Context, subreddits, timeFilter string, limit int) ([]models.RedditAPILink, error) {
	params := url.Values{}
	params.Set("t", timeFilter)
	params.Set("limit", strconv.Itoa(limit))

	return rc.listing(ctx, "/r/"+url.PathEscape(subreddits)+"/top", params)
}

// Search runs a full-text search restricted to the given subreddits. Passing
// "all" searches site-wide, so restrict_sr is left off.
func (rc *RedditClient) Search(ctx context.Context, subreddits, query, sort string, limit int) ([]models.RedditAPILink, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("t", "all")
	if !strings.EqualFold(subreddits, SITE_WIDE_SUBREDDIT) {
		params.Set("restrict_sr", "on")
	}
	params.Set("limit", strconv.Itoa(limit))

	return rc.listing(ctx, "/r/"+url.PathEscape(subreddits)+"/search", params)
}

// Comments returns the top-level comments already present in the post's
// comment tree, in the order Reddit returned them. "more" placeholders are
// dropped and never expanded.
func (rc *RedditClient) Comments(ctx context.Context, postID string) ([]models.RedditAPIComment, error) {
	var listings []models.RedditAPIResponse
	if err := rc.get(ctx, "/comments/"+url.PathEscape(postID), url.Values{}, &listings); err != nil {
		return nil, err
	}
	if len(listings) < 2 {
		return []models.RedditAPIComment{}, nil
	}

	comments := make([]models.RedditAPIComment, 0, len(listings[1].Data.Children))
	for _, child := range listings[1].Data.Children {
		if child.Kind != models.KIND_COMMENT {
			continue
		}
		var comment models.RedditAPIComment
		if err := json.Unmarshal(child.Data, &comment); err != nil {
			return nil, fmt.Errorf("[RedditClient] Failed to decode comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (rc *RedditClient) listing(ctx context.Context, path string, params url.Values) ([]models.RedditAPILink, error) {
	var resp models.RedditAPIResponse
	if err := rc.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	links := make([]models.RedditAPILink, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		if child.Kind != models.KIND_LINK {
			continue
		}
		var link models.RedditAPILink
		if err := json.Unmarshal(child.Data, &link); err != nil {
			return nil, fmt.Errorf("[RedditClient] Failed to decode post: %w", err)
		}
		links = append(links, link)
	}
	return links, nil
}

func (rc *RedditClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("raw_json", "1")
	endpoint := rc.apiURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := rc.Client.Do(req)
	if err != nil {
		return tokenError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("[RedditClient] Unexpected status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return &ResponseError{
			Method:     req.Method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       truncateBody(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("[RedditClient] Failed to decode %s: %w", path, err)
	}
	return nil
}

// tokenError surfaces a rejected token request as a ResponseError so callers
// see the status Reddit's auth endpoint returned.
func tokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		tokenURL := ""
		if retrieveErr.Response.Request != nil {
			tokenURL = retrieveErr.Response.Request.URL.String()
		}
		return &ResponseError{
			Method:     http.MethodPost,
			URL:        tokenURL,
			StatusCode: retrieveErr.Response.StatusCode,
			Header:     retrieveErr.Response.Header,
			Body:       truncateBody(retrieveErr.Body),
		}
	}
	return err
}

func truncateBody(body []byte) string {
	if len(body) > MAX_ERROR_BODY {
		body = body[:MAX_ERROR_BODY]
	}
	return string(body)
}

type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// passwordTokenSource fetches a fresh password-grant token each time the
// cached one expires. Reddit does not issue refresh tokens for this grant.
type passwordTokenSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	return s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

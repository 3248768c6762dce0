package models

import "github.com/spacesedan/redditqa/internal/json"

// Post is the record returned by every Reddit fetching tool.
type Post struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	URL         string     `json:"url"`
	CreatedUTC  int64      `json:"created_utc"`
	NumComments int        `json:"num_comments"`
	Permalink   string     `json:"permalink"`
	Comments    []string   `json:"comments"`
	Sentiment   *Sentiment `json:"sentiment,omitempty"`
}

type Sentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// ErrorRecord stands in for a post list when a fetch fails.
type ErrorRecord struct {
	ErrorDetails ErrorDetails `json:"error_details"`
	Message      string       `json:"message"`
	DebugInfo    string       `json:"debug_info"`
}

type ErrorDetails struct {
	Error           string            `json:"error"`
	ErrorType       string            `json:"error_type"`
	Subreddits      string            `json:"subreddits,omitempty"`
	TimeFilter      string            `json:"time_filter,omitempty"`
	Query           string            `json:"query,omitempty"`
	RedditReadOnly  bool              `json:"reddit_read_only"`
	ClientIDExists  bool              `json:"client_id_exists"`
	HTTPStatus      int               `json:"http_status,omitempty"`
	ResponseHeaders map[string]string `json:"response_headers,omitempty"`
	ResponseBody    string            `json:"response_body,omitempty"`
}

// Reddit API wire types.

type RedditAPIResponse struct {
	Kind string        `json:"kind"`
	Data RedditAPIData `json:"data"`
}

type RedditAPIData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

type RedditAPIChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

const (
	KIND_COMMENT = "t1"
	KIND_LINK    = "t3"
	KIND_MORE    = "more"
)

type RedditAPILink struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
}

// RedditAPIComment omits replies; only already materialized top-level comments are used.
type RedditAPIComment struct {
	ID       string `json:"id"`
	Body     string `json:"body"`
	ParentID string `json:"parent_id"`
}

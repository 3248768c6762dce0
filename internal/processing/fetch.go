package processing

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/redditqa/internal/clients"
	"github.com/spacesedan/redditqa/internal/json"
	"github.com/spacesedan/redditqa/internal/models"
	"github.com/spacesedan/redditqa/internal/sentiment"
)

const (
	DEFAULT_LIMIT         = 5
	DEFAULT_COMMENT_LIMIT = 5
	DEFAULT_TIME_FILTER   = "week"
	DEFAULT_SORT          = "relevance"

	SITE_WIDE_SUBREDDIT = clients.SITE_WIDE_SUBREDDIT
)

// RedditAPI is the part of clients.RedditClient the fetch operations use.
type RedditAPI interface {
	TopPosts(ctx context.Context, subreddits, timeFilter string, limit int) ([]models.RedditAPILink, error)
	Search(ctx context.Context, subreddits, query, sort string, limit int) ([]models.RedditAPILink, error)
	Comments(ctx context.Context, postID string) ([]models.RedditAPIComment, error)
	ReadOnly() bool
	ClientIDConfigured() bool
}

type FetchOptions struct {
	Limit            int
	CommentLimit     int
	IncludeSentiment bool
}

func DefaultFetchOptions() FetchOptions {
	return FetchOptions{Limit: DEFAULT_LIMIT, CommentLimit: DEFAULT_COMMENT_LIMIT}
}

// FetchResult holds either the collected posts or the ErrorRecord that
// replaced them. Both encode as a JSON list.
type FetchResult struct {
	Posts []models.Post
	Err   *models.ErrorRecord
}

func (r FetchResult) OK() bool {
	return r.Err == nil
}

func (r FetchResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal([]models.ErrorRecord{*r.Err})
	}
	if r.Posts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Posts)
}

type Fetcher struct {
	reddit RedditAPI
}

func NewFetcher(reddit RedditAPI) *Fetcher {
	return &Fetcher{reddit: reddit}
}

// FetchTop lists the top posts of '+' joined subreddits over timeFilter.
func (f *Fetcher) FetchTop(ctx context.Context, subreddits, timeFilter string, opts FetchOptions) FetchResult {
	slog.Info("[Fetch] Getting top posts",
		slog.String("subreddits", subreddits),
		slog.Int("limit", opts.Limit),
		slog.String("time_filter", timeFilter))

	start := time.Now()
	posts, err := f.collect(ctx, opts, func() ([]models.RedditAPILink, error) {
		return f.reddit.TopPosts(ctx, subreddits, timeFilter, opts.Limit)
	})
	if err != nil {
		slog.Error("[Fetch] Reddit top posts error", slog.String("error", err.Error()))
		return FetchResult{Err: f.errorRecord(err,
			"Top posts retrieval failed for r/"+subreddits+": "+err.Error(),
			models.ErrorDetails{Subreddits: subreddits, TimeFilter: timeFilter})}
	}

	slog.Info("[Fetch] Retrieved top posts",
		slog.String("subreddits", subreddits),
		slog.Int("count", len(posts)),
		slog.Duration("duration", time.Since(start)))
	return FetchResult{Posts: posts}
}

// SearchInSubreddits runs a full-text search inside the given subreddits.
func (f *Fetcher) SearchInSubreddits(ctx context.Context, subreddits, query, sort string, opts FetchOptions) FetchResult {
	slog.Info("[Fetch] Searching subreddits",
		slog.String("subreddits", subreddits),
		slog.String("query", query),
		slog.Int("limit", opts.Limit),
		slog.String("sort", sort))

	posts, err := f.collect(ctx, opts, func() ([]models.RedditAPILink, error) {
		return f.reddit.Search(ctx, subreddits, query, sort, opts.Limit)
	})
	if err != nil {
		slog.Error("[Fetch] Reddit subreddit search error", slog.String("error", err.Error()))
		return FetchResult{Err: f.errorRecord(err,
			"Subreddit search failed for r/"+subreddits+": "+err.Error(),
			models.ErrorDetails{Subreddits: subreddits, Query: query})}
	}

	slog.Info("[Fetch] Found posts", slog.String("subreddits", subreddits), slog.Int("count", len(posts)))
	return FetchResult{Posts: posts}
}

// SearchAll runs a full-text search over the site-wide listing.
func (f *Fetcher) SearchAll(ctx context.Context, query, sort string, opts FetchOptions) FetchResult {
	slog.Info("[Fetch] Searching Reddit",
		slog.String("query", query),
		slog.Int("limit", opts.Limit),
		slog.String("sort", sort))

	posts, err := f.collect(ctx, opts, func() ([]models.RedditAPILink, error) {
		return f.reddit.Search(ctx, SITE_WIDE_SUBREDDIT, query, sort, opts.Limit)
	})
	if err != nil {
		slog.Error("[Fetch] Reddit search error", slog.String("error", err.Error()))
		return FetchResult{Err: f.errorRecord(err,
			"Reddit search failed: "+err.Error(),
			models.ErrorDetails{Query: query})}
	}

	slog.Info("[Fetch] Found Reddit posts", slog.Int("count", len(posts)))
	return FetchResult{Posts: posts}
}

// collect builds a Post for each listed link, in listing order. Any error
// discards everything gathered so far.
func (f *Fetcher) collect(ctx context.Context, opts FetchOptions, list func() ([]models.RedditAPILink, error)) ([]models.Post, error) {
	limit := max(opts.Limit, 0)
	commentLimit := max(opts.CommentLimit, 0)

	links, err := list()
	if err != nil {
		return nil, err
	}
	if len(links) > limit {
		links = links[:limit]
	}

	posts := make([]models.Post, 0, len(links))
	for _, link := range links {
		comments, err := f.reddit.Comments(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		if len(comments) > commentLimit {
			comments = comments[:commentLimit]
		}

		post := models.Post{
			Title:       link.Title,
			Body:        link.Selftext,
			URL:         link.URL,
			CreatedUTC:  int64(link.CreatedUTC),
			NumComments: link.NumComments,
			Permalink:   clients.REDDIT_SITE_URL + link.Permalink,
			Comments:    make([]string, 0, len(comments)),
		}
		for _, comment := range comments {
			post.Comments = append(post.Comments, comment.Body)
		}
		if opts.IncludeSentiment {
			score := sentiment.Analyze(link.Title + "\n\n" + link.Selftext)
			post.Sentiment = &score
		}

		posts = append(posts, post)
	}
	return posts, nil
}

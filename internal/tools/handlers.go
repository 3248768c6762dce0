package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/spacesedan/redditqa/internal/json"
	"github.com/spacesedan/redditqa/internal/models"
	"github.com/spacesedan/redditqa/internal/processing"
)

type handlers struct {
	fetcher *processing.Fetcher
	writer  *processing.QAWriter
}

func (h *handlers) getTopSubredditPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	subreddits, err := requiredString(args, "subreddits")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := parseFetchOptions(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeFilter := optionalString(args, "time_filter", processing.DEFAULT_TIME_FILTER)

	return jsonResult(h.fetcher.FetchTop(ctx, subreddits, timeFilter, opts))
}

func (h *handlers) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	subreddits, err := requiredString(args, "subreddits")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := requiredString(args, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := parseFetchOptions(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sort := optionalString(args, "sort", processing.DEFAULT_SORT)

	return jsonResult(h.fetcher.SearchInSubreddits(ctx, subreddits, query, sort, opts))
}

func (h *handlers) searchReddit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, err := requiredString(args, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := parseFetchOptions(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sort := optionalString(args, "sort", processing.DEFAULT_SORT)

	return jsonResult(h.fetcher.SearchAll(ctx, query, sort, opts))
}

func (h *handlers) saveQAToNotion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	var qa models.QARequest
	var err error
	if qa.Question, err = requiredString(args, "question"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if qa.Answer, err = requiredString(args, "answer"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if qa.SearchQuery, err = requiredString(args, "search_query"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if qa.RedditSources, err = parseSources(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(h.writer.SaveQA(ctx, qa))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("[Tools] Failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

func requiredString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("argument %q must be a string: %w", key, err)
	}
	return s, nil
}

func optionalString(args map[string]any, key, fallback string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback
	}
	return cast.ToString(v)
}

func optionalInt(args map[string]any, key string, fallback int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be an integer: %w", key, err)
	}
	return n, nil
}

func parseFetchOptions(args map[string]any) (processing.FetchOptions, error) {
	opts := processing.DefaultFetchOptions()
	var err error
	if opts.Limit, err = optionalInt(args, "limit", processing.DEFAULT_LIMIT); err != nil {
		return opts, err
	}
	if opts.CommentLimit, err = optionalInt(args, "comment_limit", processing.DEFAULT_COMMENT_LIMIT); err != nil {
		return opts, err
	}
	if v, ok := args["include_sentiment"]; ok && v != nil {
		if opts.IncludeSentiment, err = cast.ToBoolE(v); err != nil {
			return opts, fmt.Errorf("argument %q must be a boolean: %w", "include_sentiment", err)
		}
	}
	return opts, nil
}

// parseSources accepts a list of objects. Missing or non-string title and url
// values are left empty and rendered with their placeholders.
func parseSources(args map[string]any) ([]models.QASource, error) {
	v, ok := args["reddit_sources"]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing required argument %q", "reddit_sources")
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("argument %q must be a list: %w", "reddit_sources", err)
	}

	sources := make([]models.QASource, 0, len(items))
	for i, item := range items {
		fields, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("reddit_sources[%d] must be an object: %w", i, err)
		}
		sources = append(sources, models.QASource{
			Title: cast.ToString(fields["title"]),
			URL:   cast.ToString(fields["url"]),
		})
	}
	return sources, nil
}

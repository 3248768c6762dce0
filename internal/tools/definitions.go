package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spacesedan/redditqa/internal/processing"
)

const (
	TOOL_TOP_POSTS     = "get_top_subreddit_posts"
	TOOL_SEARCH_POSTS  = "search_posts"
	TOOL_SEARCH_REDDIT = "search_reddit"
	TOOL_SAVE_QA       = "save_reddit_qa_to_notion"
)

func fetchOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("limit",
			mcp.Description("Number of posts to retrieve"),
			mcp.DefaultNumber(processing.DEFAULT_LIMIT)),
		mcp.WithNumber("comment_limit",
			mcp.Description("Number of comments to retrieve for each post"),
			mcp.DefaultNumber(processing.DEFAULT_COMMENT_LIMIT)),
		mcp.WithBoolean("include_sentiment",
			mcp.Description("Add a VADER sentiment score for each post's title and body"),
			mcp.DefaultBool(false)),
	}
}

// time_filter and sort list their allowed values but Reddit is left to reject
// anything else.
func topPostsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Get top posts from specified subreddits."),
		mcp.WithString("subreddits",
			mcp.Required(),
			mcp.Description(`Subreddit name(s) separated by '+' (e.g., "redditdev+learnpython")`)),
		mcp.WithString("time_filter",
			mcp.Description(`One of: "all", "day", "hour", "month", "week", "year"`),
			mcp.DefaultString(processing.DEFAULT_TIME_FILTER)),
	}
	return mcp.NewTool(TOOL_TOP_POSTS, append(opts, fetchOptions()...)...)
}

func searchPostsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search for posts in specified subreddits."),
		mcp.WithString("subreddits",
			mcp.Required(),
			mcp.Description(`Subreddit name(s) separated by '+' (e.g., "redditdev+learnpython")`)),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithString("sort",
			mcp.Description(`One of: "relevance", "hot", "top", "new", "comments"`),
			mcp.DefaultString(processing.DEFAULT_SORT)),
	}
	return mcp.NewTool(TOOL_SEARCH_POSTS, append(opts, fetchOptions()...)...)
}

func searchRedditTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search for posts across all subreddits (site-wide search)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithString("sort",
			mcp.Description(`One of: "relevance", "hot", "top", "new", "comments"`),
			mcp.DefaultString(processing.DEFAULT_SORT)),
	}
	return mcp.NewTool(TOOL_SEARCH_REDDIT, append(opts, fetchOptions()...)...)
}

func saveQATool() mcp.Tool {
	return mcp.NewTool(TOOL_SAVE_QA,
		mcp.WithDescription("Save a Q&A session with Reddit context to Notion database."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The original question asked")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The LLM-generated answer")),
		mcp.WithString("search_query", mcp.Required(), mcp.Description("The Reddit search query used")),
		mcp.WithArray("reddit_sources",
			mcp.Required(),
			mcp.Description("List of Reddit posts with 'title' and 'url' keys"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"url":   map[string]any{"type": "string"},
				},
			})),
	)
}

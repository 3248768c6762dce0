package clients

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
	REDDIT_SITE_URL = "https://reddit.com"
	USER_AGENT      = "redditqa-mcp/1.0 (+https://github.com/spacesedan/redditqa)"

	// Pseudo-subreddit covering the whole site.
	SITE_WIDE_SUBREDDIT = "all"

	NOTION_API_URL = "https://api.notion.com/v1"
	NOTION_VERSION = "2022-06-28"

	// Longest response body kept on a ResponseError.
	MAX_ERROR_BODY = 64 * 1024
)

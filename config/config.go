package config

import (
	"os"
	"strconv"
)

const (
	DEFAULT_HOST       = "0.0.0.0"
	DEFAULT_PORT       = 8000
	DEFAULT_ISSUER_URL = "http://localhost:8000"
)

type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
	APIURL       string
	AuthURL      string
}

type NotionConfig struct {
	APIToken   string
	DatabaseID string
	APIURL     string
}

type ServerConfig struct {
	Host        string
	Port        int
	APIKey      string
	IssuerURL   string
	ResourceURL string
}

// Config is resolved once at startup and passed by value to the components that need it.
type Config struct {
	Reddit   RedditConfig
	Notion   NotionConfig
	Server   ServerConfig
	LogLevel string
}

func FromEnv() Config {
	port, err := strconv.Atoi(os.Getenv("MCP_PORT"))
	if err != nil || port <= 0 {
		port = DEFAULT_PORT
	}

	databaseID := os.Getenv("NOTION_QA_DATABASE_ID")
	if databaseID == "" {
		databaseID = os.Getenv("NOTION_DATABASE_ID")
	}

	return Config{
		Reddit: RedditConfig{
			ClientID:     os.Getenv("CLIENT_ID"),
			ClientSecret: os.Getenv("CLIENT_SECRET"),
			UserAgent:    os.Getenv("USER_AGENT"),
			Username:     os.Getenv("REDDIT_USERNAME"),
			Password:     os.Getenv("REDDIT_PASSWORD"),
			APIURL:       os.Getenv("REDDIT_API_URL"),
			AuthURL:      os.Getenv("REDDIT_AUTH_URL"),
		},
		Notion: NotionConfig{
			APIToken:   os.Getenv("NOTION_API_TOKEN"),
			DatabaseID: databaseID,
			APIURL:     os.Getenv("NOTION_API_URL"),
		},
		Server: ServerConfig{
			Host:        getEnv("MCP_HOST", DEFAULT_HOST),
			Port:        port,
			APIKey:      os.Getenv("MCP_API_KEY"),
			IssuerURL:   getEnv("MCP_ISSUER_URL", DEFAULT_ISSUER_URL),
			ResourceURL: getEnv("MCP_RESOURCE_URL", DEFAULT_ISSUER_URL),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

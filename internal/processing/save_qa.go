package processing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/redditqa/internal/clients"
	"github.com/spacesedan/redditqa/internal/json"
	"github.com/spacesedan/redditqa/internal/models"
)

const (
	MISSING_DATABASE_ID = "NOTION_QA_DATABASE_ID or NOTION_DATABASE_ID environment variable not set"
	MISSING_API_TOKEN   = "NOTION_API_TOKEN environment variable not set"
	SAVE_SUCCESS        = "Successfully saved Q&A session to Notion"

	UNTITLED_SOURCE   = "Untitled"
	MISSING_URL       = "#"
	QUESTION_ECHO_LEN = 50

	// Notion rejects rich text objects longer than this.
	MAX_RICH_TEXT_CHARS = 2000
	// Notion rejects rich_text arrays with more items than this.
	MAX_RICH_TEXT_ITEMS = 100
	// Notion accepts at most this many children per create request.
	MAX_PAGE_CHILDREN = 100

	CREATED_LAYOUT = "2006-01-02T15:04:05.000-07:00"
)

// PageCreator is the part of clients.NotionClient the writer uses.
type PageCreator interface {
	DatabaseID() string
	HasToken() bool
	CreatePage(ctx context.Context, page models.NotionPageRequest) (*clients.NotionResponse, error)
}

// SaveResult encodes as {success, message, question} or {error}.
type SaveResult struct {
	Success  bool
	Message  string
	Question string
	Error    string
}

func (r SaveResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	return json.Marshal(map[string]any{
		"success":  true,
		"message":  r.Message,
		"question": r.Question,
	})
}

func saveError(msg string) SaveResult {
	return SaveResult{Error: msg}
}

type QAWriter struct {
	notion PageCreator
	now    func() time.Time
}

func NewQAWriter(notion PageCreator) *QAWriter {
	return &QAWriter{notion: notion, now: time.Now}
}

// SaveQA creates one page in the configured database per call. Every failure
// is reported in the returned SaveResult.
func (w *QAWriter) SaveQA(ctx context.Context, req models.QARequest) SaveResult {
	if w.notion.DatabaseID() == "" {
		return saveError(MISSING_DATABASE_ID)
	}
	if !w.notion.HasToken() {
		return saveError(MISSING_API_TOKEN)
	}

	page := w.buildPage(req)

	resp, err := w.notion.CreatePage(ctx, page)
	if err != nil {
		slog.Error("[SaveQA] Error saving Q&A to Notion", slog.String("error", err.Error()))
		return saveError("Error saving Q&A to Notion: " + err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("[SaveQA] Notion API error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", resp.Body))
		return saveError(fmt.Sprintf("Failed to save to Notion: %d - %s", resp.StatusCode, resp.Body))
	}

	slog.Info("[SaveQA] Saved Q&A session", slog.Int("sources", len(req.RedditSources)))
	return SaveResult{
		Success:  true,
		Message:  SAVE_SUCCESS,
		Question: echoQuestion(req.Question),
	}
}

func (w *QAWriter) buildPage(req models.QARequest) models.NotionPageRequest {
	return models.NotionPageRequest{
		Parent: models.NotionParent{DatabaseID: w.notion.DatabaseID()},
		Properties: map[string]models.NotionProperty{
			"Question":       {Title: propertyText(req.Question)},
			"Answer":         {RichText: propertyText(req.Answer)},
			"Search Query":   {RichText: propertyText(req.SearchQuery)},
			"Reddit Sources": {RichText: propertyText(RenderSources(req.RedditSources))},
			"Created":        {Date: &models.NotionDate{Start: w.now().Format(CREATED_LAYOUT)}},
		},
		Children: pageBody(req),
	}
}

// RenderSources writes one "N. [title](url)" line per source, in order.
func RenderSources(sources []models.QASource) string {
	var sb strings.Builder
	for i, source := range sources {
		title, url := sourceFields(source)
		fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, title, url)
	}
	return sb.String()
}

func sourceFields(source models.QASource) (string, string) {
	title, url := source.Title, source.URL
	if title == "" {
		title = UNTITLED_SOURCE
	}
	if url == "" {
		url = MISSING_URL
	}
	return title, url
}

func echoQuestion(question string) string {
	runes := []rune(question)
	if len(runes) > QUESTION_ECHO_LEN {
		return string(runes[:QUESTION_ECHO_LEN]) + "..."
	}
	return question
}

// richText splits content into as many text objects as Notion needs. Empty
// content still yields a single empty object.
func richText(content string) []models.NotionRichText {
	chunks := chunkChars(content, MAX_RICH_TEXT_CHARS)
	out := make([]models.NotionRichText, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, models.NotionRichText{Type: "text", Text: models.NotionText{Content: chunk}})
	}
	return out
}

// propertyText is richText truncated to what a single property accepts.
func propertyText(content string) []models.NotionRichText {
	rt := richText(content)
	if len(rt) > MAX_RICH_TEXT_ITEMS {
		rt = rt[:MAX_RICH_TEXT_ITEMS]
	}
	return rt
}

func chunkChars(s string, n int) []string {
	runes := []rune(s)
	if len(runes) <= n {
		return []string{s}
	}
	var chunks []string
	for len(runes) > n {
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

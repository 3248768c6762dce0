package processing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/redditqa/internal/models"
)

func blockText(b models.NotionBlock) string {
	var body *models.NotionTextBlock
	switch b.Type {
	case "paragraph":
		body = b.Paragraph
	case "heading_1":
		body = b.Heading1
	case "heading_2":
		body = b.Heading2
	case "heading_3":
		body = b.Heading3
	case "bulleted_list_item":
		body = b.BulletedListItem
	case "numbered_list_item":
		body = b.NumberedListItem
	case "quote":
		body = b.Quote
	case "code":
		body = &models.NotionTextBlock{RichText: b.Code.RichText}
	default:
		return ""
	}
	var sb strings.Builder
	for _, rt := range body.RichText {
		sb.WriteString(rt.Text.Content)
	}
	return sb.String()
}

func TestMarkdownToBlocks(t *testing.T) {
	md := "# Summary\n\nUse **errgroup** with `context`.\n\n" +
		"- first\n- second\n\n" +
		"> quoted\n\n" +
		"1. one\n2. two\n\n" +
		"```go\nfmt.Println(1)\n```\n\n---\n\n#### deep\n"

	blocks := MarkdownToBlocks(md)

	types := make([]string, 0, len(blocks))
	for _, b := range blocks {
		types = append(types, b.Type)
	}
	assert.Equal(t, []string{
		"heading_1", "paragraph",
		"bulleted_list_item", "bulleted_list_item",
		"quote",
		"numbered_list_item", "numbered_list_item",
		"code", "divider", "heading_3",
	}, types)

	assert.Equal(t, "Summary", blockText(blocks[0]))
	assert.Equal(t, "Use errgroup with context.", blockText(blocks[1]))
	assert.Equal(t, "first", blockText(blocks[2]))
	assert.Equal(t, "quoted", blockText(blocks[4]))
	assert.Equal(t, "two", blockText(blocks[6]))
	assert.Equal(t, "fmt.Println(1)", blockText(blocks[7]))
	assert.Equal(t, "go", blocks[7].Code.Language)
	assert.NotNil(t, blocks[8].Divider)

	para := blocks[1].Paragraph.RichText
	require.Len(t, para, 5)
	require.NotNil(t, para[1].Annotations)
	assert.True(t, para[1].Annotations.Bold)
	require.NotNil(t, para[3].Annotations)
	assert.True(t, para[3].Annotations.Code)
	assert.Nil(t, para[0].Annotations)
}

func TestMarkdownLinks(t *testing.T) {
	blocks := MarkdownToBlocks("See [the docs](https://go.dev/doc) or [here](#anchor).")
	require.Len(t, blocks, 1)

	rt := blocks[0].Paragraph.RichText
	require.Len(t, rt, 5)
	require.NotNil(t, rt[1].Text.Link)
	assert.Equal(t, "https://go.dev/doc", rt[1].Text.Link.URL)
	assert.Equal(t, "here", rt[3].Text.Content)
	assert.Nil(t, rt[3].Text.Link, "non-web links are kept as plain text")
}

func TestNestedListsAreFlattened(t *testing.T) {
	blocks := MarkdownToBlocks("- parent\n  - child\n- sibling\n")

	require.Len(t, blocks, 3)
	assert.Equal(t, "parent", blockText(blocks[0]))
	assert.Equal(t, "child", blockText(blocks[1]))
	assert.Equal(t, "sibling", blockText(blocks[2]))
}

func TestUnknownCodeLanguage(t *testing.T) {
	blocks := MarkdownToBlocks("```brainfuck\n+++\n```\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "plain text", blocks[0].Code.Language)
}

func TestEmptyMarkdown(t *testing.T) {
	assert.Empty(t, MarkdownToBlocks("  \n"))
}

func TestPageBody(t *testing.T) {
	blocks := pageBody(models.QARequest{
		Answer:        "Short answer.",
		RedditSources: []models.QASource{{Title: "A", URL: "http://x.com/a"}, {}},
	})

	require.Len(t, blocks, 5)
	assert.Equal(t, "Answer", blockText(blocks[0]))
	assert.Equal(t, "Short answer.", blockText(blocks[1]))
	assert.Equal(t, "Sources", blockText(blocks[2]))

	assert.Equal(t, "A", blockText(blocks[3]))
	require.NotNil(t, blocks[3].NumberedListItem.RichText[0].Text.Link)
	assert.Equal(t, "http://x.com/a", blocks[3].NumberedListItem.RichText[0].Text.Link.URL)

	assert.Equal(t, "Untitled", blockText(blocks[4]))
	assert.Nil(t, blocks[4].NumberedListItem.RichText[0].Text.Link)
}

func TestPageBodyIsCapped(t *testing.T) {
	answer := strings.Repeat("para\n\n", MAX_PAGE_CHILDREN+20)
	assert.Len(t, pageBody(models.QARequest{Answer: answer}), MAX_PAGE_CHILDREN)
}

func TestLongParagraphIsSplit(t *testing.T) {
	var sb strings.Builder
	for i := range 60 {
		fmt.Fprintf(&sb, "use **tool%d** or ", i)
	}

	blocks := MarkdownToBlocks(sb.String())

	require.Len(t, blocks, 2)
	var text strings.Builder
	items := 0
	for _, b := range blocks {
		require.Equal(t, "paragraph", b.Type)
		assert.LessOrEqual(t, len(b.Paragraph.RichText), MAX_RICH_TEXT_ITEMS)
		items += len(b.Paragraph.RichText)
		text.WriteString(blockText(b))
	}
	assert.Len(t, blocks[0].Paragraph.RichText, MAX_RICH_TEXT_ITEMS)
	assert.Greater(t, items, MAX_RICH_TEXT_ITEMS)
	assert.True(t, strings.HasPrefix(text.String(), "use tool0 or use tool1"))
	assert.Contains(t, text.String(), "tool59")
}

func TestLongHeadingContinuesAsParagraph(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("## ")
	for i := range 60 {
		fmt.Fprintf(&sb, "a *b%d* ", i)
	}

	blocks := MarkdownToBlocks(sb.String())

	require.Len(t, blocks, 2)
	assert.Equal(t, "heading_2", blocks[0].Type)
	assert.Len(t, blocks[0].Heading2.RichText, MAX_RICH_TEXT_ITEMS)
	assert.Equal(t, "paragraph", blocks[1].Type)
}

func TestLongCodeBlockIsSplit(t *testing.T) {
	code := strings.Repeat("x", MAX_RICH_TEXT_CHARS*(MAX_RICH_TEXT_ITEMS+1)+5)

	blocks := MarkdownToBlocks("```go\n" + code + "\n```\n")

	require.Len(t, blocks, 2)
	for _, b := range blocks {
		require.Equal(t, "code", b.Type)
		assert.Equal(t, "go", b.Code.Language)
	}
	assert.Len(t, blocks[0].Code.RichText, MAX_RICH_TEXT_ITEMS)
	assert.Len(t, blocks[1].Code.RichText, 2)
}

func TestPageBodyKeepsSourcesOnLongAnswer(t *testing.T) {
	answer := strings.Repeat("para\n\n", 120)

	blocks := pageBody(models.QARequest{
		Answer:        answer,
		RedditSources: []models.QASource{{Title: "A", URL: "https://reddit.com/r/golang/a"}},
	})

	require.Len(t, blocks, MAX_PAGE_CHILDREN)
	assert.Equal(t, "Answer", blockText(blocks[0]))
	assert.Equal(t, "para", blockText(blocks[1]))
	assert.Equal(t, "Sources", blockText(blocks[98]))
	assert.Equal(t, "A", blockText(blocks[99]))
}

func TestPageBodyWithManySources(t *testing.T) {
	sources := make([]models.QASource, 150)
	for i := range sources {
		sources[i] = models.QASource{Title: fmt.Sprintf("Source %d", i), URL: "https://reddit.com"}
	}

	blocks := pageBody(models.QARequest{Answer: "Short answer.", RedditSources: sources})

	require.Len(t, blocks, MAX_PAGE_CHILDREN)
	assert.Equal(t, "Answer", blockText(blocks[0]))
	assert.Equal(t, "Sources", blockText(blocks[1]))
	assert.Equal(t, "Source 0", blockText(blocks[2]))
	assert.Equal(t, "Source 97", blockText(blocks[99]))
}

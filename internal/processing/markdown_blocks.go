package processing

import (
	"net/url"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/redditqa/internal/models"
)

var codeLanguages = map[string]string{
	"go": "go", "golang": "go",
	"python": "python", "py": "python",
	"javascript": "javascript", "js": "javascript",
	"typescript": "typescript", "ts": "typescript",
	"bash": "bash", "sh": "shell", "shell": "shell",
	"json": "json", "yaml": "yaml", "yml": "yaml",
	"sql": "sql", "java": "java", "rust": "rust",
	"c": "c", "cpp": "c++", "c++": "c++",
	"html": "html", "css": "css", "ruby": "ruby",
	"markdown": "markdown", "md": "markdown",
}

// pageBody renders the answer and the source list as the page's content.
// Sources get their slots first so a long answer is what gets trimmed.
func pageBody(req models.QARequest) []models.NotionBlock {
	var sources []models.NotionBlock
	if len(req.RedditSources) > 0 {
		sources = append(sources, textBlock("heading_2", richText("Sources")))
		for _, source := range req.RedditSources {
			title, link := sourceFields(source)
			text := models.NotionText{Content: title}
			if isWebURL(link) {
				text.Link = &models.NotionLink{URL: link}
			}
			sources = append(sources, textBlock("numbered_list_item", []models.NotionRichText{{Type: "text", Text: text}}))
		}
		// one slot stays reserved for the Answer heading
		if len(sources) > MAX_PAGE_CHILDREN-1 {
			sources = sources[:MAX_PAGE_CHILDREN-1]
		}
	}

	answer := []models.NotionBlock{textBlock("heading_2", richText("Answer"))}
	answer = append(answer, MarkdownToBlocks(req.Answer)...)
	if room := MAX_PAGE_CHILDREN - len(sources); len(answer) > room {
		answer = answer[:room]
	}

	return append(answer, sources...)
}

// MarkdownToBlocks converts markdown into Notion blocks. Nested lists are
// flattened into the parent list.
func MarkdownToBlocks(markdown string) []models.NotionBlock {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	root := md.Parse([]byte(markdown))

	var blocks []models.NotionBlock
	for node := root.FirstChild; node != nil; node = node.Next {
		blocks = appendBlocks(blocks, node)
	}
	return blocks
}

func appendBlocks(blocks []models.NotionBlock, node *blackfriday.Node) []models.NotionBlock {
	switch node.Type {
	case blackfriday.Paragraph:
		return append(blocks, textBlocks("paragraph", inlineRichText(node))...)
	case blackfriday.Heading:
		kind := "heading_3"
		switch node.HeadingData.Level {
		case 1:
			kind = "heading_1"
		case 2:
			kind = "heading_2"
		}
		return append(blocks, textBlocks(kind, inlineRichText(node))...)
	case blackfriday.List:
		kind := "bulleted_list_item"
		if node.ListData.ListFlags&blackfriday.ListTypeOrdered != 0 {
			kind = "numbered_list_item"
		}
		for item := node.FirstChild; item != nil; item = item.Next {
			blocks = append(blocks, textBlocks(kind, inlineRichText(item))...)
			for child := item.FirstChild; child != nil; child = child.Next {
				if child.Type == blackfriday.List {
					blocks = appendBlocks(blocks, child)
				}
			}
		}
		return blocks
	case blackfriday.BlockQuote:
		return append(blocks, textBlocks("quote", inlineRichText(node))...)
	case blackfriday.CodeBlock:
		lang, ok := codeLanguages[strings.ToLower(strings.TrimSpace(string(node.CodeBlockData.Info)))]
		if !ok {
			lang = "plain text"
		}
		code := strings.TrimSuffix(string(node.Literal), "\n")
		for _, group := range groupRichText(richText(code)) {
			blocks = append(blocks, models.NotionBlock{
				Object: "block",
				Type:   "code",
				Code:   &models.NotionCodeBlock{RichText: group, Language: lang},
			})
		}
		return blocks
	case blackfriday.HorizontalRule:
		return append(blocks, models.NotionBlock{Object: "block", Type: "divider", Divider: &struct{}{}})
	case blackfriday.HTMLBlock:
		return append(blocks, textBlocks("paragraph", richText(string(node.Literal)))...)
	default:
		// Tables and anything else fall back to their text content.
		if rt := inlineRichText(node); len(rt) > 0 {
			return append(blocks, textBlocks("paragraph", rt)...)
		}
		return blocks
	}
}

// textBlocks spreads rt over as many blocks as the per-block item limit
// needs. Overflow continues in plain paragraphs.
func textBlocks(kind string, rt []models.NotionRichText) []models.NotionBlock {
	groups := groupRichText(rt)
	blocks := make([]models.NotionBlock, 0, len(groups))
	for i, group := range groups {
		if i > 0 {
			kind = "paragraph"
		}
		blocks = append(blocks, textBlock(kind, group))
	}
	return blocks
}

func groupRichText(rt []models.NotionRichText) [][]models.NotionRichText {
	if len(rt) <= MAX_RICH_TEXT_ITEMS {
		return [][]models.NotionRichText{rt}
	}
	var groups [][]models.NotionRichText
	for len(rt) > MAX_RICH_TEXT_ITEMS {
		groups = append(groups, rt[:MAX_RICH_TEXT_ITEMS])
		rt = rt[MAX_RICH_TEXT_ITEMS:]
	}
	if len(rt) > 0 {
		groups = append(groups, rt)
	}
	return groups
}

func textBlock(kind string, rt []models.NotionRichText) models.NotionBlock {
	if rt == nil {
		rt = []models.NotionRichText{}
	}
	body := &models.NotionTextBlock{RichText: rt}
	block := models.NotionBlock{Object: "block", Type: kind}
	switch kind {
	case "heading_1":
		block.Heading1 = body
	case "heading_2":
		block.Heading2 = body
	case "heading_3":
		block.Heading3 = body
	case "bulleted_list_item":
		block.BulletedListItem = body
	case "numbered_list_item":
		block.NumberedListItem = body
	case "quote":
		block.Quote = body
	default:
		block.Type = "paragraph"
		block.Paragraph = body
	}
	return block
}

type inlineStyle struct {
	annotations models.NotionAnnotations
	link        string
}

// inlineRichText collects the inline content below node. Nested lists are
// skipped; appendBlocks emits them as their own blocks.
func inlineRichText(node *blackfriday.Node) []models.NotionRichText {
	var out []models.NotionRichText
	add := func(content string, style inlineStyle) {
		if content == "" {
			return
		}
		for _, chunk := range chunkChars(content, MAX_RICH_TEXT_CHARS) {
			rt := models.NotionRichText{Type: "text", Text: models.NotionText{Content: chunk}}
			if style.annotations != (models.NotionAnnotations{}) {
				ann := style.annotations
				rt.Annotations = &ann
			}
			if isWebURL(style.link) {
				rt.Text.Link = &models.NotionLink{URL: style.link}
			}
			out = append(out, rt)
		}
	}

	var walk func(parent *blackfriday.Node, style inlineStyle)
	walk = func(parent *blackfriday.Node, style inlineStyle) {
		for child := parent.FirstChild; child != nil; child = child.Next {
			next := style
			switch child.Type {
			case blackfriday.Text, blackfriday.HTMLSpan:
				add(string(child.Literal), style)
			case blackfriday.Code:
				next.annotations.Code = true
				add(string(child.Literal), next)
			case blackfriday.Strong:
				next.annotations.Bold = true
				walk(child, next)
			case blackfriday.Emph:
				next.annotations.Italic = true
				walk(child, next)
			case blackfriday.Del:
				next.annotations.Strikethrough = true
				walk(child, next)
			case blackfriday.Link:
				next.link = string(child.LinkData.Destination)
				walk(child, next)
			case blackfriday.Softbreak:
				add(" ", style)
			case blackfriday.Hardbreak:
				add("\n", style)
			case blackfriday.List:
				// emitted separately by appendBlocks
			case blackfriday.Paragraph, blackfriday.Heading, blackfriday.TableRow:
				if len(out) > 0 {
					add("\n", inlineStyle{})
				}
				walk(child, style)
			case blackfriday.TableCell:
				if child.Prev != nil {
					add(" | ", inlineStyle{})
				}
				walk(child, style)
			default:
				walk(child, style)
			}
		}
	}
	walk(node, inlineStyle{})

	for len(out) > 0 {
		last := &out[len(out)-1]
		last.Text.Content = strings.TrimRight(last.Text.Content, "\n")
		if last.Text.Content != "" {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package models

// QASource is one Reddit post cited by a saved answer.
type QASource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type QARequest struct {
	Question      string     `json:"question"`
	Answer        string     `json:"answer"`
	SearchQuery   string     `json:"search_query"`
	RedditSources []QASource `json:"reddit_sources"`
}

// Notion API wire types.

type NotionPageRequest struct {
	Parent     NotionParent              `json:"parent"`
	Properties map[string]NotionProperty `json:"properties"`
	Children   []NotionBlock             `json:"children,omitempty"`
}

type NotionParent struct {
	DatabaseID string `json:"database_id"`
}

type NotionProperty struct {
	Title    []NotionRichText `json:"title,omitempty"`
	RichText []NotionRichText `json:"rich_text,omitempty"`
	Date     *NotionDate      `json:"date,omitempty"`
}

type NotionDate struct {
	Start string `json:"start"`
}

type NotionRichText struct {
	Type        string             `json:"type,omitempty"`
	Text        NotionText         `json:"text"`
	Annotations *NotionAnnotations `json:"annotations,omitempty"`
}

type NotionText struct {
	Content string      `json:"content"`
	Link    *NotionLink `json:"link,omitempty"`
}

type NotionLink struct {
	URL string `json:"url"`
}

type NotionAnnotations struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Code          bool `json:"code,omitempty"`
}

// NotionBlock holds exactly one populated content field matching Type.
type NotionBlock struct {
	Object           string           `json:"object"`
	Type             string           `json:"type"`
	Paragraph        *NotionTextBlock `json:"paragraph,omitempty"`
	Heading1         *NotionTextBlock `json:"heading_1,omitempty"`
	Heading2         *NotionTextBlock `json:"heading_2,omitempty"`
	Heading3         *NotionTextBlock `json:"heading_3,omitempty"`
	BulletedListItem *NotionTextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *NotionTextBlock `json:"numbered_list_item,omitempty"`
	Quote            *NotionTextBlock `json:"quote,omitempty"`
	Code             *NotionCodeBlock `json:"code,omitempty"`
	Divider          *struct{}        `json:"divider,omitempty"`
}

type NotionTextBlock struct {
	RichText []NotionRichText `json:"rich_text"`
}

type NotionCodeBlock struct {
	RichText []NotionRichText `json:"rich_text"`
	Language string           `json:"language"`
}

package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/redditqa/internal/models"
)

const (
	POSITIVE_THRESHOLD = 0.20
	NEGATIVE_THRESHOLD = -0.20
)

var (
	analyzer    = govader.NewSentimentIntensityAnalyzer()
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep the link text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and flattens the result to plain words.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))
	return strings.Join(strings.Fields(plain), " ")
}

func Analyze(text string) models.Sentiment {
	score := analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound

	return models.Sentiment{Score: score, Label: Label(score)}
}

func Label(score float64) string {
	switch {
	case score >= POSITIVE_THRESHOLD:
		return "positive"
	case score <= NEGATIVE_THRESHOLD:
		return "negative"
	default:
		return "neutral"
	}
}

package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "see docs here ", RemoveLinks("see [docs](https://go.dev/doc) here https://x.io"))
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("# Title\n\nSome **bold** and [a link](https://example.com).")
	assert.Equal(t, "Title Some bold and a link.", got)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "positive", Label(0.2))
	assert.Equal(t, "negative", Label(-0.2))
	assert.Equal(t, "neutral", Label(0.19))
	assert.Equal(t, "neutral", Label(0))
}

func TestAnalyze(t *testing.T) {
	good := Analyze("I love this library, it is great and wonderful!")
	assert.Equal(t, "positive", good.Label)
	assert.Greater(t, good.Score, 0.0)

	bad := Analyze("This is terrible, awful and I hate it.")
	assert.Equal(t, "negative", bad.Label)
	assert.Less(t, bad.Score, 0.0)
}

package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragment = "<h1>Song - Band</h1>\n<p>la <span class=\"chord big\">Am x02210</span> la <span class=\"chord\">C</span></p>\n"

func TestFindAllByClass(t *testing.T) {
	doc, err := Parse([]byte(fragment))
	require.NoError(t, err)

	spans := doc.FindAll(Query{Tag: "span", Attrs: map[string]string{"class": "chord"}})
	require.Len(t, spans, 2)
	assert.Equal(t, "Am x02210", spans[0].Text())
	assert.Equal(t, "C", spans[1].Text())

	assert.Empty(t, doc.FindAll(Query{Tag: "span", Attrs: map[string]string{"class": "cho"}}))
}

func TestFindFirst(t *testing.T) {
	doc, err := Parse([]byte(fragment))
	require.NoError(t, err)

	h1, ok := doc.Find(Query{Tag: "h1"})
	require.True(t, ok)
	assert.Equal(t, "Song - Band", h1.Text())

	_, ok = doc.Find(Query{Tag: "h2"})
	assert.False(t, ok)
}

func TestExtractAndDecompose(t *testing.T) {
	doc, err := Parse([]byte(fragment))
	require.NoError(t, err)

	h1, ok := doc.Find(Query{Tag: "h1"})
	require.True(t, ok)
	detached := h1.Extract()
	assert.Equal(t, "Song - Band", detached.Text())
	detached.Decompose()

	_, ok = doc.Find(Query{Tag: "h1"})
	assert.False(t, ok)

	body, err := doc.Body().InnerHTML()
	require.NoError(t, err)
	assert.NotContains(t, body, "Song - Band")
	assert.Equal(t, "\n<p>la <span class=\"chord big\">Am x02210</span> la <span class=\"chord\">C</span></p>\n", body)
}

func TestContentsIncludeTextNodes(t *testing.T) {
	doc, err := Parse([]byte("<p>a</p>text<p>b</p>"))
	require.NoError(t, err)

	nodes := doc.Body().Contents()
	require.Len(t, nodes, 3)
	assert.False(t, nodes[0].IsText())
	assert.True(t, nodes[1].IsText())

	out, err := nodes[1].Render()
	require.NoError(t, err)
	assert.Equal(t, "text", out)
}

func TestQuerySelector(t *testing.T) {
	q := Query{Tag: "span", Attrs: map[string]string{"class": "chord", "data-x": "1"}}
	assert.Equal(t, `span[class~="chord"][data-x="1"]`, q.selector())
	assert.Equal(t, "*", Query{}.selector())
}

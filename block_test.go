package lowdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 9: fenced code ```c\nint x;\n``` -> BLOCKCODE{lang="c",text="int x;\n"}.
func TestScenarioFencedCode(t *testing.T) {
	root, err := New(WithExtensions(Fenced)).Parse([]byte("```c\nint x;\n```\n"))
	require.NoError(t, err)
	code := findFirst(root, NodeBlockCode)
	require.NotNil(t, code)
	assert.Equal(t, "c", code.Lang)
	assert.Equal(t, "int x;\n", string(code.Literal))
}

func TestFencedCodeToleratesLongerClosingFence(t *testing.T) {
	root, err := New(WithExtensions(Fenced)).Parse([]byte("```\ncode\n````\n"))
	require.NoError(t, err)
	code := findFirst(root, NodeBlockCode)
	require.NotNil(t, code)
	assert.Equal(t, "code\n", string(code.Literal))
}

// Scenario 10: table `|a|b|\n|-|-|\n|1|2|` -> TABLE_BLOCK{columns=2} ->
// HEADER row (cells "a","b") + BODY row ("1","2").
func TestScenarioTable(t *testing.T) {
	root, err := New(WithExtensions(Tables)).Parse([]byte("|a|b|\n|-|-|\n|1|2|\n"))
	require.NoError(t, err)

	block := findFirst(root, NodeTableBlock)
	require.NotNil(t, block)
	assert.Equal(t, 2, block.Columns)

	header := findFirst(root, NodeTableHeader)
	require.NotNil(t, header)
	headerCells := findAll(header, NodeTableCell)
	require.Len(t, headerCells, 2)
	assert.Equal(t, "a", string(headerCells[0].Children[0].Literal))
	assert.Equal(t, "b", string(headerCells[1].Children[0].Literal))

	body := findFirst(root, NodeTableBody)
	require.NotNil(t, body)
	bodyCells := findAll(body, NodeTableCell)
	require.Len(t, bodyCells, 2)
	assert.Equal(t, "1", string(bodyCells[0].Children[0].Literal))
	assert.Equal(t, "2", string(bodyCells[1].Children[0].Literal))
}

func TestTableColumnAlignment(t *testing.T) {
	root, err := New(WithExtensions(Tables)).Parse([]byte("|a|b|c|\n|:--|--:|:--:|\n|1|2|3|\n"))
	require.NoError(t, err)
	block := findFirst(root, NodeTableBlock)
	require.NotNil(t, block)
	require.Len(t, block.Aligns, 3)
	assert.Equal(t, CellAlignLeft, block.Aligns[0])
	assert.Equal(t, CellAlignRight, block.Aligns[1])
	assert.Equal(t, CellAlignCenter, block.Aligns[2])
}

func TestATXHeaderLevel(t *testing.T) {
	root, err := New().Parse([]byte("### Title\n"))
	require.NoError(t, err)
	h := findFirst(root, NodeHeader)
	require.NotNil(t, h)
	assert.Equal(t, 2, h.Level)
	text := findFirst(h, NodeNormalText)
	require.NotNil(t, text)
	assert.Equal(t, "Title", string(text.Literal))
}

func TestSetextHeaderConvertsParagraph(t *testing.T) {
	root, err := New().Parse([]byte("Title\n=====\n"))
	require.NoError(t, err)
	h := findFirst(root, NodeHeader)
	require.NotNil(t, h)
	assert.Equal(t, 1, h.Level)
	assert.Nil(t, findFirst(root, NodeParagraph))
}

func TestSetextHeaderSplitsPrecedingLines(t *testing.T) {
	root, err := New().Parse([]byte("First line\nTitle\n=====\n"))
	require.NoError(t, err)

	h := findFirst(root, NodeHeader)
	require.NotNil(t, h)
	assert.Equal(t, 1, h.Level)
	htext := findFirst(h, NodeNormalText)
	require.NotNil(t, htext)
	assert.Equal(t, "Title", string(htext.Literal))

	para := findFirst(root, NodeParagraph)
	require.NotNil(t, para)
	assert.Equal(t, 1, para.Lines)
	ptext := findFirst(para, NodeNormalText)
	require.NotNil(t, ptext)
	assert.Equal(t, "First line", string(ptext.Literal))
}

func TestHRule(t *testing.T) {
	root, err := New().Parse([]byte("---\n"))
	require.NoError(t, err)
	assert.NotNil(t, findFirst(root, NodeHRule))
}

func TestBlockQuote(t *testing.T) {
	root, err := New().Parse([]byte("> quoted text\n"))
	require.NoError(t, err)
	bq := findFirst(root, NodeBlockQuote)
	require.NotNil(t, bq)
	para := findFirst(bq, NodeParagraph)
	require.NotNil(t, para)
}

func TestIndentedCodeBlock(t *testing.T) {
	root, err := New().Parse([]byte("    int x;\n    int y;\n"))
	require.NoError(t, err)
	code := findFirst(root, NodeBlockCode)
	require.NotNil(t, code)
	assert.Equal(t, "int x;\nint y;\n", string(code.Literal))
}

func TestUnorderedList(t *testing.T) {
	root, err := New().Parse([]byte("- one\n- two\n- three\n"))
	require.NoError(t, err)
	list := findFirst(root, NodeList)
	require.NotNil(t, list)
	assert.NotZero(t, list.ListFlags&ListUnordered)
	items := findAll(list, NodeListItem)
	require.Len(t, items, 3)
}

func TestOrderedListStartNumber(t *testing.T) {
	root, err := New().Parse([]byte("3. three\n4. four\n"))
	require.NoError(t, err)
	items := findAll(root, NodeListItem)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Num)
	assert.Equal(t, 4, items[1].Num)
}

func TestDefinitionList(t *testing.T) {
	root, err := New(WithExtensions(DefinitionLists)).Parse([]byte("Term\n: the definition\n"))
	require.NoError(t, err)
	title := findFirst(root, NodeDefinitionTitle)
	require.NotNil(t, title)
	data := findFirst(root, NodeDefinitionData)
	require.NotNil(t, data)
}

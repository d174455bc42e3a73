package lowdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 6: front matter `title: X\n\n# H` (metadata enabled) -> META
// entries include {key="title", value="X"}; body has HEADER(level 0)
// with NORMAL_TEXT("H").
func TestScenarioFrontMatterMetadata(t *testing.T) {
	root, err := New(WithExtensions(Metadata)).Parse([]byte("title: My Doc\n\n# H\n"))
	require.NoError(t, err)

	metas := findAll(root, NodeMeta)
	require.NotEmpty(t, metas)
	assert.Equal(t, "title", metas[0].Key)
	assert.Equal(t, "My Doc", metas[0].Value)

	h := findFirst(root, NodeHeader)
	require.NotNil(t, h)
	assert.Equal(t, 0, h.Level)
	text := findFirst(h, NodeNormalText)
	require.NotNil(t, text)
	assert.Equal(t, "H", string(text.Literal))
}

// Scenario 8: `[x][y]` referenced before its `[y]: http://e "t"`
// definition still resolves, since pass 1 scans the whole buffer for
// definitions before pass 2 builds the AST.
func TestScenarioForwardReferencedLink(t *testing.T) {
	root, err := New().Parse([]byte("[x][y]\n\n[y]: http://e \"t\"\n"))
	require.NoError(t, err)

	link := findFirst(root, NodeLink)
	require.NotNil(t, link)
	assert.Equal(t, "http://e", link.LinkDest)
	assert.Equal(t, "t", link.Title)
	require.Len(t, link.Children, 1)
	assert.Equal(t, "x", string(link.Children[0].Literal))
}

func TestDocHeaderAndFooterBracketContent(t *testing.T) {
	root, err := New().Parse([]byte("hello\n"))
	require.NoError(t, err)

	require.Len(t, root.Children, 3)
	assert.Equal(t, NodeDocHeader, root.Children[0].Type)
	assert.NotEmpty(t, root.Children[0].DebugID)
	assert.Equal(t, NodeDocFooter, root.Children[len(root.Children)-1].Type)
}

func TestFootnoteDefOrderedByFirstUse(t *testing.T) {
	input := []byte("a[^two] b[^one]\n\n[^one]: first note\n[^two]: second note\n")
	root, err := New(WithExtensions(Footnotes)).Parse(input)
	require.NoError(t, err)

	defs := findAll(root, NodeFootnoteDef)
	require.Len(t, defs, 2)
	assert.Equal(t, 1, defs[0].Num)
	assert.Equal(t, 2, defs[1].Num)
}

func TestDepthExceededReturnsError(t *testing.T) {
	input := []byte("> > > > > > > > > > deep\n")
	_, err := New(WithMaxDepth(3)).Parse(input)
	require.Error(t, err)
	var depthErr *DepthExceededError
	assert.ErrorAs(t, err, &depthErr)
}

// Invariant (spec.md §8): every node's Parent pointer is consistent with
// its presence in Parent.Children, and node ids are dense and unique
// over [0, n).
func TestParentChildConsistencyAndDenseIDs(t *testing.T) {
	root, err := New(WithExtensions(Tables | Fenced | Footnotes)).Parse([]byte(
		"# Title\n\nSome *text* with a [link](http://e).\n\n" +
			"```go\ncode\n```\n\n|a|b|\n|-|-|\n|1|2|\n",
	))
	require.NoError(t, err)

	seen := make(map[int]bool)
	var maxID int
	root.Walk(func(n *Node) {
		seen[n.ID] = true
		if n.ID > maxID {
			maxID = n.ID
		}
		for _, c := range n.Children {
			assert.Same(t, n, c.Parent)
		}
	})
	for id := 0; id <= maxID; id++ {
		assert.True(t, seen[id], "node id %d missing from tree", id)
	}
}

// Invariant: link-reference resolution is case-sensitive and does not
// depend on definition order relative to use.
func TestReferenceResolutionCaseSensitiveOrderIndependent(t *testing.T) {
	root, err := New().Parse([]byte("[a][Ref] and [b][ref]\n\n[ref]: http://lower\n[Ref]: http://upper\n"))
	require.NoError(t, err)

	links := findAll(root, NodeLink)
	require.Len(t, links, 2)
	assert.Equal(t, "http://upper", links[0].LinkDest)
	assert.Equal(t, "http://lower", links[1].LinkDest)
}

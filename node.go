package lowdown

// NodeType identifies the variant of an AST Node. The full set mirrors the
// node contract in SPEC_FULL.md §6.1, itself carried unchanged from
// spec.md.
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeDocHeader
	NodeDocFooter
	NodeMeta

	NodeParagraph
	NodeHeader
	NodeHRule
	NodeBlockCode
	NodeBlockHTML
	NodeBlockQuote
	NodeList
	NodeListItem
	NodeDefinition
	NodeDefinitionTitle
	NodeDefinitionData
	NodeTableBlock
	NodeTableHeader
	NodeTableBody
	NodeTableRow
	NodeTableCell
	NodeFootnotesBlock
	NodeFootnoteDef
	NodeMathBlock

	NodeNormalText
	NodeEmphasis
	NodeDoubleEmphasis
	NodeTripleEmphasis
	NodeStrikethrough
	NodeHighlight
	NodeSuperscript
	NodeLinebreak
	NodeCodeSpan
	NodeEntity
	NodeRawHTML
	NodeLink
	NodeLinkAuto
	NodeImage
	NodeFootnoteRef
)

//go:generate stringer -type=NodeType -output=node_type_string.go

func (t NodeType) String() string {
	switch t {
	case NodeRoot:
		return "Root"
	case NodeDocHeader:
		return "DocHeader"
	case NodeDocFooter:
		return "DocFooter"
	case NodeMeta:
		return "Meta"
	case NodeParagraph:
		return "Paragraph"
	case NodeHeader:
		return "Header"
	case NodeHRule:
		return "HRule"
	case NodeBlockCode:
		return "BlockCode"
	case NodeBlockHTML:
		return "BlockHTML"
	case NodeBlockQuote:
		return "BlockQuote"
	case NodeList:
		return "List"
	case NodeListItem:
		return "ListItem"
	case NodeDefinition:
		return "Definition"
	case NodeDefinitionTitle:
		return "DefinitionTitle"
	case NodeDefinitionData:
		return "DefinitionData"
	case NodeTableBlock:
		return "TableBlock"
	case NodeTableHeader:
		return "TableHeader"
	case NodeTableBody:
		return "TableBody"
	case NodeTableRow:
		return "TableRow"
	case NodeTableCell:
		return "TableCell"
	case NodeFootnotesBlock:
		return "FootnotesBlock"
	case NodeFootnoteDef:
		return "FootnoteDef"
	case NodeMathBlock:
		return "MathBlock"
	case NodeNormalText:
		return "NormalText"
	case NodeEmphasis:
		return "Emphasis"
	case NodeDoubleEmphasis:
		return "DoubleEmphasis"
	case NodeTripleEmphasis:
		return "TripleEmphasis"
	case NodeStrikethrough:
		return "Strikethrough"
	case NodeHighlight:
		return "Highlight"
	case NodeSuperscript:
		return "Superscript"
	case NodeLinebreak:
		return "Linebreak"
	case NodeCodeSpan:
		return "CodeSpan"
	case NodeEntity:
		return "Entity"
	case NodeRawHTML:
		return "RawHTML"
	case NodeLink:
		return "Link"
	case NodeLinkAuto:
		return "LinkAuto"
	case NodeImage:
		return "Image"
	case NodeFootnoteRef:
		return "FootnoteRef"
	default:
		return "Unknown"
	}
}

// ListFlags describe the kind and shape of a NodeList/NodeListItem.
type ListFlags int

const (
	ListOrdered ListFlags = 1 << iota
	ListUnordered
	ListDefinition
	ListBlock  // HLIST_FL_BLOCK: items hold blank-line-separated content
	ListItemEnd
)

// CellFlags describe TABLE_CELL/TABLE_HEADER column alignment and role.
type CellFlags int

const (
	CellAlignLeft CellFlags = 1 << iota
	CellAlignRight
	CellHeader
)

// CellAlignCenter is the combination spec.md §6.1 calls out explicitly:
// both CellAlignLeft and CellAlignRight set means centered.
const CellAlignCenter = CellAlignLeft | CellAlignRight

// AutoLinkType distinguishes LINK_AUTO's two recognized forms.
type AutoLinkType int

const (
	AutoLinkNormal AutoLinkType = iota
	AutoLinkEmail
)

// Node is a single tagged AST tree node. Every non-root node has exactly
// one Parent; Children preserves insertion order; destroying a node's
// subtree is simply dropping the reference, since Go is garbage collected
// and no node owns resources beyond its own fields (spec.md §3's "destroy"
// invariant is therefore automatically honored).
//
// Payload fields are a variant-tagged union flattened into one struct,
// the common Go idiom for small closed node-kind sets (only the fields
// relevant to Type are populated; the rest stay at their zero value).
type Node struct {
	ID     int
	Type   NodeType
	Parent *Node
	Children []*Node

	// PARAGRAPH
	Lines        int
	HardBreakEnd bool // beoln: paragraph ends with a forced break into what follows

	// HEADER
	Level int

	// BLOCKCODE / MATH_BLOCK
	Literal   []byte
	Lang      string
	BlockMath bool

	// LIST / LISTITEM
	ListFlags ListFlags
	Start     int
	Num       int // LISTITEM ordinal, FOOTNOTE_DEF/FOOTNOTE_REF number

	// DEFINITION
	DefFlags ListFlags

	// TABLE_BLOCK / TABLE_HEADER / TABLE_CELL
	Columns int
	Aligns  []CellFlags
	Col     int
	Cell    CellFlags

	// META
	Key   string
	Value string

	// DOC_HEADER debug correlation id (SPEC_FULL.md §6.4's google/uuid wiring)
	DebugID string

	// LINK / LINK_AUTO / IMAGE
	LinkDest   string
	Title      string
	AutoType   AutoLinkType
	AutoText   string
	Alt        string
	Dims       string
	AttrWidth  string
	AttrHeight string
}

// Kind is a nil-safe accessor, matching the style of nil-safe accessors on
// zombiezen-go-commonmark's *Block (Kind/Span/ChildCount): a nil Node
// behaves like an absent node rather than panicking, which keeps callers
// that walk optional tree edges (e.g. "does this list item's last child
// look like...") simple.
func (n *Node) Kind() NodeType {
	if n == nil {
		return NodeRoot
	}
	return n.Type
}

// appendChild links child under n, in the teacher's "parent owns an
// ordered slice of children" shape (document.c's TAILQ_INSERT_TAIL).
func (n *Node) appendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// LastChild returns the most recently appended child, or nil.
func (n *Node) LastChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk performs a depth-first traversal, calling fn on each node in the
// subtree rooted at n (n included) before its later siblings.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

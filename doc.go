// Package lowdown implements a two-pass Markdown parser that turns a
// single in-memory byte buffer into a typed AST, per spec.md/SPEC_FULL.md.
// Renderers are out of scope; callers walk the returned *Node tree.
package lowdown

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ericonr/lowdown/internal/plog"
)

// Extensions is the parse-feature bitmask from spec.md §6.2.
type Extensions uint32

const (
	Tables Extensions = 1 << iota
	Fenced
	Footnotes
	Autolink
	Strikethrough
	Highlight
	Superscript
	Math
	NoIntraEmphasis
	NoCodeIndent
	Metadata
	CommonMark
	DefinitionLists
	ImageAttributes
)

// DefaultMaxDepth is spec.md §6.2's default tree-depth limit.
const DefaultMaxDepth = 128

// Options holds a parser's extension bitmask and limits, populated either
// directly or via the functional-options constructor New (mirroring
// brandonbloom-catmd's goldmark.New(goldmark.WithExtensions(...)) shape,
// see SPEC_FULL.md §6.2) or via ParserConfig.Options() (config.go).
type Options struct {
	Extensions        Extensions
	MaxDepth          int
	MetadataOverrides map[string]string
	Logger            *slog.Logger
}

// Option configures an Options value.
type Option func(*Options)

// WithExtensions sets the parse-feature bitmask.
func WithExtensions(e Extensions) Option {
	return func(o *Options) { o.Extensions = e }
}

// WithMaxDepth overrides the default tree-depth limit. 0 means unbounded,
// per spec.md §6.2.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

// WithMetadataOverrides supplies metadata that overrides keys already
// present in the document's own front matter and is appended for keys
// not present, per spec.md §4.5.
func WithMetadataOverrides(m map[string]string) Option {
	return func(o *Options) { o.MetadataOverrides = m }
}

// WithLogger overrides the parser's diagnostic logger (internal/plog.Default
// otherwise).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Parser holds one immutable Options value and can Parse any number of
// independent documents; spec.md §5 requires each Parse to build its own
// ParserState, which is what parserState (below) is for.
type Parser struct {
	opts *Options
}

// New builds a Parser from functional options, defaulting to
// DefaultMaxDepth and the package's default logger.
func New(opts ...Option) *Parser {
	o := &Options{MaxDepth: DefaultMaxDepth, Logger: plog.Default}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = plog.Default
	}
	return &Parser{opts: o}
}

// parserState is the per-call ParserState of spec.md §3: options, tables,
// dispatch table, node cursor, depth counter, node-id counter, and the
// in_link_body flag. Constructed fresh in Parse and never shared across
// goroutines.
type parserState struct {
	opts       *Options
	refs       *refTable
	activeChar [256]inlineTrigger

	current *Node
	depth   int

	maxDepth int
	nodeID   int

	inLinkBody bool

	logger *slog.Logger

	// footnoteOrder records *FootnoteRef in order-of-first-use, assigned
	// Num as they're discovered during inline parsing (spec.md §3).
	footnoteOrder []*FootnoteRef
}

func (ps *parserState) newNode(t NodeType) *Node {
	ps.nodeID++
	return &Node{ID: ps.nodeID, Type: t}
}

// appendChild creates a leaf node of type t under the current cursor
// without moving the cursor — used for nodes with no further block/inline
// children of their own framing (NORMAL_TEXT, HRULE, entities, etc.).
func (ps *parserState) appendChild(t NodeType) *Node {
	n := ps.newNode(t)
	ps.current.appendChild(n)
	return n
}

// push creates a node under the current cursor and moves the cursor into
// it, incrementing the depth counter and aborting the parse
// (DepthExceededError, recovered in Parse) if maxDepth is exceeded —
// document.c's pushnode.
func (ps *parserState) push(t NodeType) *Node {
	n := ps.appendChild(t)
	ps.depth++
	if ps.maxDepth > 0 && ps.depth > ps.maxDepth {
		abortDepth(ps.maxDepth)
	}
	ps.current = n
	return n
}

// pop moves the cursor back to the current node's parent — document.c's
// popnode.
func (ps *parserState) pop() {
	ps.depth--
	ps.current = ps.current.Parent
}

// Parse runs Pass 1 (reference/footnote/metadata extraction) followed by
// Pass 2 (recursive block parsing with embedded inline parsing) over
// input, returning the root Node of the resulting AST. Depth-exceeded and
// allocation-failure conditions are fatal per spec.md §7 but, because
// this is a library rather than the original CLI tool, are surfaced as a
// returned error rather than a process abort (see DESIGN.md).
func (p *Parser) Parse(input []byte) (root *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *DepthExceededError:
				err = e
				root = nil
			case *AllocationError:
				err = e
				root = nil
			default:
				panic(r)
			}
		}
	}()

	refs := newRefTable()
	cleaned, perr := pass1(p, refs, input)
	if perr != nil {
		return nil, errors.Wrap(perr, "lowdown: pass1")
	}

	ps := &parserState{
		opts:     p.opts,
		refs:     refs,
		maxDepth: p.opts.MaxDepth,
		logger:   p.opts.Logger,
	}
	ps.activeChar = buildDispatch(p.opts.Extensions)

	root = &Node{ID: 0, Type: NodeRoot}
	ps.current = root

	header := ps.push(NodeDocHeader)
	header.DebugID = uuid.New().String()
	ps.pop()

	if p.opts.Extensions&Metadata != 0 {
		for _, e := range refs.orderedMeta() {
			m := ps.appendChild(NodeMeta)
			m.Key = e.Key
			m.Value = e.Value
		}
	}

	parseBlocks(ps, cleaned)

	if p.opts.Extensions&Footnotes != 0 && len(ps.footnoteOrder) > 0 {
		ps.push(NodeFootnotesBlock)
		for _, fn := range ps.footnoteOrder {
			def := ps.push(NodeFootnoteDef)
			def.Num = fn.Num
			parseBlocks(ps, normalizeText(fn.Contents))
			ps.pop()
		}
		ps.pop()
	}

	ps.push(NodeDocFooter)
	ps.pop()

	return root, nil
}

// buildDispatch constructs the 256-entry active-character table, per
// spec.md §4.6: each byte maps to a trigger or stays nil (none), with
// several entries conditional on the extension bitmask.
func buildDispatch(ext Extensions) [256]inlineTrigger {
	var t [256]inlineTrigger

	t['*'] = triggerEmphasis
	t['_'] = triggerEmphasis
	if ext&Strikethrough != 0 {
		t['~'] = triggerEmphasis
	}
	if ext&Highlight != 0 {
		t['='] = triggerEmphasis
	}

	t['`'] = triggerCodeSpan
	t['\n'] = triggerLinebreak
	t['['] = triggerLink
	t['!'] = triggerImage
	t['<'] = triggerLangle
	t['\\'] = triggerEscape
	t['&'] = triggerEntity

	if ext&Autolink != 0 {
		t[':'] = triggerAutolinkURL
		t['@'] = triggerAutolinkEmail
		t['w'] = triggerAutolinkWWW
	}
	if ext&Superscript != 0 {
		t['^'] = triggerSuperscript
	}
	if ext&Math != 0 {
		t['$'] = triggerMath
	}

	return t
}

package lowdown

import "bytes"

// parseBlocks walks data (already Pass-1-cleaned: tabs expanded, CRLF
// normalized, one trailing '\n' guaranteed) line-oriented, dispatching to
// one block recognizer per spec.md §4.7's ordered rule list and appending
// the resulting nodes under ps.current. Each recognizer either returns 0
// (did not match, try the next rule) or the number of bytes of data it
// consumed (always > 0 on a match, guaranteeing loop progress).
func parseBlocks(ps *parserState, data []byte) {
	for len(data) > 0 {
		n := 0
		if n = tryATXHeader(ps, data); n == 0 {
			if n = tryHTMLBlock(ps, data); n == 0 {
				if n = tryBlankLine(ps, data); n == 0 {
					if n = tryFencedCode(ps, data); n == 0 {
						if n = tryTable(ps, data); n == 0 {
							if n = tryBlockQuote(ps, data); n == 0 {
								if n = tryHRule(ps, data); n == 0 {
									if n = tryIndentedCode(ps, data); n == 0 {
										if n = tryList(ps, data, ListUnordered); n == 0 {
											if n = tryDefinitionList(ps, data); n == 0 {
												if n = tryList(ps, data, ListOrdered); n == 0 {
													n = paragraph(ps, data)
												}
											}
										}
									}
								}
							}
						}
					}
				}
			}
		}
		if n <= 0 {
			n = 1 // safety valve: guarantee forward progress on unreadable input
		}
		if n > len(data) {
			n = len(data)
		}
		data = data[n:]
	}
}

// lineSpan returns the half-open byte range of the first line of data
// (up to but excluding its terminating '\n', or all of data if data
// holds no newline).
func lineSpan(data []byte) (line []byte, consumed int) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, len(data)
	}
	return data[:i], i + 1
}

func tryBlankLine(ps *parserState, data []byte) int {
	line, consumed := lineSpan(data)
	if len(bytes.TrimRight(line, " \t")) != 0 {
		return 0
	}
	return consumed
}

// tryATXHeader recognizes a "#"-prefixed header line, 1-6 level, per
// spec.md §4.7 rule 1. Trailing "#"s and surrounding space are trimmed.
func tryATXHeader(ps *parserState, data []byte) int {
	line, consumed := lineSpan(data)
	i := CountSpaces(line, 0, len(line), 3)
	level := 0
	for i+level < len(line) && line[i+level] == '#' && level < 6 {
		level++
	}
	if level == 0 {
		return 0
	}
	if i+level < len(line) && !isWhitespaceByte(line[i+level]) {
		return 0
	}
	text := bytes.TrimSpace(line[i+level:])
	text = bytes.TrimRight(text, "#")
	text = bytes.TrimRight(text, " \t")

	h := ps.push(NodeHeader)
	h.Level = level - 1
	parseInlineInto(ps, text)
	ps.pop()
	return consumed
}

// tryHRule recognizes a line of 3+ repeats of the same rule character
// (-, _, or *), each possibly separated by spaces, per spec.md §4.7 rule
// 8.
func tryHRule(ps *parserState, data []byte) int {
	line, consumed := lineSpan(data)
	i := CountSpaces(line, 0, len(line), 3)
	if i >= len(line) {
		return 0
	}
	c := line[i]
	if c != '-' && c != '_' && c != '*' {
		return 0
	}
	count := 0
	for j := i; j < len(line); j++ {
		switch line[j] {
		case c:
			count++
		case ' ', '\t':
		default:
			return 0
		}
	}
	if count < 3 {
		return 0
	}
	ps.appendChild(NodeHRule)
	return consumed
}

// fenceInfo reports the fence character, run length, and leading indent
// of a fenced-code opening/closing line, or ok=false if line isn't one.
func fenceInfo(line []byte) (ch byte, length, indent int, ok bool) {
	indent = CountSpaces(line, 0, len(line), 3)
	if indent >= len(line) {
		return 0, 0, 0, false
	}
	c := line[indent]
	if c != '`' && c != '~' {
		return 0, 0, 0, false
	}
	n := 0
	for indent+n < len(line) && line[indent+n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, 0, false
	}
	return c, n, indent, true
}

// tryFencedCode recognizes a ``` or ~~~ fenced code block, per spec.md
// §4.7 rule 5. A closing fence must use the same character and be at
// least as long as the opening one; spec.md §9 tolerates (rather than
// rejects) a mismatched closing-fence width by simply requiring
// "at least as long", not "equal".
func tryFencedCode(ps *parserState, data []byte) int {
	firstLine, firstConsumed := lineSpan(data)
	ch, openLen, indent, ok := fenceInfo(firstLine)
	if !ok {
		return 0
	}
	lang := string(bytes.TrimSpace(firstLine[indent+openLen:]))

	pos := firstConsumed
	var body bytes.Buffer
	for pos < len(data) {
		line, consumed := lineSpan(data[pos:])
		if cc, n, _, closeOK := fenceInfo(line); closeOK && cc == ch {
			if n >= openLen {
				pos += consumed
				goto done
			}
			ps.logger.Debug("fence close shorter than open, treated as text", "char", string(ch), "openLen", openLen, "closeLen", n)
		}
		body.Write(line)
		body.WriteByte('\n')
		pos += consumed
	}
done:
	n := ps.appendChild(NodeBlockCode)
	n.Literal = append([]byte(nil), body.Bytes()...)
	n.Lang = lang
	return pos
}

// tryIndentedCode recognizes one or more 4-space-indented lines as a code
// block, per spec.md §4.7 rule 9. Consumes consecutive indented lines
// (blank lines within the run are kept as part of the block's content).
func tryIndentedCode(ps *parserState, data []byte) int {
	line, _ := lineSpan(data)
	if CountSpaces(line, 0, len(line), 4) < 4 {
		return 0
	}

	var body bytes.Buffer
	pos := 0
	for pos < len(data) {
		ln, consumed := lineSpan(data[pos:])
		if len(bytes.TrimRight(ln, " \t")) == 0 {
			// peek ahead: only keep consuming if another indented line follows
			next := pos + consumed
			if next < len(data) {
				nl, _ := lineSpan(data[next:])
				if CountSpaces(nl, 0, len(nl), 4) >= 4 {
					body.WriteByte('\n')
					pos += consumed
					continue
				}
			}
			break
		}
		if CountSpaces(ln, 0, len(ln), 4) < 4 {
			break
		}
		body.Write(ln[4:])
		body.WriteByte('\n')
		pos += consumed
	}

	n := ps.appendChild(NodeBlockCode)
	n.Literal = append([]byte(nil), body.Bytes()...)
	return pos
}

// tryHTMLBlock recognizes a line beginning (after up to 3 spaces) with
// '<' as the start of a raw HTML block, per spec.md §4.7 rule 2,
// consuming through the next blank line.
func tryHTMLBlock(ps *parserState, data []byte) int {
	line, _ := lineSpan(data)
	i := CountSpaces(line, 0, len(line), 3)
	if i >= len(line) || line[i] != '<' {
		return 0
	}

	pos := 0
	var body bytes.Buffer
	for pos < len(data) {
		ln, consumed := lineSpan(data[pos:])
		if len(bytes.TrimRight(ln, " \t")) == 0 {
			break
		}
		body.Write(ln)
		body.WriteByte('\n')
		pos += consumed
	}
	n := ps.appendChild(NodeBlockHTML)
	n.Literal = append([]byte(nil), body.Bytes()...)
	return pos
}

// tryBlockQuote recognizes one or more consecutive "> "-prefixed lines,
// per spec.md §4.7 rule 7, stripping one leading "> " or ">" from each
// before recursively block-parsing the dedented content.
func tryBlockQuote(ps *parserState, data []byte) int {
	line, _ := lineSpan(data)
	i := CountSpaces(line, 0, len(line), 3)
	if i >= len(line) || line[i] != '>' {
		return 0
	}

	pos := 0
	var inner bytes.Buffer
	for pos < len(data) {
		ln, consumed := lineSpan(data[pos:])
		j := CountSpaces(ln, 0, len(ln), 3)
		if j < len(ln) && ln[j] == '>' {
			j++
			if j < len(ln) && ln[j] == ' ' {
				j++
			}
			inner.Write(ln[j:])
			inner.WriteByte('\n')
			pos += consumed
			continue
		}
		if len(bytes.TrimRight(ln, " \t")) == 0 {
			break
		}
		// lazy continuation: a non-blank, non-'>' line directly follows
		inner.Write(ln)
		inner.WriteByte('\n')
		pos += consumed
	}

	ps.push(NodeBlockQuote)
	parseBlocks(ps, inner.Bytes())
	ps.pop()
	return pos
}

// tableRowCells splits a "|"-delimited table row into trimmed cells,
// honoring "\|" as an escaped literal pipe (spec.md §8's supplemented
// table-cell escaping).
func tableRowCells(line []byte) [][]byte {
	line = bytes.TrimSpace(line)
	line = bytes.TrimPrefix(line, []byte("|"))
	line = bytes.TrimSuffix(line, []byte("|"))

	var cells [][]byte
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '|' && !IsEscaped(line, i) {
			cells = append(cells, bytes.TrimSpace(line[start:i]))
			start = i + 1
		}
	}
	cells = append(cells, bytes.TrimSpace(line[start:]))
	return cells
}

// isTableDelimRow reports whether line is a table header/body delimiter
// row of the form "---|:---:|---:", returning each column's alignment.
func isTableDelimRow(line []byte) ([]CellFlags, bool) {
	cells := tableRowCells(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]CellFlags, len(cells))
	for i, c := range cells {
		c = bytes.TrimSpace(c)
		if len(c) == 0 {
			return nil, false
		}
		left := len(c) > 0 && c[0] == ':'
		right := len(c) > 0 && c[len(c)-1] == ':'
		body := c
		if left {
			body = body[1:]
		}
		if right && len(body) > 0 {
			body = body[:len(body)-1]
		}
		for _, b := range body {
			if b != '-' {
				return nil, false
			}
		}
		if len(body) == 0 {
			return nil, false
		}
		switch {
		case left && right:
			aligns[i] = CellAlignCenter
		case left:
			aligns[i] = CellAlignLeft
		case right:
			aligns[i] = CellAlignRight
		}
	}
	return aligns, true
}

// tryTable recognizes a GFM-style pipe table: a header row immediately
// followed by a delimiter row, per spec.md §4.7 rule 6.
func tryTable(ps *parserState, data []byte) int {
	headerLine, headerConsumed := lineSpan(data)
	if bytes.IndexByte(headerLine, '|') < 0 {
		return 0
	}
	if headerConsumed >= len(data) {
		return 0
	}
	delimLine, delimConsumed := lineSpan(data[headerConsumed:])
	aligns, ok := isTableDelimRow(delimLine)
	if !ok {
		return 0
	}
	headerCells := tableRowCells(headerLine)

	block := ps.push(NodeTableBlock)
	block.Columns = len(headerCells)
	block.Aligns = aligns

	thead := ps.push(NodeTableHeader)
	thead.Columns = len(headerCells)
	thead.Aligns = aligns
	ps.push(NodeTableRow)
	for i, cell := range headerCells {
		c := ps.push(NodeTableCell)
		c.Col = i
		c.Cell = CellHeader
		if i < len(aligns) {
			c.Cell |= aligns[i]
		}
		parseInlineInto(ps, cell)
		ps.pop()
	}
	ps.pop() // row
	ps.pop() // thead

	pos := headerConsumed + delimConsumed
	ps.push(NodeTableBody)
	for pos < len(data) {
		line, consumed := lineSpan(data[pos:])
		if len(bytes.TrimRight(line, " \t")) == 0 || bytes.IndexByte(line, '|') < 0 {
			break
		}
		cells := tableRowCells(line)
		row := ps.push(NodeTableRow)
		for i, cell := range cells {
			c := ps.push(NodeTableCell)
			c.Col = i
			if i < len(aligns) {
				c.Cell = aligns[i]
			}
			parseInlineInto(ps, cell)
			ps.pop()
		}
		ps.pop() // row
		_ = row
		pos += consumed
	}
	ps.pop() // tbody
	ps.pop() // table block
	return pos
}

// listItemPrefixLen returns the byte length of an unordered ("-", "*",
// "+") or ordered ("N.", "N)") list-item marker plus its following
// whitespace at the start of line, or 0 if line doesn't start with one.
// kind restricts which family is accepted.
func listItemPrefixLen(line []byte, kind ListFlags) (prefixLen int, num int) {
	i := CountSpaces(line, 0, len(line), 3)
	start := i
	if kind == ListUnordered {
		if i >= len(line) {
			return 0, 0
		}
		switch line[i] {
		case '-', '*', '+':
		default:
			return 0, 0
		}
		i++
	} else {
		digitStart := i
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i == digitStart || i >= len(line) || (line[i] != '.' && line[i] != ')') {
			return 0, 0
		}
		numStr := line[digitStart:i]
		for _, d := range numStr {
			num = num*10 + int(d-'0')
		}
		i++
	}
	if i >= len(line) || !isWhitespaceByte(line[i]) {
		return 0, 0
	}
	i++
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i - start, num
}

// tryList recognizes a run of list items of the requested kind, per
// spec.md §4.7 rules 10/11. Each item's continuation lines (indented at
// least as far as the marker's content column) are dedented and
// recursively block-parsed; a blank line followed by an indented
// continuation line inside an item marks the list ListBlock (loose).
// Blank lines that only separate one item from the next do not.
func tryList(ps *parserState, data []byte, kind ListFlags) int {
	firstLine, _ := lineSpan(data)
	prefixLen, _ := listItemPrefixLen(firstLine, kind)
	if prefixLen == 0 {
		return 0
	}

	list := ps.push(NodeList)
	list.ListFlags = kind
	loose := false

	pos := 0
	for pos < len(data) {
		line, _ := lineSpan(data[pos:])
		itemPrefixLen, num := listItemPrefixLen(line, kind)
		if itemPrefixLen == 0 {
			break
		}
		indentCol := CountSpaces(line, 0, len(line), 3) + itemPrefixLen

		var item bytes.Buffer
		itemLine, consumed := lineSpan(data[pos:])
		item.Write(itemLine[itemPrefixLen:])
		item.WriteByte('\n')
		pos += consumed

		blanksBefore := 0
		for pos < len(data) {
			ln, c := lineSpan(data[pos:])
			if len(bytes.TrimRight(ln, " \t")) == 0 {
				blanksBefore++
				pos += c
				continue
			}
			if CountSpaces(ln, 0, len(ln), indentCol+8) >= indentCol {
				if blanksBefore > 0 {
					item.WriteByte('\n')
					loose = true
				}
				blanksBefore = 0
				trimmed := ln
				if len(trimmed) >= indentCol {
					trimmed = trimmed[indentCol:]
				} else {
					trimmed = bytes.TrimLeft(trimmed, " \t")
				}
				item.Write(trimmed)
				item.WriteByte('\n')
				pos += c
				continue
			}
			if np, _ := listItemPrefixLen(ln, kind); np > 0 {
				break
			}
			break
		}

		li := ps.push(NodeListItem)
		li.ListFlags = kind
		li.Num = num
		parseBlocks(ps, item.Bytes())
		ps.pop()
	}

	if loose {
		list.ListFlags |= ListBlock
	}
	ps.pop()
	return pos
}

// tryDefinitionList recognizes a definition-list pair: a single-line
// title followed by one or more ":   data" lines, per spec.md §4.7 rule
// 4 and its line-2 trigger requirement (the title line must stand alone;
// the very next line must begin the ":" data marker).
func tryDefinitionList(ps *parserState, data []byte) int {
	titleLine, titleConsumed := lineSpan(data)
	if len(bytes.TrimSpace(titleLine)) == 0 {
		return 0
	}
	if titleConsumed >= len(data) {
		return 0
	}
	dataLine, _ := lineSpan(data[titleConsumed:])
	di := CountSpaces(dataLine, 0, len(dataLine), 3)
	if di >= len(dataLine) || dataLine[di] != ':' {
		return 0
	}

	list := ps.push(NodeList)
	list.ListFlags = ListDefinition

	item := ps.push(NodeListItem)
	item.DefFlags = ListDefinition
	title := ps.push(NodeDefinitionTitle)
	parseInlineInto(ps, bytes.TrimSpace(titleLine))
	ps.pop()
	_ = title
	ps.pop() // item
	pos := titleConsumed

	for pos < len(data) {
		line, consumed := lineSpan(data[pos:])
		i := CountSpaces(line, 0, len(line), 3)
		if i >= len(line) || line[i] != ':' {
			break
		}
		i++
		for i < len(line) && line[i] == ' ' {
			i++
		}
		it := ps.push(NodeListItem)
		it.DefFlags = ListDefinition
		dd := ps.push(NodeDefinitionData)
		parseInlineInto(ps, line[i:])
		ps.pop()
		_ = dd
		ps.pop()
		pos += consumed
	}

	ps.pop() // list
	return pos
}

// isSetextUnderline reports whether line is a setext header underline
// ('=' run for level 1, '-' run for level 2) and returns the level.
func isSetextUnderline(line []byte) (level int, ok bool) {
	trimmed := bytes.TrimRight(line, " \t")
	if len(trimmed) == 0 {
		return 0, false
	}
	c := trimmed[0]
	if c != '=' && c != '-' {
		return 0, false
	}
	for _, b := range trimmed {
		if b != c {
			return 0, false
		}
	}
	if c == '=' {
		return 1, true
	}
	return 2, true
}

// paragraph is the unconditional fallback block recognizer (spec.md §4.7
// rule 12): it absorbs lines until a blank line, an ATX/setext header, an
// hrule, a blockquote marker, or (on its second line only) a definition-
// list title-prefix would begin. A setext underline turns only the last
// absorbed line into a HEADER; any preceding lines still become their own
// PARAGRAPH, per document.c's parse_paragraph split (lines-1 / last line).
func paragraph(ps *parserState, data []byte) int {
	pos := 0
	lineCount := 0
	var text bytes.Buffer
	lastLineStart := 0

	for pos < len(data) {
		line, consumed := lineSpan(data[pos:])

		if lineCount > 0 {
			if len(bytes.TrimRight(line, " \t")) == 0 {
				break
			}
			trimHead := CountSpaces(line, 0, len(line), 3)
			if trimHead < len(line) && line[trimHead] == '#' {
				break
			}
			if level, ok := isSetextUnderline(line); ok {
				full := text.Bytes()
				if lineCount > 1 {
					p := ps.push(NodeParagraph)
					p.Lines = lineCount - 1
					parseInlineInto(ps, bytes.TrimSpace(full[:lastLineStart]))
					ps.pop()
				}
				h := ps.push(NodeHeader)
				h.Level = level
				parseInlineInto(ps, bytes.TrimSpace(full[lastLineStart:]))
				ps.pop()
				return pos + consumed
			}
			if _, ok := isHRuleCandidate(line); ok {
				break
			}
			bi := CountSpaces(line, 0, len(line), 3)
			if bi < len(line) && line[bi] == '>' {
				break
			}
			if lineCount == 1 {
				di := CountSpaces(line, 0, len(line), 3)
				if di < len(line) && line[di] == ':' {
					break
				}
			}
		}

		if lineCount > 0 {
			text.WriteByte('\n')
		}
		lastLineStart = text.Len()
		text.Write(line)
		lineCount++
		pos += consumed
	}

	p := ps.push(NodeParagraph)
	p.Lines = lineCount
	parseInlineInto(ps, bytes.TrimSpace(text.Bytes()))
	ps.pop()
	return pos
}

// isHRuleCandidate is tryHRule's recognition predicate without node
// emission, used by paragraph's continuation-break lookahead.
func isHRuleCandidate(line []byte) (byte, bool) {
	i := CountSpaces(line, 0, len(line), 3)
	if i >= len(line) {
		return 0, false
	}
	c := line[i]
	if c != '-' && c != '_' && c != '*' {
		return 0, false
	}
	count := 0
	for j := i; j < len(line); j++ {
		switch line[j] {
		case c:
			count++
		case ' ', '\t':
		default:
			return 0, false
		}
	}
	return c, count >= 3
}

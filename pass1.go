package lowdown

import (
	"bytes"
	"log/slog"

	"github.com/pkg/errors"
)

// pass1 scans raw input once, per spec.md §4.5: strips a leading UTF-8
// BOM, optionally extracts front matter, then walks the input line by
// line pulling out footnote definitions and link references, copying
// everything else through ExpandTabs into a cleaned text buffer with
// CR/CRLF normalized to a single '\n'. It populates refs with whatever it
// finds and returns the cleaned buffer.
func pass1(p *Parser, refs *refTable, input []byte) ([]byte, error) {
	if cap(input) > 1<<30 {
		return nil, errors.Wrap(newAllocationError("pass1: input implausibly large"), "pass1")
	}

	input = stripBOM(input)

	if p.opts.Extensions&Metadata != 0 && len(input) > 0 && isAlnum(input[0]) {
		consumed := parseMetadataBlock(refs, p.opts.MetadataOverrides, input, p.opts.Logger)
		input = input[consumed:]
	}
	applyMetadataOverrides(refs, p.opts.MetadataOverrides)

	out := NewBuffer(len(input))
	footnotesEnabled := p.opts.Extensions&Footnotes != 0

	i := 0
	for i < len(input) {
		if footnotesEnabled {
			if n := scanFootnoteDef(refs, input[i:]); n > 0 {
				i += n
				continue
			}
		}
		if n := scanLinkRef(refs, input[i:]); n > 0 {
			i += n
			continue
		}

		lineEnd := i
		for lineEnd < len(input) && input[lineEnd] != '\n' && input[lineEnd] != '\r' {
			lineEnd++
		}
		if lineEnd > i {
			ExpandTabs(out, input[i:lineEnd])
		}
		out.AppendByte('\n')

		if lineEnd < len(input) && input[lineEnd] == '\r' {
			lineEnd++
		}
		if lineEnd < len(input) && input[lineEnd] == '\n' {
			lineEnd++
		}
		i = lineEnd
	}

	cleaned := out.Bytes()
	if len(cleaned) == 0 || cleaned[len(cleaned)-1] != '\n' {
		cleaned = append(cleaned, '\n')
	}
	return cleaned, nil
}

// normalizeText re-runs the line-cleaning half of pass1 (tab expansion,
// CR/CRLF normalization, guaranteed trailing newline) over a byte slice
// that was pulled out of raw input by scanFootnoteDef before the main
// pass1 loop reached it, and therefore never went through ExpandTabs.
// doc.go calls this on FootnoteRef.Contents immediately before handing
// them to parseBlocks.
func normalizeText(input []byte) []byte {
	out := NewBuffer(len(input))
	i := 0
	for i < len(input) {
		lineEnd := i
		for lineEnd < len(input) && input[lineEnd] != '\n' && input[lineEnd] != '\r' {
			lineEnd++
		}
		if lineEnd > i {
			ExpandTabs(out, input[i:lineEnd])
		}
		out.AppendByte('\n')
		if lineEnd < len(input) && input[lineEnd] == '\r' {
			lineEnd++
		}
		if lineEnd < len(input) && input[lineEnd] == '\n' {
			lineEnd++
		}
		i = lineEnd
	}
	cleaned := out.Bytes()
	if len(cleaned) == 0 || cleaned[len(cleaned)-1] != '\n' {
		cleaned = append(cleaned, '\n')
	}
	return cleaned
}

// stripBOM removes a leading UTF-8 byte-order mark (EF BB BF) only — never
// a general multi-encoding BOM, matching document.c's explicit 3-byte
// check (see SPEC_FULL.md's supplemented-features list).
func stripBOM(input []byte) []byte {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		return input[3:]
	}
	return input
}

// parseMetadataBlock attempts to parse the leading paragraph (terminated
// by a blank line) as front matter of the form "key: value", per
// spec.md §4.5. Continuation lines either begin with a space/tab or
// contain no unescaped colon before their newline. Returns the number of
// input bytes consumed (0 if no metadata paragraph was found, in which
// case nothing is registered).
func parseMetadataBlock(refs *refTable, overrides map[string]string, input []byte, logger *slog.Logger) int {
	end := 0
	for end < len(input) {
		lineStart := end
		lineEnd := end
		for lineEnd < len(input) && input[lineEnd] != '\n' {
			lineEnd++
		}
		line := input[lineStart:lineEnd]
		if len(bytes.TrimSpace(line)) == 0 {
			end = lineEnd
			if end < len(input) {
				end++ // consume the blank line itself
			}
			break
		}
		end = lineEnd
		if end < len(input) {
			end++
		}
	}
	if end == 0 {
		return 0
	}

	block := input[:end]
	var key, value []byte
	found := false
	flush := func() {
		if key != nil {
			found = true
			k := string(bytes.TrimSpace(key))
			if refs.addMeta(k, string(bytes.TrimSpace(value))) && logger != nil {
				logger.Debug("metadata key collision after normalization", "key", k)
			}
		}
		key, value = nil, nil
	}

	pos := 0
	for pos < len(block) {
		lineStart := pos
		lineEnd := pos
		for lineEnd < len(block) && block[lineEnd] != '\n' {
			lineEnd++
		}
		line := block[lineStart:lineEnd]
		pos = lineEnd
		if pos < len(block) {
			pos++
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		isContinuation := false
		if key != nil && len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			isContinuation = true
		} else if key != nil && !hasUnescapedColon(line) {
			isContinuation = true
		}

		if isContinuation {
			value = append(value, '\n')
			value = append(value, bytes.TrimLeft(line, " \t")...)
			continue
		}

		flush()
		if idx := unescapedColonIndex(line); idx >= 0 {
			key = append([]byte(nil), bytes.TrimSpace(line[:idx])...)
			value = append([]byte(nil), bytes.TrimSpace(line[idx+1:])...)
		} else {
			key = nil
		}
	}
	flush()
	if !found {
		return 0
	}

	return end
}

func hasUnescapedColon(line []byte) bool {
	return unescapedColonIndex(line) >= 0
}

func unescapedColonIndex(line []byte) int {
	for i := 0; i < len(line); i++ {
		if line[i] == ':' && !IsEscaped(line, i) {
			return i
		}
	}
	return -1
}

// applyMetadataOverrides implements spec.md §4.5's "command-line-supplied
// metadata overrides keys already present; metadata not overridden is
// appended to the tail" — exactly refTable.addMeta's replace-or-append
// behavior, applied after the document's own front matter has registered.
func applyMetadataOverrides(refs *refTable, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	for k, v := range overrides {
		refs.overrideMeta(k, v)
	}
}

// scanFootnoteDef recognizes a line of the form "[^name]: contents…",
// consuming continuation lines indented by at least one space, per
// spec.md §4.5. Returns the number of bytes consumed, or 0 if data does
// not begin with a footnote definition.
func scanFootnoteDef(refs *refTable, data []byte) int {
	i := CountSpaces(data, 0, len(data), 3)
	if i >= len(data) || data[i] != '[' || i+1 >= len(data) || data[i+1] != '^' {
		return 0
	}
	i += 2
	nameStart := i
	for i < len(data) && data[i] != ']' && data[i] != '\n' {
		i++
	}
	if i >= len(data) || data[i] != ']' {
		return 0
	}
	nameEnd := i
	i++
	if i >= len(data) || data[i] != ':' {
		return 0
	}
	i++
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}

	name := string(data[nameStart:nameEnd])
	contentStart := i
	lineEnd := i
	for lineEnd < len(data) && data[lineEnd] != '\n' {
		lineEnd++
	}
	var content bytes.Buffer
	content.Write(data[contentStart:lineEnd])
	consumed := lineEnd
	if consumed < len(data) {
		consumed++
	}

	for consumed < len(data) {
		lineStart := consumed
		le := lineStart
		for le < len(data) && data[le] != '\n' {
			le++
		}
		line := data[lineStart:le]
		if len(bytes.TrimSpace(line)) == 0 {
			break
		}
		if line[0] != ' ' && line[0] != '\t' {
			break
		}
		content.WriteByte('\n')
		content.Write(bytes.TrimLeft(line, " \t"))
		consumed = le
		if consumed < len(data) {
			consumed++
		}
	}

	refs.addFootnote(name, content.Bytes())
	return consumed
}

// scanLinkRef recognizes a line of the form `[name]: link "title"`,
// per spec.md §4.5, with up to 3 leading spaces and an optional quoted
// or parenthesized title. Returns the number of bytes consumed, 0 if data
// does not begin with a reference definition.
func scanLinkRef(refs *refTable, data []byte) int {
	i := CountSpaces(data, 0, len(data), 3)
	if i >= len(data) || data[i] != '[' {
		return 0
	}
	i++
	nameStart := i
	for i < len(data) && data[i] != '\n' && data[i] != ']' {
		i++
	}
	if i >= len(data) || data[i] != ']' {
		return 0
	}
	nameEnd := i
	i++
	if i >= len(data) || data[i] != ':' {
		return 0
	}
	i++
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i < len(data) && data[i] == '\n' {
		i++
		for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
			i++
		}
	}
	if i >= len(data) {
		return 0
	}

	angle := false
	if data[i] == '<' {
		angle = true
		i++
	}
	linkStart := i
	for i < len(data) && !isWhitespaceByte(data[i]) {
		if angle && data[i] == '>' {
			break
		}
		i++
	}
	linkEnd := i
	if angle && i < len(data) && data[i] == '>' {
		i++
	}

	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}

	titleStart, titleEnd := 0, 0
	if i < len(data) && (data[i] == '"' || data[i] == '\'' || data[i] == '(') {
		closer := byte('"')
		switch data[i] {
		case '\'':
			closer = '\''
		case '(':
			closer = ')'
		}
		i++
		titleStart = i
		for i < len(data) && data[i] != closer && data[i] != '\n' {
			i++
		}
		titleEnd = i
		if i < len(data) && data[i] == closer {
			i++
		}
	}

	// rest of line must be blank
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i < len(data) && data[i] != '\n' {
		return 0
	}
	consumed := i
	if consumed < len(data) {
		consumed++ // the newline
	}

	name := string(data[nameStart:nameEnd])
	link := string(data[linkStart:linkEnd])
	title := ""
	if titleEnd > titleStart {
		title = string(data[titleStart:titleEnd])
	}
	refs.addLink(name, link, title)
	return consumed
}

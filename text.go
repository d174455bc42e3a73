package lowdown

import (
	"golang.org/x/text/width"
)

// CountSpaces returns the number of ASCII space bytes starting at off,
// bounded by cap (0 meaning unbounded), never reading past end. Grounded
// on the leading-space-counting idiom used throughout document.c's block
// recognizers and ragodev-blackfriday's isReference spacer loops.
func CountSpaces(data []byte, off, end, capN int) int {
	n := 0
	for off+n < end && data[off+n] == ' ' {
		if capN > 0 && n >= capN {
			break
		}
		n++
	}
	return n
}

// IsSpace reports whether c is a space or a newline. Tabs and carriage
// returns are eliminated earlier in the pipeline (ExpandTabs, Pass-1's
// CRLF normalization) so by the time inline/block code asks this
// question only these two remain live candidates, per spec.md §4.2.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\n'
}

// isWhitespaceByte is the wider whitespace test (space, tab, newline, CR,
// form feed, vertical tab). pass1 uses it on raw input, where tabs and CR
// are still present; the block, inline and autolink code use it too.
func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isAlnum mirrors ragodev-blackfriday's isalnum: ASCII alphanumeric only.
func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

const tabSize = 4

// ExpandTabs copies src into dst, expanding each tab to the next multiple
// of tabSize columns. Bytes whose top two bits are "10" are UTF-8
// continuation bytes and do not advance the column counter, matching
// spec.md §4.2 and ragodev-blackfriday's expandTabs (which only special-
// cases this in its "slowcase" rune-counting branch; the fast path below
// mirrors its no-tabs/leading-tabs-only shortcut).
func ExpandTabs(dst *Buffer, src []byte) {
	i, prefix := 0, 0
	slow := false
	for i = 0; i < len(src); i++ {
		if src[i] == '\t' {
			if prefix == i {
				prefix++
			} else {
				slow = true
				break
			}
		}
	}
	if !slow {
		for i = 0; i < prefix*tabSize; i++ {
			dst.AppendByte(' ')
		}
		dst.Append(src[prefix:])
		return
	}

	column := 0
	i = 0
	for i < len(src) {
		start := i
		for i < len(src) && src[i] != '\t' {
			if src[i]&0xc0 != 0x80 {
				column++
			}
			i++
		}
		if i > start {
			dst.Append(src[start:i])
		}
		if i >= len(src) {
			break
		}
		for {
			dst.AppendByte(' ')
			column++
			if column%tabSize == 0 {
				break
			}
		}
		i++
	}
}

// ReplaceSpacing copies src into dst, replacing each '\n' with a single
// space and collapsing a preceding space so "a \nb" becomes "a b" rather
// than "a  b". Used to space-normalize link/footnote reference ids built
// from multi-line bracket text (spec.md §4.2, §4.6 "space-normalized
// text").
func ReplaceSpacing(dst *Buffer, src []byte) {
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			if dst.Len() > 0 && dst.Bytes()[dst.Len()-1] == ' ' {
				continue
			}
			dst.AppendByte(' ')
			continue
		}
		dst.AppendByte(c)
	}
}

// UnescapeText copies src into dst, treating each backslash as an escape
// that emits the following byte verbatim (spec.md §4.2).
func UnescapeText(dst *Buffer, src []byte) {
	for i := 0; i < len(src); i++ {
		if src[i] == '\\' && i+1 < len(src) {
			i++
			dst.AppendByte(src[i])
			continue
		}
		dst.AppendByte(src[i])
	}
}

// IsEscaped counts the backslashes immediately preceding pos and reports
// whether that count is odd, i.e. whether the byte at pos is itself
// escaped. Carried verbatim (in spirit) from document.c's is_escaped and
// used by Pass-1 (to avoid treating an escaped colon as a metadata
// terminator) and by table-cell splitting (see SPEC_FULL.md §8).
func IsEscaped(data []byte, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && data[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// foldRefName normalizes a link-reference or footnote name before it is
// used as a lookup key, folding fullwidth ASCII variants (U+FF01-U+FF5E)
// down to their halfwidth equivalents via golang.org/x/text/width. This
// runs identically on both the storing and the querying side, so it can
// only unify visually-identical fullwidth/halfwidth spellings into one
// byte-exact key — it never touches case, so the case-sensitive,
// byte-exact comparison spec.md §4.4 requires is preserved (see
// DESIGN.md's Open Question decision on this).
func foldRefName(name string) string {
	return width.Narrow.String(name)
}

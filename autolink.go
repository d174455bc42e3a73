package lowdown

import "bytes"

// autolink schemes recognized at a ':' active character, per spec.md §4.3
// and document.c's char_autolink_url (which scans backwards from the
// colon for a known scheme word).
var autolinkSchemes = [][]byte{
	[]byte("http"),
	[]byte("https"),
	[]byte("ftp"),
	[]byte("ftps"),
	[]byte("mailto"),
	[]byte("gopher"),
	[]byte("nntp"),
	[]byte("news"),
	[]byte("telnet"),
	[]byte("file"),
}

// autolinkURL recognizes a scheme-prefixed URL autolink anchored at the
// ':' active character text[pos]. It returns matchLen, the number of
// bytes starting at pos (i.e. the ':' and everything after it) the
// autolink claims, and rewind, the number of bytes immediately before pos
// that belong to the scheme word and must be retracted from the
// preceding NORMAL_TEXT node, per spec.md §4.3. matchLen is 0 if no
// autolink is recognized.
func autolinkURL(text []byte, pos int) (matchLen, rewind int) {
	if pos >= len(text) || text[pos] != ':' {
		return 0, 0
	}
	var scheme []byte
	for _, s := range autolinkSchemes {
		if pos >= len(s) && bytes.EqualFold(text[pos-len(s):pos], s) {
			if pos-len(s) == 0 || !isAlnum(text[pos-len(s)-1]) {
				scheme = s
				break
			}
		}
	}
	if scheme == nil {
		return 0, 0
	}

	data := text[pos:]
	i := 1 // past ':'
	for i < len(data) && data[i] == '/' {
		i++
	}
	start := i
	for i < len(data) {
		c := data[i]
		if isWhitespaceByte(c) || c == '<' || c == '>' {
			break
		}
		i++
	}
	end := i
	for end > start && isTrailingAutolinkPunct(data[end-1]) {
		end--
	}
	if end == start {
		return 0, 0
	}
	return end, len(scheme)
}

func isTrailingAutolinkPunct(c byte) bool {
	switch c {
	case '.', ',', ';', ':', '!', '?', '\'', '"', ')':
		return true
	}
	return false
}

// autolinkEmail recognizes a "local@domain" email autolink anchored at
// the '@' active character text[pos], rewinding into the preceding
// NORMAL_TEXT for the local part, per spec.md §4.3.
func autolinkEmail(text []byte, pos int) (matchLen, rewind int) {
	if pos >= len(text) || text[pos] != '@' {
		return 0, 0
	}

	localStart := pos
	for localStart > 0 && isEmailLocalByte(text[localStart-1]) {
		localStart--
	}
	if localStart == pos {
		return 0, 0
	}

	data := text[pos:]
	i := 1
	domainStart := i
	sawDot := false
	for i < len(data) && isEmailDomainByte(data[i]) {
		if data[i] == '.' {
			sawDot = true
		}
		i++
	}
	if i == domainStart || !sawDot {
		return 0, 0
	}
	for i > domainStart && data[i-1] == '.' {
		i--
	}
	return i, pos - localStart
}

func isEmailLocalByte(c byte) bool {
	return isAlnum(c) || c == '.' || c == '+' || c == '-' || c == '_'
}

func isEmailDomainByte(c byte) bool {
	return isAlnum(c) || c == '.' || c == '-'
}

// autolinkWWW recognizes a "www." prefixed autolink starting at
// text[pos]. Callers prepend "http://" when constructing the link node,
// per spec.md §4.3.
func autolinkWWW(text []byte, pos int) (matchLen int) {
	data := text[pos:]
	if len(data) < 4 || !bytes.EqualFold(data[:4], []byte("www.")) {
		return 0
	}
	i := 4
	for i < len(data) {
		c := data[i]
		if isWhitespaceByte(c) || c == '<' || c == '>' {
			break
		}
		i++
	}
	for i > 4 && isTrailingAutolinkPunct(data[i-1]) {
		i--
	}
	if i == 4 {
		return 0
	}
	return i
}

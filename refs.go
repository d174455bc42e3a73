package lowdown

// LinkRef is a reference-style link definition, spec.md §3: { name?, link,
// title? }. Name may be absent, meaning "default" — spec.md §4.5 allows a
// reference-style link whose id is the empty string to serve as the
// implicit target for a collapsed reference built from empty brackets.
type LinkRef struct {
	Name  string
	Link  string
	Title string
}

// FootnoteRef is a footnote definition, spec.md §3: { name?, contents,
// is_used, num }. Num is assigned on first use during inline parsing
// (1-based, order of appearance); IsUsed prevents duplicate enumeration —
// a second reference to the same footnote renders as literal text, a
// deliberate quirk carried from document.c (see DESIGN.md).
type FootnoteRef struct {
	Name     string
	Contents []byte
	IsUsed   bool
	Num      int
}

// MetadataEntry is a single front-matter key/value pair, spec.md §3.
type MetadataEntry struct {
	Key   string
	Value string
}

// refTable is the append-only-during-Pass-1, linear-scan-on-lookup table
// shape spec.md §4.4 calls for: "Append-only during Pass 1; O(n) linear
// scan on lookup... Absence of a name in both sides of a comparison
// matches." A map would break that last rule (two entries both keyed ""
// collapse to one), so a slice + linear scan is kept, exactly mirroring
// ragodev-blackfriday's map[string]*reference being the wrong shape for
// this spec and document.c's linked list of refs being the right one.
type refTable struct {
	links     []LinkRef
	footnotes []FootnoteRef
	meta      []MetadataEntry
}

func newRefTable() *refTable {
	return &refTable{}
}

// addLink appends a parsed link reference, keyed by its byte-exact
// (post-fold, see foldRefName) name.
func (t *refTable) addLink(name, link, title string) {
	t.links = append(t.links, LinkRef{Name: foldRefName(name), Link: link, Title: title})
}

// lookupLink performs the case-sensitive, byte-exact scan spec.md §4.4
// requires, returning the first matching entry (earliest registration
// order), or nil.
func (t *refTable) lookupLink(name string) *LinkRef {
	name = foldRefName(name)
	for i := range t.links {
		if t.links[i].Name == name {
			return &t.links[i]
		}
	}
	return nil
}

// addFootnote appends a parsed footnote definition.
func (t *refTable) addFootnote(name string, contents []byte) {
	t.footnotes = append(t.footnotes, FootnoteRef{Name: foldRefName(name), Contents: contents})
}

// lookupFootnote returns the footnote entry for name, allowing the caller
// to mutate IsUsed/Num in place (hence a pointer into the slice).
func (t *refTable) lookupFootnote(name string) *FootnoteRef {
	name = foldRefName(name)
	for i := range t.footnotes {
		if t.footnotes[i].Name == name {
			return &t.footnotes[i]
		}
	}
	return nil
}

// addMeta appends a metadata pair, normalizing the key per spec.md §3:
// ASCII letters/digits/-/_ lowercased and retained, whitespace dropped,
// anything else replaced with '?'. Entries are appended in registration
// order; canonical reordering (title first) happens at emission time,
// when doc.go calls orderedMeta, a stable partition keyed only on "is
// this title" (see SPEC_FULL.md §8), so overridden keys keep their
// position unless they are title.
// addMeta reports whether key collided with an already-registered entry
// (after normalization), so callers can log the collision per spec.md §7.
func (t *refTable) addMeta(key, value string) bool {
	nk := normalizeMetaKey(key)
	for i := range t.meta {
		if t.meta[i].Key == nk {
			t.meta[i].Value = value
			return true
		}
	}
	t.meta = append(t.meta, MetadataEntry{Key: nk, Value: value})
	return false
}

// overrideMeta behaves like addMeta but is used for caller-supplied
// overrides (spec.md §4.5: "Command-line-supplied metadata overrides keys
// already present; metadata not overridden is appended to the tail").
// Because addMeta already replaces an existing key in place and appends
// otherwise, override and normal registration share one code path; this
// method exists to make caller intent explicit at call sites in pass1.go.
func (t *refTable) overrideMeta(key, value string) {
	t.addMeta(key, value)
}

func normalizeMetaKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c-'A'+'a')
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_':
			out = append(out, c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			// dropped
		default:
			out = append(out, '?')
		}
	}
	return string(out)
}

// orderedMeta returns the table's entries with any "title"-keyed entry
// moved to the front, stable otherwise — spec.md §3's "canonical ordering
// places any entry keyed title first".
func (t *refTable) orderedMeta() []MetadataEntry {
	out := make([]MetadataEntry, len(t.meta))
	copy(out, t.meta)
	// stable partition: title entries first, in original relative order,
	// then everything else in original relative order.
	result := make([]MetadataEntry, 0, len(out))
	for _, e := range out {
		if e.Key == "title" {
			result = append(result, e)
		}
	}
	for _, e := range out {
		if e.Key != "title" {
			result = append(result, e)
		}
	}
	return result
}

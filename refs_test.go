package lowdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefTableLinkLookupCaseSensitive(t *testing.T) {
	tbl := newRefTable()
	tbl.addLink("Foo", "http://example.com", "a title")

	found := tbl.lookupLink("Foo")
	require.NotNil(t, found)
	assert.Equal(t, "http://example.com", found.Link)

	assert.Nil(t, tbl.lookupLink("foo"))
}

func TestRefTableEmptyNameMatchesEmptyName(t *testing.T) {
	tbl := newRefTable()
	tbl.addLink("", "http://default.example", "")
	found := tbl.lookupLink("")
	require.NotNil(t, found)
	assert.Equal(t, "http://default.example", found.Link)
}

func TestRefTableFootnoteUsage(t *testing.T) {
	tbl := newRefTable()
	tbl.addFootnote("note", []byte("some text"))
	fn := tbl.lookupFootnote("note")
	require.NotNil(t, fn)
	assert.False(t, fn.IsUsed)
	fn.IsUsed = true
	assert.True(t, tbl.lookupFootnote("note").IsUsed)
}

func TestAddMetaReplacesExistingKey(t *testing.T) {
	tbl := newRefTable()
	tbl.addMeta("Title", "first")
	tbl.addMeta("title", "second")
	require.Len(t, tbl.meta, 1)
	assert.Equal(t, "second", tbl.meta[0].Value)
}

func TestNormalizeMetaKey(t *testing.T) {
	assert.Equal(t, "my-key_1", normalizeMetaKey("My-Key_1"))
	assert.Equal(t, "a?b", normalizeMetaKey("a#b"))
	assert.Equal(t, "ab", normalizeMetaKey("a b"))
}

func TestOrderedMetaPutsTitleFirst(t *testing.T) {
	tbl := newRefTable()
	tbl.addMeta("author", "jane")
	tbl.addMeta("title", "My Doc")
	tbl.addMeta("date", "2026-01-01")

	ordered := tbl.orderedMeta()
	require.Len(t, ordered, 3)
	assert.Equal(t, "title", ordered[0].Key)
	assert.Equal(t, "author", ordered[1].Key)
	assert.Equal(t, "date", ordered[2].Key)
}

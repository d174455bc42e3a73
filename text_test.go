package lowdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSpaces(t *testing.T) {
	cases := []struct {
		name string
		data string
		off  int
		capN int
		want int
	}{
		{"none", "abc", 0, 0, 0},
		{"three unbounded", "   abc", 0, 0, 3},
		{"capped", "     abc", 0, 3, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CountSpaces([]byte(c.data), c.off, len(c.data), c.capN)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestExpandTabsLeadingOnly(t *testing.T) {
	out := NewBuffer(0)
	ExpandTabs(out, []byte("\t\tfoo"))
	assert.True(t, out.EqualString("        foo"))
}

func TestExpandTabsMidline(t *testing.T) {
	out := NewBuffer(0)
	ExpandTabs(out, []byte("ab\tcd"))
	assert.True(t, out.EqualString("ab  cd"))
}

func TestExpandTabsAlignsToColumn(t *testing.T) {
	out := NewBuffer(0)
	ExpandTabs(out, []byte("a\tb"))
	assert.Equal(t, "a   b", string(out.Bytes()))
}

func TestReplaceSpacingCollapsesPrecedingSpace(t *testing.T) {
	out := NewBuffer(0)
	ReplaceSpacing(out, []byte("a \nb"))
	assert.Equal(t, "a b", string(out.Bytes()))
}

func TestReplaceSpacingNoPrecedingSpace(t *testing.T) {
	out := NewBuffer(0)
	ReplaceSpacing(out, []byte("a\nb"))
	assert.Equal(t, "a b", string(out.Bytes()))
}

func TestUnescapeText(t *testing.T) {
	out := NewBuffer(0)
	UnescapeText(out, []byte(`a\*b\\c`))
	assert.Equal(t, `a*b\c`, string(out.Bytes()))
}

func TestIsEscaped(t *testing.T) {
	assert.False(t, IsEscaped([]byte(`a:b`), 1))
	assert.True(t, IsEscaped([]byte(`a\:b`), 2))
	assert.False(t, IsEscaped([]byte(`a\\:b`), 3))
}

func TestFoldRefNameFullwidth(t *testing.T) {
	// U+FF21 FULLWIDTH LATIN CAPITAL LETTER A folds to halfwidth "A".
	assert.Equal(t, "ABC", foldRefName("ＡＢＣ"))
}

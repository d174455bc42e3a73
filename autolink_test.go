package lowdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutolinkURL(t *testing.T) {
	text := []byte("see http://example.com/path.")
	pos := 8 // index of ':' in "http:"
	matchLen, rewind := autolinkURL(text, pos)
	if assert.NotZero(t, matchLen) {
		full := text[pos-rewind : pos+matchLen]
		assert.Equal(t, "http://example.com/path", string(full))
	}
}

func TestAutolinkURLNoScheme(t *testing.T) {
	text := []byte("a ratio of 3:4 works")
	pos := 12 // the ':' in "3:4"
	matchLen, _ := autolinkURL(text, pos)
	assert.Zero(t, matchLen)
}

func TestAutolinkEmail(t *testing.T) {
	text := []byte("contact me at jane.doe@example.com today")
	pos := 22 // index of '@'
	matchLen, rewind := autolinkEmail(text, pos)
	if assert.NotZero(t, matchLen) {
		full := text[pos-rewind : pos+matchLen]
		assert.Equal(t, "jane.doe@example.com", string(full))
	}
}

func TestAutolinkEmailRequiresDotInDomain(t *testing.T) {
	text := []byte("ping root@localhost now")
	pos := 9
	matchLen, _ := autolinkEmail(text, pos)
	assert.Zero(t, matchLen)
}

func TestAutolinkWWW(t *testing.T) {
	text := []byte("visit www.example.com/page for more")
	n := autolinkWWW(text, 6)
	assert.Equal(t, "www.example.com/page", string(text[6:6+n]))
}

func TestAutolinkWWWRequiresPrefix(t *testing.T) {
	n := autolinkWWW([]byte("no prefix here"), 3)
	assert.Zero(t, n)
}

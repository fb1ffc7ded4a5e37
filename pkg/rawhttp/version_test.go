package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHttpVersion_String(t *testing.T) {
	assert.Equal(t, "HTTP/1.0", HTTP10.String())
	assert.Equal(t, "HTTP/1.1", HTTP11.String())
	assert.Equal(t, "HTTP/0.0", HttpVersion{}.String())
}

func TestParseVersion_OnlyExactMatches(t *testing.T) {
	v, ok := parseVersion("HTTP/1.1")
	assert.True(t, ok)
	assert.Equal(t, HTTP11, v)

	v, ok = parseVersion("HTTP/1.0")
	assert.True(t, ok)
	assert.Equal(t, HTTP10, v)

	_, ok = parseVersion("HTTP/1.2")
	assert.False(t, ok)

	_, ok = parseVersion("http/1.1")
	assert.False(t, ok)
}

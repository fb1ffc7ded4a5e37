package rawhttp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpMetadataParser_ParseRequest(t *testing.T) {
	p := NewDefaultParser()
	raw := "GET /widgets HTTP/1.1\r\nHost: example.com\r\nX-Trace: abc\r\n\r\n"

	rl, headers, err := p.ParseRequest(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "GET", rl.Method)
	assert.Equal(t, "/widgets", rl.Uri.RawPath)
	host, ok := headers.First("Host")
	require.True(t, ok)
	assert.Equal(t, "example.com", host)
}

func TestHttpMetadataParser_ParseResponse(t *testing.T) {
	p := NewDefaultParser()
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\n"

	sl, headers, err := p.ParseResponse(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 200, sl.StatusCode)
	cl, ok := headers.First("Content-Length")
	require.True(t, ok)
	assert.Equal(t, "5", cl)
}

func TestHttpMetadataParser_PropagatesRequestLineError(t *testing.T) {
	p := NewHttpMetadataParser(Strict(), nil)
	_, _, err := p.ParseRequest(strings.NewReader("GET /\r\nHost: x\r\n\r\n"))
	require.Error(t, err)
	assert.Equal(t, "Missing HTTP version", err.Error())
}

func TestHttpMetadataParser_OptionsAreStored(t *testing.T) {
	opts := Strict()
	p := NewHttpMetadataParser(opts, nil)
	assert.Equal(t, opts.AllowIllegalStartLineCharacters, p.Options().AllowIllegalStartLineCharacters)
}

func TestNewDefaultParser_UsesDefaultOptions(t *testing.T) {
	p := NewDefaultParser()
	assert.Equal(t, Default(), p.Options())
}

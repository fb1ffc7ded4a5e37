package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAST_RequestRoundTrip(t *testing.T) {
	rl, err := ParseRequestLine("GET /widgets HTTP/1.1", Default())
	require.NoError(t, err)
	headers := (&Builder{}).With("Host", "example.com").Build()
	body := []byte("payload")

	node := ToRequestNode(rl, headers, body)
	gotRl, gotHeaders, gotBody, err := FromRequestNode(node, Default())
	require.NoError(t, err)

	assert.Equal(t, rl.Method, gotRl.Method)
	assert.Equal(t, rl.HttpVersion, gotRl.HttpVersion)
	assert.Equal(t, rl.Uri.RawPath, gotRl.Uri.RawPath)
	assert.Equal(t, body, gotBody)
	host, ok := gotHeaders.First("Host")
	require.True(t, ok)
	assert.Equal(t, "example.com", host)
}

func TestAST_ResponseRoundTrip(t *testing.T) {
	sl := StatusLine{HttpVersion: HTTP11, StatusCode: 404, ReasonPhrase: "Not Found"}
	headers := (&Builder{}).With("Content-Length", "0").Build()

	node := ToResponseNode(sl, headers, nil)
	gotSl, gotHeaders, gotBody, err := FromResponseNode(node)
	require.NoError(t, err)

	assert.Equal(t, sl, gotSl)
	assert.Nil(t, gotBody)
	cl, ok := gotHeaders.First("Content-Length")
	require.True(t, ok)
	assert.Equal(t, "0", cl)
}

func TestAST_RenderRequest(t *testing.T) {
	rl, err := ParseRequestLine("GET / HTTP/1.1", Default())
	require.NoError(t, err)
	headers := (&Builder{}).With("Host", "example.com").Build()

	node := ToRequestNode(rl, headers, []byte("hi"))
	out, err := Render(node, Default())
	require.NoError(t, err)

	assert.Equal(t, "GET / HTTP/1.1\r\nHost: example.com\r\n\r\nhi", string(out))
}

func TestAST_RenderResponse(t *testing.T) {
	sl := StatusLine{HttpVersion: HTTP11, StatusCode: 200, ReasonPhrase: "OK"}
	headers := (&Builder{}).With("Content-Length", "2").Build()

	node := ToResponseNode(sl, headers, []byte("hi"))
	out, err := Render(node, Default())
	require.NoError(t, err)

	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nhi", string(out))
}

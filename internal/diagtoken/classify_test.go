package diagtoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_RequestLineAndHeaders(t *testing.T) {
	data := []byte("GET /api HTTP/1.1\r\nHost: example.com\r\n\r\n")
	tokens, err := Tokenize(data, false)
	require.NoError(t, err)

	require.Equal(t, []string{
		KindMethod, KindSP, KindPath, KindSP, KindVersion, KindCRLF,
		KindHeaderName, KindHeaderColon, KindHeaderValue, KindCRLF,
		KindCRLF, KindEOF,
	}, kinds(tokens))

	assert.Equal(t, "GET", tokens[0].Value)
	assert.Equal(t, "/api", tokens[2].Value)
	assert.Equal(t, "HTTP/1.1", tokens[4].Value)
	assert.Equal(t, "Host", tokens[6].Value)
	assert.Equal(t, "example.com", tokens[8].Value)
}

func TestTokenize_StatusLine(t *testing.T) {
	data := []byte("HTTP/1.1 404 Not Found\r\n\r\n")
	tokens, err := Tokenize(data, false)
	require.NoError(t, err)

	require.Equal(t, []string{
		KindVersion, KindSP, KindStatusCode, KindSP, KindReason, KindCRLF,
		KindCRLF, KindEOF,
	}, kinds(tokens))
	assert.Equal(t, "404", tokens[2].Value)
	assert.Equal(t, "Not Found", tokens[4].Value)
}

func TestTokenize_HeaderValueWithColon(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nLocation: https://example.com/path\r\n\r\n")
	tokens, err := Tokenize(data, false)
	require.NoError(t, err)

	var value string
	for _, tok := range tokens {
		if tok.Kind == KindHeaderValue {
			value = tok.Value
		}
	}
	assert.Equal(t, "https://example.com/path", value)
}

func TestTokenize_BodyFollowsBlankLine(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\nhello")
	tokens, err := Tokenize(data, false)
	require.NoError(t, err)

	last := tokens[len(tokens)-2]
	assert.Equal(t, KindBody, last.Kind)
	assert.Equal(t, "hello", last.Value)
	assert.Equal(t, KindEOF, tokens[len(tokens)-1].Kind)
}

func TestTokenize_NoBodyNoTrailingBodyToken(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\n\r\n")
	tokens, err := Tokenize(data, false)
	require.NoError(t, err)
	assert.Equal(t, KindEOF, tokens[len(tokens)-1].Kind)
	for _, tok := range tokens {
		assert.NotEqual(t, KindBody, tok.Kind)
	}
}

func TestTokenize_BareLFRejectedByDefault(t *testing.T) {
	data := []byte("GET / HTTP/1.1\nHost: x\n\n")
	_, err := Tokenize(data, false)
	assert.ErrorIs(t, err, ErrBareLFNotAllowed)
}

func TestTokenize_BareLFAllowed(t *testing.T) {
	data := []byte("GET / HTTP/1.1\nHost: x\n\n")
	tokens, err := Tokenize(data, true)
	require.NoError(t, err)
	assert.Equal(t, KindEOF, tokens[len(tokens)-1].Kind)
}

func TestTokenize_IllegalSpaceInTargetFoldsIntoPath(t *testing.T) {
	data := []byte("GET /hi there HTTP/1.1\r\n\r\n")
	tokens, err := Tokenize(data, false)
	require.NoError(t, err)

	require.Equal(t, []string{
		KindMethod, KindSP, KindPath, KindSP, KindVersion, KindCRLF, KindCRLF, KindEOF,
	}, kinds(tokens))
	assert.Equal(t, "/hi there", tokens[2].Value)
}

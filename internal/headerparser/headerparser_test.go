package headerparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wirecore/rawhttp/internal/scanner"
)

func plainFail(message string, line int) error {
	return &testErr{message: message, line: line}
}

type testErr struct {
	message string
	line    int
}

func (e *testErr) Error() string { return e.message }

func TestParse_MultiValueSameName(t *testing.T) {
	s := scanner.New(strings.NewReader("X-Color: red\nX-Color: blue\n\n"), true)
	headers, err := Parse(s, 8192, Limits{}, plainFail)
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, "X-Color", headers[0].Name)
	assert.Equal(t, "red", headers[0].Value)
	assert.Equal(t, "X-Color", headers[1].Name)
	assert.Equal(t, "blue", headers[1].Value)
}

func TestParse_EmptyInputYieldsEmptyHeaders(t *testing.T) {
	s := scanner.New(strings.NewReader(""), true)
	headers, err := Parse(s, 8192, Limits{}, plainFail)
	require.NoError(t, err)
	assert.Empty(t, headers)
}

func TestParse_TerminatesAtEmptyLine(t *testing.T) {
	s := scanner.New(strings.NewReader("A: 1\r\n\r\nnot-a-header\r\n"), false)
	headers, err := Parse(s, 8192, Limits{}, plainFail)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "A", headers[0].Name)
	assert.Equal(t, "1", headers[0].Value)
}

func TestParse_TrimsOWS(t *testing.T) {
	s := scanner.New(strings.NewReader("A: \t  value  \t\r\n\r\n"), false)
	headers, err := Parse(s, 8192, Limits{}, plainFail)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "value", headers[0].Value)
}

func TestParse_EmptyValueIsLegal(t *testing.T) {
	s := scanner.New(strings.NewReader("A:\r\n\r\n"), false)
	headers, err := Parse(s, 8192, Limits{}, plainFail)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "", headers[0].Value)
}

func TestParse_InteriorSpaceInNameIsIllegal(t *testing.T) {
	s := scanner.New(strings.NewReader("Foo Bar: x\r\n\r\n"), false)
	_, err := Parse(s, 8192, Limits{}, plainFail)
	require.Error(t, err)
	assert.Equal(t, "Illegal character in HTTP header name", err.Error())
}

func TestParse_NonASCIIInValueIsAllowed(t *testing.T) {
	s := scanner.New(strings.NewReader("A: caf\xe9\r\n\r\n"), false)
	headers, err := Parse(s, 8192, Limits{}, plainFail)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", headers[0].Value)
}

func TestParse_ControlByteInValueIsIllegal(t *testing.T) {
	s := scanner.New(strings.NewReader("A: x\x01y\r\n\r\n"), false)
	_, err := Parse(s, 8192, Limits{}, plainFail)
	require.Error(t, err)
	assert.Equal(t, "Illegal character in HTTP header value", err.Error())
}

func TestParse_NameTooLong(t *testing.T) {
	s := scanner.New(strings.NewReader("Content: OK\r\n\r\n"), false)
	_, err := Parse(s, 8192, Limits{MaxNameLength: 6}, plainFail)
	require.Error(t, err)
	te, ok := err.(*testErr)
	require.True(t, ok)
	assert.Equal(t, "Header name is too long", te.message)
	assert.Equal(t, 1, te.line)
}

func TestParse_ValueTooLong(t *testing.T) {
	s := scanner.New(strings.NewReader("A: abcdef\r\n\r\n"), false)
	_, err := Parse(s, 8192, Limits{MaxValueLength: 3}, plainFail)
	require.Error(t, err)
	assert.Equal(t, "Header value is too long", err.Error())
}

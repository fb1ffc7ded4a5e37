package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUri_IPv6HostAndPort(t *testing.T) {
	u, err := ParseUri("[::8a2e:370:7334]:43")
	require.NoError(t, err)
	assert.Equal(t, "[::8a2e:370:7334]", u.Host)
	assert.Equal(t, 43, u.Port)
	assert.Equal(t, "http", u.Scheme)
}

func TestParseUri_RepairsIllegalPathByte(t *testing.T) {
	u, err := ParseUri("/id/{0x0}?encoded=%2F%2Fexample.com")
	require.NoError(t, err)
	assert.Equal(t, "/id/%7B0x0%7D", u.RawPath)
	assert.Equal(t, "encoded=%2F%2Fexample.com", u.RawQuery)
}

func TestParseUri_Asterisk(t *testing.T) {
	u, err := ParseUri("*")
	require.NoError(t, err)
	assert.Equal(t, "*", u.RawPath)
}

func TestParseUri_AlwaysRepairsEvenThoughNoOptionsParam(t *testing.T) {
	// Unlike parseTarget used inside ParseRequestLine, the standalone
	// ParseUri has no Options parameter and always repairs illegal bytes.
	u, err := ParseUri("/a b")
	require.NoError(t, err)
	assert.Equal(t, "/a%20b", u.RawPath)
}

func TestUri_String_ReconstructsWireForm(t *testing.T) {
	u, err := ParseUri("http://user@example.com:8080/path?q=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://user@example.com:8080/path?q=1#frag", u.String())
}

package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_DefaultIsLenient(t *testing.T) {
	o := Default()
	assert.True(t, o.AllowNewLineWithoutReturn)
	assert.True(t, o.IgnoreLeadingEmptyLine)
	assert.True(t, o.InsertHTTPVersionIfMissing)
	assert.False(t, o.AllowIllegalStartLineCharacters)
}

func TestOptions_StrictDisablesEverything(t *testing.T) {
	o := Strict()
	assert.False(t, o.AllowNewLineWithoutReturn)
	assert.False(t, o.IgnoreLeadingEmptyLine)
	assert.False(t, o.InsertHTTPVersionIfMissing)
	assert.False(t, o.AllowIllegalStartLineCharacters)
}

func TestOptions_FromEnvOverlaysDefault(t *testing.T) {
	t.Setenv("RAWHTTP_ALLOW_NEWLINE_WITHOUT_RETURN", "false")
	t.Setenv("RAWHTTP_MAX_HEADER_NAME_LENGTH", "64")

	o, err := FromEnv("RAWHTTP_")
	require.NoError(t, err)
	assert.False(t, o.AllowNewLineWithoutReturn)
	assert.Equal(t, 64, o.MaxHeaderNameLength)
	assert.True(t, o.IgnoreLeadingEmptyLine)
}

func TestOptions_FromEnvRejectsUnparseableBool(t *testing.T) {
	t.Setenv("RAWHTTP_ALLOW_NEWLINE_WITHOUT_RETURN", "maybe")
	_, err := FromEnv("RAWHTTP_")
	assert.Error(t, err)
}

func TestOptions_FromEnvRejectsUnparseableInt(t *testing.T) {
	t.Setenv("RAWHTTP_MAX_HEADER_NAME_LENGTH", "not-a-number")
	_, err := FromEnv("RAWHTTP_")
	assert.Error(t, err)
}

package rawhttp

import (
	"github.com/wirecore/rawhttp/internal/diagtoken"
)

// Token is one lexical element of a tokenized HTTP message, exposed for
// diagnostic tooling such as pretty-printers or structural diffing. It is
// not consulted by ParseRequestLine, ParseHeaders or any other parsing
// entry point in this package — those remain the source of truth for
// whether a message is valid.
type Token struct {
	Kind  string
	Value string
}

// Token kind constants, mirrored from internal/diagtoken so callers never
// need to import that package directly.
const (
	TokenMethod     = diagtoken.KindMethod
	TokenPath       = diagtoken.KindPath
	TokenVersion    = diagtoken.KindVersion
	TokenStatusCode = diagtoken.KindStatusCode
	TokenReason     = diagtoken.KindReason
	TokenHeaderName = diagtoken.KindHeaderName
	TokenColon      = diagtoken.KindHeaderColon
	TokenValue      = diagtoken.KindHeaderValue
	TokenSP         = diagtoken.KindSP
	TokenCRLF       = diagtoken.KindCRLF
	TokenBody       = diagtoken.KindBody
	TokenEOF        = diagtoken.KindEOF
)

// Tokenize scans data into a flat token stream covering its start-line,
// headers, the header-terminating blank line, and a trailing Body token for
// anything left over. opts.AllowNewLineWithoutReturn governs whether a bare
// LF blank-line separator is accepted or rejected with an error; unlike
// ParseRequest/ParseResponse, bare LFs inside the metadata section split
// lines whatever the switch says.
func Tokenize(data []byte, opts Options) ([]Token, error) {
	raw, err := diagtoken.Tokenize(data, opts.AllowNewLineWithoutReturn)
	if err != nil {
		return nil, newInvalidRequest(err.Error(), 0)
	}
	tokens := make([]Token, len(raw))
	for i, t := range raw {
		tokens[i] = Token{Kind: t.Kind, Value: t.Value}
	}
	return tokens, nil
}

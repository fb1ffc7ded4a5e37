// Package diagtoken tokenizes HTTP/1.x messages into a flat token stream for
// diagnostic tooling (pretty-printers, structural diffing). It walks the
// metadata section line by line, classifying each line's fields directly by
// position, rather than running a generic lexer and reclassifying its
// output afterward. Tokenize is reachable from rawhttp.Tokenize, and its
// leniency is driven by Options rather than being hardcoded permissive.
package diagtoken

// Token kind constants. HTTP is line-oriented, so tokens represent logical
// elements of a start-line, header lines, and structure rather than a
// generic lexical grammar.
const (
	KindMethod     = "Method"
	KindPath       = "Path"
	KindVersion    = "Version"
	KindStatusCode = "StatusCode"
	KindReason     = "Reason"

	KindHeaderName  = "HeaderName"
	KindHeaderColon = "HeaderColon"
	KindHeaderValue = "HeaderValue"

	KindSP   = "SP"
	KindCRLF = "CRLF"

	KindBody = "Body"

	KindEOF = "EOF"
)

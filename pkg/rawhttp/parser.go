package rawhttp

import (
	"io"
	"log/slog"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/wirecore/rawhttp/internal/scanner"
)

// HttpMetadataParser parses HTTP/1.x start-lines and headers under a fixed
// Options value. It carries no mutable state beyond Options, so a single
// instance may be shared across goroutines provided each call supplies its
// own byte source.
type HttpMetadataParser struct {
	opts Options
}

// NewHttpMetadataParser builds a parser from opts, attaching logger (nil
// falls back to slog.Default() at log time).
func NewHttpMetadataParser(opts Options, logger *slog.Logger) *HttpMetadataParser {
	opts.Logger = logger
	return &HttpMetadataParser{opts: opts}
}

// NewDefaultParser returns a parser configured with Default().
func NewDefaultParser() *HttpMetadataParser {
	return &HttpMetadataParser{opts: Default()}
}

// Options returns the parser's configuration.
func (p *HttpMetadataParser) Options() Options {
	return p.opts
}

// ParseRequestLine parses a single request-line string.
func (p *HttpMetadataParser) ParseRequestLine(line string) (RequestLine, error) {
	rl, err := ParseRequestLine(line, p.opts)
	if err != nil {
		p.logFailure("request-line", err)
		return RequestLine{}, err
	}
	return rl, nil
}

// ParseResponseLine parses a single status-line string.
func (p *HttpMetadataParser) ParseResponseLine(line string) (StatusLine, error) {
	sl, err := ParseResponseLine(line, p.opts)
	if err != nil {
		p.logFailure("status-line", err)
		return StatusLine{}, err
	}
	return sl, nil
}

// ParseRequest reads a full request-line plus headers off r.
func (p *HttpMetadataParser) ParseRequest(r io.Reader) (RequestLine, RawHttpHeaders, error) {
	s := scanner.New(r, p.opts.AllowNewLineWithoutReturn)

	rl, err := ParseRequestLineFromScanner(s, p.opts)
	if err != nil {
		p.logFailure("request-line", err)
		return RequestLine{}, RawHttpHeaders{}, err
	}

	headers, err := ParseHeaders(s, p.opts, DefaultHeaderError)
	if err != nil {
		p.logFailure("headers", err)
		return RequestLine{}, RawHttpHeaders{}, err
	}

	return rl, headers, nil
}

// ParseResponse reads a full status-line plus headers off r.
func (p *HttpMetadataParser) ParseResponse(r io.Reader) (StatusLine, RawHttpHeaders, error) {
	s := scanner.New(r, p.opts.AllowNewLineWithoutReturn)

	sl, err := ParseResponseLineFromScanner(s, p.opts)
	if err != nil {
		p.logFailure("status-line", err)
		return StatusLine{}, RawHttpHeaders{}, err
	}

	headers, err := ParseHeaders(s, p.opts, DefaultHeaderError)
	if err != nil {
		p.logFailure("headers", err)
		return StatusLine{}, RawHttpHeaders{}, err
	}

	return sl, headers, nil
}

// Tokenize scans data into a diagnostic token stream under the parser's
// configured line-ending leniency.
func (p *HttpMetadataParser) Tokenize(data []byte) ([]Token, error) {
	return Tokenize(data, p.opts)
}

// ToRequestNode converts rl/headers/body into a generic ast.SchemaNode.
func (p *HttpMetadataParser) ToRequestNode(rl RequestLine, headers RawHttpHeaders, body []byte) ast.SchemaNode {
	return ToRequestNode(rl, headers, body)
}

func (p *HttpMetadataParser) logFailure(component string, err error) {
	logger := p.opts.logger()
	line := 0
	switch e := err.(type) {
	case *InvalidHttpRequest:
		line = e.Line
	case *InvalidHttpHeader:
		line = e.Line
	}
	logger.Debug("rawhttp: rejected message", "component", component, "line", line, "message", err.Error())
}

package rawhttp

import (
	"github.com/wirecore/rawhttp/internal/headerparser"
	"github.com/wirecore/rawhttp/internal/scanner"
)

// ErrorFactory builds a caller-chosen error from a message and 1-based line
// number — the injection point that lets ParseHeaders raise either an
// InvalidHttpRequest or an InvalidHttpHeader from the same routine (see the
// "error factory for header parsing" design note).
type ErrorFactory func(message string, line int) error

// ParseHeaders reads header field-lines off byteSource until an empty line
// or EOF, producing a frozen RawHttpHeaders. errorFactory is invoked for any
// parse failure; if opts.HeaderValidator is set, it runs against the
// complete header set afterward and its error (if any) propagates via
// errorFactory unchanged in message, tagged with line 0 (post-parse).
func ParseHeaders(byteSource *scanner.ByteScanner, opts Options, errorFactory ErrorFactory) (RawHttpHeaders, error) {
	limits := headerparser.Limits{
		MaxNameLength:  opts.MaxHeaderNameLength,
		MaxValueLength: opts.MaxHeaderValueLength,
	}
	// The scanner's own raw-line cap is independent of the name/value caps:
	// a 0 value on either means that side is unbounded, not "contributes 0
	// bytes", so only tighten the line cap when both sides are bounded.
	maxLine := maxHeaderLength
	if opts.MaxHeaderNameLength > 0 && opts.MaxHeaderValueLength > 0 {
		maxLine = opts.MaxHeaderNameLength + opts.MaxHeaderValueLength + 2
	}

	raw, err := headerparser.Parse(byteSource, maxLine, limits, headerparser.ErrorFactory(errorFactory))
	if err != nil {
		return RawHttpHeaders{}, err
	}

	b := &Builder{}
	for _, h := range raw {
		b.With(h.Name, h.Value)
	}
	headers := b.Build()

	if opts.HeaderValidator != nil {
		if verr := opts.HeaderValidator(headers); verr != nil {
			return RawHttpHeaders{}, errorFactory(verr.Error(), 0)
		}
	}

	return headers, nil
}

// DefaultHeaderError builds an InvalidHttpHeader, the error family header
// parsing normally raises on its own (outside a request-line context).
func DefaultHeaderError(message string, line int) error {
	return newInvalidHeader(message, line)
}

// Package headerparser parses HTTP/1.x header field-lines off a
// scanner.ByteScanner into ordered name/value pairs, the same line-at-a-time
// shape as the teacher's fastparser.parseHeaders, generalized to a streaming
// ByteScanner source and parameterized character classes/length caps instead
// of hardcoded ones.
package headerparser

import (
	"errors"

	"github.com/wirecore/rawhttp/internal/scanner"
)

// ErrorFactory builds the caller's error type from a message and 1-based
// line number. The header parser itself raises no concrete error type; it
// always goes through this indirection so the same routine can be reused to
// raise either an InvalidHttpRequest or an InvalidHttpHeader (see spec §9's
// error-factory design note).
type ErrorFactory func(message string, line int) error

// Header is a single parsed name/value pair, in source order.
type Header struct {
	Name  string
	Value string
}

// Limits bounds the name/value byte lengths accepted by Parse.
type Limits struct {
	MaxNameLength  int
	MaxValueLength int
}

// Parse reads header field-lines from s until an empty line or EOF,
// returning them in source order. maxLineLen bounds each raw line read from
// s (name + colon + value, pre-split); it is independent of the name/value
// length caps in limits, which apply to the split name and trimmed value.
func Parse(s *scanner.ByteScanner, maxLineLen int, limits Limits, fail ErrorFactory) ([]Header, error) {
	var headers []Header

	for {
		line, err := s.ReadLine(maxLineLen)
		if err != nil {
			if errors.Is(err, scanner.ErrNoContent) {
				return headers, nil
			}
			return nil, fail(err.Error(), s.Line())
		}
		if len(line) == 0 {
			return headers, nil
		}

		h, err := parseLine(line, limits, fail, s.Line()-1)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
}

// parseLine splits one field-line into name/value and validates both
// against their character classes and length caps. lineNo is the 1-based line
// number the raw bytes came from (the scanner has already advanced past it
// by the time this runs).
func parseLine(line []byte, limits Limits, fail ErrorFactory, lineNo int) (Header, error) {
	colon := -1
	for i, b := range line {
		if b == ':' {
			colon = i
			break
		}
		if !isTChar(b) {
			return Header{}, fail("Illegal character in HTTP header name", lineNo)
		}
	}
	if colon < 0 {
		return Header{}, fail("Illegal character in HTTP header name", lineNo)
	}

	name := string(line[:colon])
	if len(name) == 0 {
		return Header{}, fail("Illegal character in HTTP header name", lineNo)
	}
	if limits.MaxNameLength > 0 && len(name) > limits.MaxNameLength {
		return Header{}, fail("Header name is too long", lineNo)
	}

	rawValue := line[colon+1:]
	value := trimOWS(rawValue)
	for _, b := range value {
		if !isValueByte(b) {
			return Header{}, fail("Illegal character in HTTP header value", lineNo)
		}
	}
	if limits.MaxValueLength > 0 && len(value) > limits.MaxValueLength {
		return Header{}, fail("Header value is too long", lineNo)
	}

	return Header{Name: name, Value: string(value)}, nil
}

// trimOWS trims leading/trailing SP and HTAB (optional whitespace per RFC
// 7230), not full Unicode whitespace — OWS is SP/HTAB only.
func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

// isTChar reports whether b is a valid RFC 7230 tchar: the header-name
// and method character class.
func isTChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// isValueByte reports whether b is legal in a header value: ISO-8859-1,
// excluding C0 controls (other than TAB) and DEL.
func isValueByte(b byte) bool {
	if b == 0x09 {
		return true
	}
	if b <= 0x1F {
		return false
	}
	if b == 0x7F {
		return false
	}
	return true
}

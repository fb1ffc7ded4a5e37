// Package rawhttp parses HTTP/1.x start-lines, headers and request-targets
// directly off a byte stream, with configurable fidelity to RFC 7230/7231.
// It favors byte-level faithfulness over high-level client/server ergonomics:
// callers own the socket, TLS, and body framing; this package turns bytes
// into a structured RequestLine/StatusLine, RawHttpHeaders, and Uri.
package rawhttp

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// maxHeaderLength is the sentinel "unbounded" default for the two header
// length caps, matching a signed 32-bit max so hosts sharing config across
// languages get an identical default.
const maxHeaderLength = math.MaxInt32

// HeaderValidator runs once, after all header lines are parsed, against the
// frozen header set. A non-nil return aborts parsing; ParseHeaders passes the
// error's message, unchanged, to its ErrorFactory with line 0.
type HeaderValidator func(headers RawHttpHeaders) error

// Options is an immutable bundle of parser leniency switches. The zero value
// is not a valid Options; use Default or a struct literal built from it.
type Options struct {
	// AllowNewLineWithoutReturn accepts a bare LF as a line terminator
	// alongside CRLF.
	AllowNewLineWithoutReturn bool
	// IgnoreLeadingEmptyLine discards one empty line read before the
	// start-line (some clients prepend a stray CRLF per RFC 7230 §3.5).
	IgnoreLeadingEmptyLine bool
	// InsertHTTPVersionIfMissing defaults a two-token request-line to
	// HTTP/1.1 instead of failing with "Missing HTTP version".
	InsertHTTPVersionIfMissing bool
	// AllowIllegalStartLineCharacters percent-encodes otherwise-illegal
	// bytes in the request-target (including raw spaces) instead of
	// rejecting them.
	AllowIllegalStartLineCharacters bool
	// MaxHeaderNameLength bounds header-name bytes. Zero means unbounded.
	MaxHeaderNameLength int
	// MaxHeaderValueLength bounds header-value bytes. Zero means unbounded.
	MaxHeaderValueLength int
	// HeaderValidator, if set, runs against the complete header set after
	// parsing; the message of any error it returns reaches the caller
	// unchanged, wrapped by ParseHeaders' ErrorFactory with line 0.
	HeaderValidator HeaderValidator
	// Logger receives a debug-level event for every rejected message
	// (component, line, message — never raw header bytes). Nil falls back
	// to slog.Default().
	Logger *slog.Logger
}

// Default returns the lenient configuration RFC 7230 implementations
// typically ship with: bare-LF tolerant, leading-blank-line tolerant,
// version-inferring, but still rejecting illegal start-line bytes.
func Default() Options {
	return Options{
		AllowNewLineWithoutReturn:       true,
		IgnoreLeadingEmptyLine:          true,
		InsertHTTPVersionIfMissing:      true,
		AllowIllegalStartLineCharacters: false,
		MaxHeaderNameLength:             maxHeaderLength,
		MaxHeaderValueLength:            maxHeaderLength,
	}
}

// Strict returns a configuration with every leniency switch off, useful for
// conformance testing against RFC 7230 to the letter.
func Strict() Options {
	return Options{
		AllowNewLineWithoutReturn:       false,
		IgnoreLeadingEmptyLine:          false,
		InsertHTTPVersionIfMissing:      false,
		AllowIllegalStartLineCharacters: false,
		MaxHeaderNameLength:             maxHeaderLength,
		MaxHeaderValueLength:            maxHeaderLength,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// FromEnv builds an Options by overlaying Default with boolean and integer
// environment variables under prefix, in the style of the pack's own
// environment-driven config loaders: "{PREFIX}ALLOW_NEWLINE_WITHOUT_RETURN",
// "{PREFIX}IGNORE_LEADING_EMPTY_LINE", "{PREFIX}INSERT_HTTP_VERSION_IF_MISSING",
// "{PREFIX}ALLOW_ILLEGAL_START_LINE_CHARACTERS", "{PREFIX}MAX_HEADER_NAME_LENGTH",
// "{PREFIX}MAX_HEADER_VALUE_LENGTH". Unset variables keep the Default value;
// an unparseable value is an error naming the offending variable.
func FromEnv(prefix string) (Options, error) {
	opts := Default()

	boolVars := []struct {
		name string
		dst  *bool
	}{
		{"ALLOW_NEWLINE_WITHOUT_RETURN", &opts.AllowNewLineWithoutReturn},
		{"IGNORE_LEADING_EMPTY_LINE", &opts.IgnoreLeadingEmptyLine},
		{"INSERT_HTTP_VERSION_IF_MISSING", &opts.InsertHTTPVersionIfMissing},
		{"ALLOW_ILLEGAL_START_LINE_CHARACTERS", &opts.AllowIllegalStartLineCharacters},
	}
	for _, v := range boolVars {
		key := prefix + v.name
		raw, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Options{}, fmt.Errorf("rawhttp: invalid boolean for %s: %w", key, err)
		}
		*v.dst = b
	}

	intVars := []struct {
		name string
		dst  *int
	}{
		{"MAX_HEADER_NAME_LENGTH", &opts.MaxHeaderNameLength},
		{"MAX_HEADER_VALUE_LENGTH", &opts.MaxHeaderValueLength},
	}
	for _, v := range intVars {
		key := prefix + v.name
		raw, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Options{}, fmt.Errorf("rawhttp: invalid integer for %s: %w", key, err)
		}
		*v.dst = n
	}

	return opts, nil
}

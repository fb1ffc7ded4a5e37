package rawhttp

import (
	"net/url"
	"strconv"

	"github.com/wirecore/rawhttp/internal/uriparser"
)

// Uri is the decomposed form of a request-target or absolute URI reference.
// The Raw* accessors return the bytes exactly as parsed; the percent-decoding
// accessors (Path, Query, Fragment) are for display and never round-trip
// back into wire bytes on their own.
type Uri struct {
	Scheme      string
	HasUserInfo bool
	UserInfo    string
	HasHost     bool
	Host        string
	Port        int // -1 when unspecified
	RawPath     string
	HasQuery    bool
	RawQuery    string
	HasFragment bool
	RawFragment string
}

func fromInternal(u uriparser.URI) Uri {
	return Uri{
		Scheme:      u.Scheme,
		HasUserInfo: u.HasUserInfo,
		UserInfo:    u.UserInfo,
		HasHost:     u.HasHost,
		Host:        u.Host,
		Port:        u.Port,
		RawPath:     u.RawPath,
		HasQuery:    u.HasQuery,
		RawQuery:    u.RawQuery,
		HasFragment: u.HasFragment,
		RawFragment: u.RawFragment,
	}
}

// ParseUri parses any URI reference, repairing illegal bytes by
// percent-encoding them rather than rejecting the input — the standalone
// entry point is a normalizer, not a strictness probe. Request-target
// parsing nested inside ParseRequestLine instead honors
// Options.AllowIllegalStartLineCharacters; see parseTarget.
func ParseUri(raw string) (Uri, error) {
	u, err := uriparser.Parse(raw, true)
	if err != nil {
		return Uri{}, requestTargetError(err, 1)
	}
	return fromInternal(u), nil
}

// parseTarget parses a request-target under opts's leniency switch, for use
// while parsing a request-line. The returned error, if any, is the raw
// internal error (typically *uriparser.IllegalCharError); the caller wraps
// it with requestTargetError once it knows the start-line's line number.
func parseTarget(raw string, opts Options) (Uri, error) {
	u, err := uriparser.Parse(raw, opts.AllowIllegalStartLineCharacters)
	if err != nil {
		return Uri{}, err
	}
	return fromInternal(u), nil
}

// requestTargetError renders a raw uriparser error as the InvalidHttpRequest
// wire message, attributed to line.
func requestTargetError(err error, line int) error {
	if ice, ok := err.(*uriparser.IllegalCharError); ok {
		return newInvalidRequest(
			"Invalid request target: Illegal character in "+ice.Component+
				" at index "+strconv.Itoa(ice.Index)+": '"+ice.Snippet+"'", line)
	}
	return newInvalidRequest(err.Error(), line)
}

// Path percent-decodes RawPath for display. Malformed escapes are passed
// through unchanged rather than raising an error.
func (u Uri) Path() string {
	return decodeBestEffort(u.RawPath)
}

// Query percent-decodes RawQuery for display.
func (u Uri) Query() string {
	return decodeBestEffort(u.RawQuery)
}

// Fragment percent-decodes RawFragment for display.
func (u Uri) Fragment() string {
	return decodeBestEffort(u.RawFragment)
}

func decodeBestEffort(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// String reconstructs the raw wire form of u from its components.
func (u Uri) String() string {
	var b []byte
	if u.HasHost {
		if u.Scheme != "" {
			b = append(b, u.Scheme...)
			b = append(b, "://"...)
		}
		if u.HasUserInfo {
			b = append(b, u.UserInfo...)
			b = append(b, '@')
		}
		b = append(b, u.Host...)
		if u.Port >= 0 {
			b = append(b, ':')
			b = append(b, strconv.Itoa(u.Port)...)
		}
	}
	b = append(b, u.RawPath...)
	if u.HasQuery {
		b = append(b, '?')
		b = append(b, u.RawQuery...)
	}
	if u.HasFragment {
		b = append(b, '#')
		b = append(b, u.RawFragment...)
	}
	return string(b)
}

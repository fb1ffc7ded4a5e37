package rawhttp

import (
	"strconv"
	"strings"

	"github.com/wirecore/rawhttp/internal/scanner"
)

// RequestLine is a parsed request-line: "METHOD SP REQUEST-TARGET SP
// HTTP-VERSION".
type RequestLine struct {
	Method      string
	Uri         Uri
	HttpVersion HttpVersion
}

// String renders the canonical "{method} {rawTarget} HTTP/{major}.{minor}"
// form.
func (r RequestLine) String() string {
	return r.Method + " " + r.Uri.String() + " " + r.HttpVersion.String()
}

// StatusLine is a parsed status-line: "HTTP-VERSION SP STATUS-CODE SP
// REASON-PHRASE".
type StatusLine struct {
	HttpVersion  HttpVersion
	StatusCode   int
	ReasonPhrase string
}

// String renders the canonical "HTTP/{major}.{minor} {code} {reason}" form.
func (s StatusLine) String() string {
	code := strconv.Itoa(s.StatusCode)
	if s.ReasonPhrase == "" {
		return s.HttpVersion.String() + " " + code
	}
	return s.HttpVersion.String() + " " + code + " " + s.ReasonPhrase
}

// ParseRequestLine parses a single request-line string under opts.
func ParseRequestLine(line string, opts Options) (RequestLine, error) {
	return parseRequestLineAt(line, opts, 1)
}

// ParseResponseLine parses a single status-line string under opts.
func ParseResponseLine(line string, opts Options) (StatusLine, error) {
	return parseStatusLineAt(line, opts, 1)
}

// readStartLine pulls the first non-discarded line off s, honoring
// IgnoreLeadingEmptyLine, and distinguishes "no content at all" from an
// ordinary empty first line.
func readStartLine(s *scanner.ByteScanner, opts Options) (string, int, error) {
	line, err := s.ReadLine(maxHeaderLength)
	if err != nil {
		if err == scanner.ErrNoContent {
			return "", 0, newInvalidRequest("No content", 0)
		}
		return "", s.Line(), newInvalidRequest(err.Error(), s.Line())
	}
	lineNo := s.Line() - 1

	if opts.IgnoreLeadingEmptyLine && len(line) == 0 {
		line, err = s.ReadLine(maxHeaderLength)
		if err != nil {
			if err == scanner.ErrNoContent {
				return "", 0, newInvalidRequest("No content", 0)
			}
			return "", s.Line(), newInvalidRequest(err.Error(), s.Line())
		}
		lineNo = s.Line() - 1
	}

	return string(line), lineNo, nil
}

// ParseRequestLineFromScanner reads and parses one request-line off s.
func ParseRequestLineFromScanner(s *scanner.ByteScanner, opts Options) (RequestLine, error) {
	line, lineNo, err := readStartLine(s, opts)
	if err != nil {
		return RequestLine{}, err
	}
	return parseRequestLineAt(line, opts, lineNo)
}

// ParseResponseLineFromScanner reads and parses one status-line off s.
func ParseResponseLineFromScanner(s *scanner.ByteScanner, opts Options) (StatusLine, error) {
	line, lineNo, err := readStartLine(s, opts)
	if err != nil {
		return StatusLine{}, err
	}
	return parseStatusLineAt(line, opts, lineNo)
}

func parseRequestLineAt(line string, opts Options, lineNo int) (RequestLine, error) {
	// strings.Split (not Fields) so two consecutive spaces produce an empty
	// token between them instead of being collapsed — that empty token is
	// what later makes the reconstructed target echo the extra space back
	// to the URI parser.
	parts := strings.Split(line, " ")

	method := parts[0]
	if err := validateMethod(method, lineNo); err != nil {
		return RequestLine{}, err
	}

	switch len(parts) {
	case 1:
		return RequestLine{}, newInvalidRequest("Invalid request line", lineNo)

	case 2:
		target := parts[1]
		if target == "" {
			return RequestLine{}, newInvalidRequest("Missing request target", lineNo)
		}
		if !opts.InsertHTTPVersionIfMissing {
			return RequestLine{}, newInvalidRequest("Missing HTTP version", lineNo)
		}
		u, err := parseTarget(target, opts)
		if err != nil {
			return RequestLine{}, requestTargetError(err, lineNo)
		}
		return RequestLine{Method: method, Uri: u, HttpVersion: HTTP11}, nil

	case 3:
		target := parts[1]
		if target == "" {
			return RequestLine{}, newInvalidRequest("Missing request target", lineNo)
		}
		u, err := parseTarget(target, opts)
		if err != nil {
			return RequestLine{}, requestTargetError(err, lineNo)
		}
		version, err := parseVersionToken(parts[2], lineNo)
		if err != nil {
			return RequestLine{}, err
		}
		return RequestLine{Method: method, Uri: u, HttpVersion: version}, nil

	default:
		// Four or more tokens: the target itself contained one or more
		// spaces. Reconstruct it by rejoining every token between method
		// and version with a single space, then delegate the reconstructed
		// string to the URI parser — its own authority/path classification
		// and illegal-character snippet naturally produce the literal
		// message this situation requires, including the "two consecutive
		// spaces" case (reconstructed target starts with a space, which the
		// URI parser classifies as an illegal authority byte at index 0).
		target := strings.Join(parts[1:len(parts)-1], " ")
		version, verr := parseVersionToken(parts[len(parts)-1], lineNo)
		if target == "" && !opts.AllowIllegalStartLineCharacters {
			return RequestLine{}, newInvalidRequest("Missing request target", lineNo)
		}
		u, uerr := parseTarget(target, opts)
		if uerr != nil {
			return RequestLine{}, requestTargetError(uerr, lineNo)
		}
		if verr != nil {
			return RequestLine{}, verr
		}
		return RequestLine{Method: method, Uri: u, HttpVersion: version}, nil
	}
}

func parseStatusLineAt(line string, _ Options, lineNo int) (StatusLine, error) {
	sp1 := strings.IndexByte(line, ' ')
	if sp1 < 0 {
		return StatusLine{}, newInvalidRequest("Invalid request line", lineNo)
	}
	versionTok := line[:sp1]
	rest := line[sp1+1:]

	version, err := parseVersionToken(versionTok, lineNo)
	if err != nil {
		return StatusLine{}, err
	}

	sp2 := strings.IndexByte(rest, ' ')
	var codeTok, reason string
	if sp2 < 0 {
		codeTok = rest
		reason = ""
	} else {
		codeTok = rest[:sp2]
		reason = rest[sp2+1:]
	}

	code, err := strconv.Atoi(codeTok)
	if err != nil || code < 0 || code > 999 {
		return StatusLine{}, newInvalidRequest("Invalid status code: '"+codeTok+"'", lineNo)
	}

	return StatusLine{HttpVersion: version, StatusCode: code, ReasonPhrase: reason}, nil
}

func parseVersionToken(tok string, lineNo int) (HttpVersion, error) {
	v, ok := parseVersion(tok)
	if !ok {
		return HttpVersion{}, newInvalidRequest("Unknown HTTP version", lineNo)
	}
	return v, nil
}

// validateMethod enforces the method token class: non-empty, all tchar.
func validateMethod(method string, lineNo int) error {
	if method == "" {
		return newInvalidRequest("Invalid request line", lineNo)
	}
	for i := 0; i < len(method); i++ {
		if !isMethodChar(method[i]) {
			return newInvalidRequest(
				"Invalid method name: illegal character at index "+strconv.Itoa(i)+": '"+method+"'", lineNo)
		}
	}
	return nil
}

func isMethodChar(b byte) bool {
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

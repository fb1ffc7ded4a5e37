// Package scanner implements a thin stateful byte-stream reader for HTTP/1.x
// metadata. It knows nothing about HTTP grammar; it only tracks line numbers
// and finds line terminators, the same way the teacher's fastparser.Parser
// walks its in-memory buffer, generalized to an io.Reader source.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrNoContent is returned by ReadLine when EOF is hit before any byte of
// the line (including its terminator) has been read.
var ErrNoContent = errors.New("no content")

// LineTooLongError is raised when a line exceeds the caller-supplied cap.
type LineTooLongError struct {
	MaxLen int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("line too long (max %d bytes)", e.MaxLen)
}

// ByteScanner reads a byte stream one line (or one byte) at a time, tracking
// a 1-based line counter. A bare LF is accepted as a line terminator only
// when AllowBareLF is set; a bare CR is never a terminator.
type ByteScanner struct {
	r           *bufio.Reader
	line        int
	AllowBareLF bool
}

// New wraps r in a ByteScanner. The line counter starts at 1.
func New(r io.Reader, allowBareLF bool) *ByteScanner {
	return &ByteScanner{r: bufio.NewReader(r), line: 1, AllowBareLF: allowBareLF}
}

// Line returns the current 1-based line number.
func (s *ByteScanner) Line() int {
	return s.line
}

// PeekByte returns the next byte without consuming it. ok is false at EOF.
func (s *ByteScanner) PeekByte() (b byte, ok bool, err error) {
	peek, err := s.r.Peek(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return peek[0], true, nil
}

// ReadByte consumes and returns the next byte.
func (s *ByteScanner) ReadByte() (byte, error) {
	return s.r.ReadByte()
}

// ReadLine reads up to (but not including) the next line terminator, consumes
// the terminator, and advances the line counter. maxLen bounds the number of
// content bytes (excluding the terminator); exceeding it raises
// LineTooLongError. On EOF before any byte (content or terminator) is read,
// ReadLine returns ErrNoContent.
func (s *ByteScanner) ReadLine(maxLen int) ([]byte, error) {
	var line []byte
	sawAny := false

	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !sawAny {
					return nil, ErrNoContent
				}
				s.line++
				return line, nil
			}
			return nil, err
		}
		sawAny = true

		if b == '\r' {
			next, ok, peekErr := s.PeekByte()
			if peekErr != nil {
				return nil, peekErr
			}
			if ok && next == '\n' {
				_, _ = s.r.ReadByte()
				s.line++
				return line, nil
			}
			// Bare CR is never a terminator; keep it as ordinary content.
			line = append(line, b)
			if len(line) > maxLen {
				return nil, &LineTooLongError{MaxLen: maxLen}
			}
			continue
		}
		if b == '\n' {
			if !s.AllowBareLF {
				line = append(line, b)
				if len(line) > maxLen {
					return nil, &LineTooLongError{MaxLen: maxLen}
				}
				continue
			}
			s.line++
			return line, nil
		}

		line = append(line, b)
		if len(line) > maxLen {
			return nil, &LineTooLongError{MaxLen: maxLen}
		}
	}
}

package rawhttp

import "fmt"

// InvalidHttpRequest is raised from start-line parsing. Line is 1-based;
// it is 0 only when the input was empty.
type InvalidHttpRequest struct {
	Message string
	Line    int
}

func (e *InvalidHttpRequest) Error() string {
	return e.Message
}

func newInvalidRequest(message string, line int) error {
	return &InvalidHttpRequest{Message: message, Line: line}
}

// InvalidHttpHeader is raised from header parsing. Its Error() form carries
// an explicit "(line)" suffix, per the wire contract tests assert against.
type InvalidHttpHeader struct {
	Message string
	Line    int
}

func (e *InvalidHttpHeader) Error() string {
	return fmt.Sprintf("%s(%d)", e.Message, e.Line)
}

func newInvalidHeader(message string, line int) error {
	return &InvalidHttpHeader{Message: message, Line: line}
}

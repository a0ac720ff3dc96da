package request

import (
	"bufio"
	"io"

	"github.com/DavidBarbosag/taller2AREP/internal/headers"
)

// Request is one parsed HTTP request. Only Content-Length is interpreted
// among the headers; the rest are kept for logging.
type Request struct {
	Method  string
	Target  string // path plus "?query" as sent
	Path    string
	Version string
	Query   map[string]string
	Headers *headers.Headers
	Body    []byte
}

// Value returns the query parameter key, or "" if it was not sent.
func (r *Request) Value(key string) string {
	return r.Query[key]
}

// BodyString returns the request body as a string
func (r *Request) BodyString() string {
	return string(r.Body)
}

// RequestFromReader parses a single request from reader using the default
// body size limit.
func RequestFromReader(reader io.Reader) (*Request, error) {
	br, ok := reader.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(reader)
	}
	return Parse(br, DefaultMaxBodySize)
}

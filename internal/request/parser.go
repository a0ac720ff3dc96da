package request

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DavidBarbosag/taller2AREP/internal/headers"
)

// Size limits
const (
	maxRequestLineSize = 8192
	maxHeaderLineSize  = 8192
	maxHeaderLines     = 100

	DefaultMaxBodySize = 10 << 20
)

var (
	// ErrEmptyRequest means the peer sent nothing, or only a blank line,
	// before closing. No response is owed.
	ErrEmptyRequest = errors.New("empty request")

	ErrLineTooLong          = errors.New("line too long")
	ErrTooManyHeaders       = errors.New("too many header lines")
	ErrInvalidContentLength = headers.ErrInvalidContentLength
	ErrBodyTooLarge         = errors.New("body exceeds maximum size")
	ErrIncompleteBody       = errors.New("connection closed before full body was read")
)

// IsProtocolError reports whether err came from malformed input, as opposed
// to a failure of the connection itself. Protocol errors are answered with
// 400 Bad Request.
func IsProtocolError(err error) bool {
	for _, target := range []error{
		ErrMalformedRequestLine,
		ErrUnsupportedVersion,
		ErrLineTooLong,
		ErrTooManyHeaders,
		ErrInvalidContentLength,
		ErrBodyTooLarge,
		ErrIncompleteBody,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Parse reads exactly one request from br: the request line, headers up to
// the first blank line, and Content-Length bytes of body. A maxBodySize of
// zero or less disables the body limit.
func Parse(br *bufio.Reader, maxBodySize int64) (*Request, error) {
	line, err := readLine(br, maxRequestLineSize)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRequest
		}
		return nil, err
	}
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyRequest
	}

	method, target, version, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	path, rawQuery, _ := strings.Cut(target, "?")
	req := &Request{
		Method:  method,
		Target:  target,
		Path:    path,
		Version: version,
		Query:   parseQuery(rawQuery),
		Headers: headers.NewHeaders(),
	}

	if err := parseHeaders(br, req.Headers); err != nil {
		return nil, err
	}

	cl, err := req.Headers.ContentLength()
	if err != nil {
		return nil, err
	}
	if cl > 0 {
		if maxBodySize > 0 && int64(cl) > maxBodySize {
			return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, cl, maxBodySize)
		}
		req.Body, err = readBody(br, cl)
		if err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseHeaders consumes header lines until a blank line or EOF
func parseHeaders(br *bufio.Reader, h *headers.Headers) error {
	for lines := 0; ; lines++ {
		line, err := readLine(br, maxHeaderLineSize)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		if lines >= maxHeaderLines {
			return ErrTooManyHeaders
		}
		h.ParseLine(line)
	}
}

// readBody reads exactly n bytes, however many reads that takes
func readBody(br *bufio.Reader, n int) ([]byte, error) {
	body := make([]byte, n)
	read, err := io.ReadFull(br, body)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrIncompleteBody, read, n)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// readLine returns the next line without its "\n" or "\r\n" terminator.
// A final line cut short by EOF is returned as is; io.EOF is only returned
// when nothing was left to read.
func readLine(br *bufio.Reader, limit int) (string, error) {
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if len(line)+len(chunk) > limit {
			return "", ErrLineTooLong
		}
		line = append(line, chunk...)

		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) && len(line) > 0 {
			break
		}
		return "", err
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return string(line), nil
}

package request

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGETRequest(t *testing.T) {
	data := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/index.html", req.Path)
	assert.Equal(t, "/index.html", req.Target)
	assert.Equal(t, "HTTP/1.1", req.Version)
	assert.Empty(t, req.Query)

	host, ok := req.Headers.Get("Host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.Len(t, req.Body, 0)
}

func TestQueryParameters(t *testing.T) {
	data := "GET /App/hello?name=World&x=1 HTTP/1.1\r\n\r\n"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "/App/hello", req.Path)
	assert.Equal(t, "/App/hello?name=World&x=1", req.Target)
	assert.Equal(t, "World", req.Value("name"))
	assert.Equal(t, "1", req.Value("x"))
	assert.Equal(t, "", req.Value("missing"))
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected map[string]string
	}{
		{"", map[string]string{}},
		{"a=1&b=2", map[string]string{"a": "1", "b": "2"}},
		{"name=a&name=b", map[string]string{"name": "b"}},
		{"flag&a=1", map[string]string{"a": "1"}},
		{"a=1=2&b=2", map[string]string{"b": "2"}},
		{"a=&b=2", map[string]string{"b": "2"}},
		{"name=a=&b=2", map[string]string{"name": "a", "b": "2"}},
		{"name=a==", map[string]string{"name": "a"}},
		{"=v", map[string]string{"": "v"}},
		{"name=John%20Doe", map[string]string{"name": "John%20Doe"}},
		{"&&", map[string]string{}},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, parseQuery(test.input), "query %q", test.input)
	}
}

func TestPOSTWithContentLength(t *testing.T) {
	data := "POST /api/data HTTP/1.1\r\n" +
		"Host: api.example.com\r\n" +
		"Content-Length: 13\r\n" +
		"\r\n" +
		"Hello, World!"

	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/data", req.Path)
	assert.Equal(t, "Hello, World!", req.BodyString())
}

func TestBodyIgnoresTrailingBytes(t *testing.T) {
	data := "POST / HTTP/1.1\r\nContent-Length: 3\r\n\r\nabcdef"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "abc", string(req.Body))
}

func TestLowercaseContentLengthIsIgnored(t *testing.T) {
	data := "POST / HTTP/1.1\r\ncontent-length: 3\r\n\r\nabc"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Len(t, req.Body, 0)
}

func TestBareLineFeeds(t *testing.T) {
	data := "POST /x HTTP/1.1\nContent-Length: 2\n\nok"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "/x", req.Path)
	assert.Equal(t, "ok", string(req.Body))
}

func TestHeadersEndAtEOF(t *testing.T) {
	data := "GET /a HTTP/1.1\r\nHost: x"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	host, ok := req.Headers.Get("Host")
	assert.True(t, ok)
	assert.Equal(t, "x", host)
}

func TestEmptyRequest(t *testing.T) {
	for _, data := range []string{"", "\r\n", "   \r\n"} {
		_, err := RequestFromReader(strings.NewReader(data))
		assert.ErrorIs(t, err, ErrEmptyRequest, "input %q", data)
		assert.False(t, IsProtocolError(err))
	}
}

func TestMalformedRequestLine(t *testing.T) {
	for _, data := range []string{
		"GET /path\r\nHost: example.com\r\n\r\n",
		"GET\r\n\r\n",
		"GET  HTTP/1.1\r\n\r\n",
		"GET /a b HTTP/1.1\r\n\r\n",
		"garbage\r\n\r\n",
	} {
		_, err := RequestFromReader(strings.NewReader(data))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedRequestLine, "input %q", data)
		assert.True(t, IsProtocolError(err))
	}
}

func TestRequestLineTrailingSpace(t *testing.T) {
	req, err := RequestFromReader(strings.NewReader("GET /App/pi HTTP/1.1 \r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/App/pi", req.Path)
	assert.Equal(t, "HTTP/1.1", req.Version)
}

func TestUnsupportedVersion(t *testing.T) {
	data := "GET / FTP/1.0\r\nHost: example.com\r\n\r\n"
	_, err := RequestFromReader(strings.NewReader(data))

	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.True(t, IsProtocolError(err))
}

func TestInvalidContentLength(t *testing.T) {
	data := "POST / HTTP/1.1\r\nContent-Length: abc\r\n\r\n"
	_, err := RequestFromReader(strings.NewReader(data))

	assert.ErrorIs(t, err, ErrInvalidContentLength)
	assert.True(t, IsProtocolError(err))
}

func TestNegativeContentLengthMeansNoBody(t *testing.T) {
	data := "POST / HTTP/1.1\r\nContent-Length: -5\r\n\r\nabc"
	req, err := RequestFromReader(strings.NewReader(data))

	require.NoError(t, err)
	assert.Len(t, req.Body, 0)
}

func TestBodyTooLarge(t *testing.T) {
	data := "POST / HTTP/1.1\r\nContent-Length: 100\r\n\r\n"
	_, err := Parse(bufio.NewReader(strings.NewReader(data)), 10)

	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestRequestLineTooLong(t *testing.T) {
	data := "GET /" + strings.Repeat("a", maxRequestLineSize) + " HTTP/1.1\r\n\r\n"
	_, err := RequestFromReader(strings.NewReader(data))

	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestTooManyHeaders(t *testing.T) {
	var b strings.Builder
	b.WriteString("GET / HTTP/1.1\r\n")
	for i := 0; i <= maxHeaderLines; i++ {
		b.WriteString("X-A: b\r\n")
	}
	b.WriteString("\r\n")

	_, err := RequestFromReader(strings.NewReader(b.String()))
	assert.ErrorIs(t, err, ErrTooManyHeaders)
}

func TestIncrementalParsing(t *testing.T) {
	// Simulate slow reader that returns data a few bytes at a time
	data := []byte("GET /?a=1 HTTP/1.1\r\nHost: example.com\r\n\r\n")
	reader := &slowReader{data: data, chunkSize: 5}

	req, err := RequestFromReader(reader)

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/", req.Path)
	assert.Equal(t, "1", req.Value("a"))
}

func TestPartialBodyRead(t *testing.T) {
	// Body arrives in multiple reads
	data := "POST / HTTP/1.1\r\n" +
		"Content-Length: 20\r\n" +
		"\r\n" +
		"12345"

	reader := &slowReader{
		data:      []byte(data + "67890" + "1234567890"),
		chunkSize: 3,
	}

	req, err := RequestFromReader(reader)

	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", string(req.Body))
}

func TestUnexpectedEOF(t *testing.T) {
	// Content-Length says 100 bytes, but we only have 10
	data := "POST / HTTP/1.1\r\n" +
		"Content-Length: 100\r\n" +
		"\r\n" +
		"0123456789"

	_, err := RequestFromReader(strings.NewReader(data))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteBody)
	assert.True(t, IsProtocolError(err))
}

func TestReadErrorIsNotProtocolError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := RequestFromReader(io.MultiReader(strings.NewReader("GET / HT"), &failingReader{err: boom}))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsProtocolError(err))
}

func TestMultipleMethods(t *testing.T) {
	methods := []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

	for _, method := range methods {
		data := method + " / HTTP/1.1\r\nHost: example.com\r\n\r\n"
		req, err := RequestFromReader(strings.NewReader(data))

		require.NoError(t, err, "Method %s should be valid", method)
		assert.Equal(t, method, req.Method)
	}
}

// slowReader simulates a network connection that provides data slowly
type slowReader struct {
	data      []byte
	chunkSize int
	offset    int
}

func (r *slowReader) Read(p []byte) (int, error) {
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}

	n := r.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data)-r.offset {
		n = len(r.data) - r.offset
	}

	copy(p, r.data[r.offset:r.offset+n])
	r.offset += n
	return n, nil
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

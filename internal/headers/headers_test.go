package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderParseLine(t *testing.T) {
	// Test: Valid single header
	h := NewHeaders()
	ok := h.ParseLine("Host: localhost:42069")
	assert.True(t, ok)
	val, found := h.Get("Host")
	assert.True(t, found)
	assert.Equal(t, "localhost:42069", val)

	// Test: Extra whitespace around the value is trimmed
	h = NewHeaders()
	h.ParseLine("Host:   localhost:42069   ")
	val, _ = h.Get("Host")
	assert.Equal(t, "localhost:42069", val)

	// Test: Names are case-sensitive
	h = NewHeaders()
	h.ParseLine("Content-Type: application/json")
	_, found = h.Get("content-type")
	assert.False(t, found)

	// Test: No colon in header is ignored
	h = NewHeaders()
	assert.False(t, h.ParseLine("InvalidHeader"))
	assert.Equal(t, 0, h.Len())

	// Test: Empty header value
	h = NewHeaders()
	h.ParseLine("X-Empty:")
	val, found = h.Get("X-Empty")
	assert.True(t, found)
	assert.Equal(t, "", val)
}

func TestContentLength(t *testing.T) {
	// Test: absent header means no body
	h := NewHeaders()
	n, err := h.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Test: exact prefix match
	h = NewHeaders()
	h.ParseLine("Content-Length: 42")
	n, err = h.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	// Test: other casing is ignored
	h = NewHeaders()
	h.ParseLine("content-length: 42")
	n, err = h.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Test: whitespace before the colon is not the same header
	h = NewHeaders()
	h.ParseLine("Content-Length : 42")
	n, err = h.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Test: last occurrence wins
	h = NewHeaders()
	h.ParseLine("Content-Length: 1")
	h.ParseLine("Content-Length: 7")
	n, err = h.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// Test: non-numeric value
	h = NewHeaders()
	h.ParseLine("Content-Length: ten")
	_, err = h.ContentLength()
	assert.ErrorIs(t, err, ErrInvalidContentLength)
}

func TestSetAndOrder(t *testing.T) {
	h := NewHeaders()
	h.Add("Content-Type", "text/plain")
	h.Add("X-Custom", "value1")
	h.Add("X-Custom", "value2")
	h.Add("Connection", "close")
	h.Set("X-Custom", "new-value")

	var names, values []string
	h.Each(func(name, value string) {
		names = append(names, name)
		values = append(values, value)
	})
	assert.Equal(t, []string{"Content-Type", "X-Custom", "Connection"}, names)
	assert.Equal(t, []string{"text/plain", "new-value", "close"}, values)

	// Test: Set on a missing name appends
	h.Set("Content-Length", "3")
	val, ok := h.Get("Content-Length")
	assert.True(t, ok)
	assert.Equal(t, "3", val)
	assert.Equal(t, 4, h.Len())
}

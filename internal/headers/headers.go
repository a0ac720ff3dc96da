package headers

import (
	"errors"
	"strconv"
	"strings"
)

// ContentLengthName is matched byte for byte; "content-length" does not count.
const ContentLengthName = "Content-Length"

var ErrInvalidContentLength = errors.New("invalid Content-Length")

type field struct {
	name  string
	value string
}

// Headers keeps header fields in the order they were added. Names are
// stored and compared exactly as given.
type Headers struct {
	fields []field
}

func NewHeaders() *Headers {
	return &Headers{
		fields: make([]field, 0, 4),
	}
}

// Get returns the last value added for name
func (h *Headers) Get(name string) (string, bool) {
	for i := len(h.fields) - 1; i >= 0; i-- {
		if h.fields[i].name == name {
			return h.fields[i].value, true
		}
	}
	return "", false
}

// Add appends a field
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, field{name: name, value: value})
}

// Set replaces every value for name with a single one, keeping the position
// of the first occurrence
func (h *Headers) Set(name, value string) {
	for i := range h.fields {
		if h.fields[i].name == name {
			h.fields[i].value = value
			h.Del(name, i+1)
			return
		}
	}
	h.Add(name, value)
}

// Del removes fields called name starting at index from
func (h *Headers) Del(name string, from int) {
	kept := h.fields[:from]
	for _, f := range h.fields[from:] {
		if f.name != name {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

func (h *Headers) Len() int {
	return len(h.fields)
}

// Each calls fn for every field in insertion order
func (h *Headers) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.name, f.value)
	}
}

// ParseLine stores one raw header line such as "Host: example.com".
// The name is everything before the first colon, untrimmed; the value is
// trimmed. Lines without a colon are ignored and reported as false.
func (h *Headers) ParseLine(line string) bool {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	h.Add(name, strings.TrimSpace(value))
	return true
}

// ContentLength returns the declared body length, or 0 when the header is
// absent.
func (h *Headers) ContentLength() (int, error) {
	v, ok := h.Get(ContentLengthName)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrInvalidContentLength
	}
	return n, nil
}

package request

import (
	"errors"
	"strings"
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrUnsupportedVersion   = errors.New("unsupported HTTP version")
)

// splitTrimmed splits s around sep and drops trailing empty parts, so
// "GET / HTTP/1.1 " has three parts and "a=1=" has two.
func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// parseRequestLine parses: METHOD TARGET VERSION
func parseRequestLine(line string) (method, target, version string, err error) {
	parts := splitTrimmed(line, " ")
	if len(parts) != 3 {
		return "", "", "", ErrMalformedRequestLine
	}

	method, target, version = parts[0], parts[1], parts[2]
	if method == "" || target == "" {
		return "", "", "", ErrMalformedRequestLine
	}

	if !strings.HasPrefix(version, "HTTP/") {
		return "", "", "", ErrUnsupportedVersion
	}

	return method, target, version, nil
}

// parseQuery splits "a=1&b=2" into a map. Segments that are not exactly
// one key and one non-empty value are dropped, and a repeated key keeps its
// last value. Nothing is percent-decoded.
func parseQuery(raw string) map[string]string {
	params := make(map[string]string)
	if raw == "" {
		return params
	}

	for _, segment := range strings.Split(raw, "&") {
		kv := splitTrimmed(segment, "=")
		if len(kv) != 2 || kv[1] == "" {
			continue
		}
		params[kv[0]] = kv[1]
	}
	return params
}

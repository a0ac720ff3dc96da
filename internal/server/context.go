package server

import (
	"net"
	"time"

	"github.com/DavidBarbosag/taller2AREP/internal/request"
	"github.com/DavidBarbosag/taller2AREP/internal/response"
)

// Context carries one request through the middleware chain together with
// what the connection knows about it.
type Context struct {
	Request   *request.Request
	Response  *response.Writer
	RequestID string
	ClientIP  string
	Start     time.Time
}

// Method returns the HTTP method
func (c *Context) Method() string {
	return c.Request.Method
}

// Path returns the request path without its query
func (c *Context) Path() string {
	return c.Request.Path
}

// Status returns the status written so far, or 0
func (c *Context) Status() response.StatusCode {
	return c.Response.StatusCode()
}

// Duration returns the time since the connection was picked up
func (c *Context) Duration() time.Duration {
	return time.Since(c.Start)
}

// clientIP extracts the host part of the peer address
func clientIP(conn net.Conn) string {
	addr := conn.RemoteAddr()
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

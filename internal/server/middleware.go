package server

import (
	"fmt"
	"runtime/debug"

	"github.com/DavidBarbosag/taller2AREP/internal/response"
)

// ContextHandler is a handler that also sees connection data
type ContextHandler func(c *Context) error

// Middleware wraps a ContextHandler
type Middleware func(next ContextHandler) ContextHandler

// Chain wraps h so that the first middleware runs outermost.
func Chain(h ContextHandler, mws ...Middleware) ContextHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func handlerOf(h Handler) ContextHandler {
	return func(c *Context) error {
		return h.ServeRequest(c.Response, c.Request)
	}
}

// LoggingMiddleware logs every request once it has been answered, at a
// level picked from the status code.
func LoggingMiddleware(logger Logger) Middleware {
	return func(next ContextHandler) ContextHandler {
		return func(c *Context) error {
			if len(c.Request.Body) > 0 {
				logger.Debug("request body",
					Field{"request_id", c.RequestID},
					Field{"body", c.Request.BodyString()},
				)
			}

			err := next(c)

			logAt(logger, levelForStatus(c.Status()), c.Method()+" "+c.Request.Target,
				Field{"method", c.Method()},
				Field{"path", c.Path()},
				Field{"status", int(c.Status())},
				Field{"bytes", c.Response.BytesWritten()},
				Field{"duration_ms", c.Duration().Milliseconds()},
				Field{"request_id", c.RequestID},
				Field{"client_ip", c.ClientIP},
			)
			if err != nil {
				logger.Error("write response failed",
					Field{"request_id", c.RequestID},
					Field{"error", err},
				)
			}
			return err
		}
	}
}

// MetricsMiddleware records the status and latency of every request
func MetricsMiddleware(metrics *Metrics) Middleware {
	return func(next ContextHandler) ContextHandler {
		return func(c *Context) error {
			err := next(c)
			metrics.RecordRequest(c.Status(), c.Duration())
			return err
		}
	}
}

// RequestIDMiddleware echoes the request id in an X-Request-Id header
func RequestIDMiddleware() Middleware {
	return func(next ContextHandler) ContextHandler {
		return func(c *Context) error {
			c.Response.Header().Set("X-Request-Id", c.RequestID)
			return next(c)
		}
	}
}

// RecoveryMiddleware turns a handler panic into a 500. If the response had
// already started, the connection is left to be closed instead.
func RecoveryMiddleware(logger Logger) Middleware {
	return func(next ContextHandler) ContextHandler {
		return func(c *Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						Field{"error", r},
						Field{"stack", string(debug.Stack())},
						Field{"request_id", c.RequestID},
						Field{"path", c.Path()},
					)

					if c.Response.Started() {
						err = fmt.Errorf("handler panicked mid-response: %v", r)
						return
					}
					err = c.Response.ErrorResponse(response.StatusInternalServerError, "Internal Server Error")
				}
			}()

			return next(c)
		}
	}
}

package server

import (
	"errors"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/DavidBarbosag/taller2AREP/internal/request"
	"github.com/DavidBarbosag/taller2AREP/internal/response"
)

// serveConn reads one request from conn, answers it and closes conn.
func (s *Server) serveConn(conn net.Conn) {
	s.metrics.ActiveConnections.Add(1)
	defer s.metrics.ActiveConnections.Add(-1)
	defer conn.Close()

	c := &Context{
		RequestID: uuid.NewString(),
		ClientIP:  clientIP(conn),
		Start:     time.Now(),
	}

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(c.Start.Add(s.cfg.ReadTimeout))
	}

	br := getReader(conn)
	defer putReader(br)
	bw := getWriter(conn)
	defer putWriter(bw)

	c.Response = response.NewWriter(bw)

	req, err := request.Parse(br, s.cfg.MaxBodySize)
	if err != nil {
		s.handleParseError(c, err)
	} else {
		c.Request = req
		s.handler(c)
	}

	if err := bw.Flush(); err != nil {
		s.logger.Warn("flush response failed",
			Field{"request_id", c.RequestID},
			Field{"client_ip", c.ClientIP},
			Field{"error", err},
		)
	}
}

// handleParseError answers protocol defects with 400 and drops the
// connection silently for anything else.
func (s *Server) handleParseError(c *Context, err error) {
	switch {
	case errors.Is(err, request.ErrEmptyRequest):
		s.logger.Debug("empty request", Field{"client_ip", c.ClientIP})

	case request.IsProtocolError(err):
		c.Response.Header().Set("X-Request-Id", c.RequestID)
		if werr := c.Response.ErrorResponse(response.StatusBadRequest, err.Error()); werr != nil {
			s.logger.Error("write response failed",
				Field{"request_id", c.RequestID},
				Field{"error", werr},
			)
		}
		s.metrics.RecordRequest(response.StatusBadRequest, time.Since(c.Start))
		s.logger.Warn("bad request",
			Field{"status", int(response.StatusBadRequest)},
			Field{"error", err},
			Field{"request_id", c.RequestID},
			Field{"client_ip", c.ClientIP},
		)

	default:
		s.metrics.Dropped.Add(1)
		s.logger.Warn("read request failed",
			Field{"error", err},
			Field{"request_id", c.RequestID},
			Field{"client_ip", c.ClientIP},
		)
	}
}

package response

import (
	"fmt"
	"io"

	"github.com/DavidBarbosag/taller2AREP/internal/headers"
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one HTTP response to an io.Writer, in order: status line,
// headers, body.
type Writer struct {
	w            io.Writer
	state        writerState
	statusCode   StatusCode
	bytesWritten int64
	extra        *headers.Headers
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
		extra: headers.NewHeaders(),
	}
}

// Header returns headers appended to every response written by w, after
// the ones passed to WriteHeaders.
func (w *Writer) Header() *headers.Headers {
	return w.extra
}

// WriteStatusLine writes the HTTP status line
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	statusLine := fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, StatusText(code))
	if err := w.write([]byte(statusLine)); err != nil {
		return err
	}

	w.statusCode = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes h, then the writer's own headers, then the blank line
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	var err error
	writeField := func(name, value string) {
		if err == nil {
			err = w.write([]byte(name + ": " + value + "\r\n"))
		}
	}
	h.Each(writeField)
	w.extra.Each(func(name, value string) {
		if _, dup := h.Get(name); !dup {
			writeField(name, value)
		}
	})
	if err != nil {
		return err
	}

	if err := w.write([]byte("\r\n")); err != nil {
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("must write headers before body")
	}

	if len(data) > 0 {
		if err := w.write(data); err != nil {
			return err
		}
	}

	w.state = stateBodyWritten
	return nil
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.bytesWritten += int64(n)
	return err
}

// State tracking methods for logging and error recovery

// Started reports whether any part of the response has been written.
func (w *Writer) Started() bool {
	return w.state != stateStart
}

func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}

func (w *Writer) BytesWritten() int64 {
	return w.bytesWritten
}

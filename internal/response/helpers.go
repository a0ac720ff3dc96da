package response

import (
	"strconv"

	"github.com/DavidBarbosag/taller2AREP/internal/headers"
)

// Content types written by the helpers
const (
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
)

// BytesResponse writes a complete response. Content-Type is only sent when
// contentType is non-empty.
func (w *Writer) BytesResponse(code StatusCode, contentType string, data []byte) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}

	h := headers.NewHeaders()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Connection", "close")

	if err := w.WriteHeaders(h); err != nil {
		return err
	}

	return w.WriteBody(data)
}

// TextResponse writes a text/plain response
func (w *Writer) TextResponse(code StatusCode, body string) error {
	return w.BytesResponse(code, ContentTypeText, []byte(body))
}

// JSONResponse writes an application/json response
func (w *Writer) JSONResponse(code StatusCode, body []byte) error {
	return w.BytesResponse(code, ContentTypeJSON, body)
}

// StatusResponse writes a response with no body and no Content-Type
func (w *Writer) StatusResponse(code StatusCode) error {
	return w.BytesResponse(code, "", nil)
}

// ErrorResponse writes message as a text/plain body, or no body at all when
// message is empty.
func (w *Writer) ErrorResponse(code StatusCode, message string) error {
	if message == "" {
		return w.StatusResponse(code)
	}
	return w.TextResponse(code, message)
}

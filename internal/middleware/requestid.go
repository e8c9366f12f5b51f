package middleware

import (
	"httpmsg/internal/http/request"

	"github.com/google/uuid"
)

const (
	HeaderRequestID    = "X-Request-Id"
	AttributeRequestID = "request_id"
)

type RequestID struct {
	generate func() string
}

func NewRequestID() *RequestID {
	return &RequestID{generate: uuid.NewString}
}

// HandleRequest stores the request id as an attribute. A valid id sent by the
// client is reused; anything else is replaced with a fresh UUID.
func (m *RequestID) HandleRequest(req *request.Request) (*request.Request, error) {
	id := req.HeaderLine(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		id = m.generate()
		req = req.WithHeader(HeaderRequestID, id)
	}
	return req.WithAttribute(AttributeRequestID, id), nil
}

package middleware

import (
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/request"
)

type RequestMiddleware interface {
	HandleRequest(req *request.Request) (*request.Request, error)
}

type ResponseMiddleware interface {
	HandleResponse(headers header.Headers, body []byte) error
}

// ApplyRequest runs req through every middleware in order and stops at the
// first error.
func ApplyRequest(req *request.Request, mws ...RequestMiddleware) (*request.Request, error) {
	for _, mw := range mws {
		next, err := mw.HandleRequest(req)
		if err != nil {
			return req, err
		}
		req = next
	}
	return req, nil
}

func ApplyResponse(headers header.Headers, body []byte, mws ...ResponseMiddleware) error {
	for _, mw := range mws {
		if err := mw.HandleResponse(headers, body); err != nil {
			return err
		}
	}
	return nil
}

package middleware

import (
	"httpmsg/internal/http/header"
)

type ServerFingerprint struct {
	name string
}

func NewServerFingerprint(name string) *ServerFingerprint {
	return &ServerFingerprint{name: name}
}

func (h *ServerFingerprint) HandleResponse(headers header.Headers, body []byte) error {
	headers.Set("Server", h.name)
	return nil
}

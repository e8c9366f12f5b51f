package middleware

import (
	"net"

	"httpmsg/internal/http/request"
)

const headerForwardedFor = "X-Forwarded-For"

type ForwardedFor struct {
	addr  net.Addr
	trust bool
}

// NewForwardedFor records addr as the client address. When trust is set an
// incoming X-Forwarded-For chain is kept and addr is appended to it,
// otherwise the header is replaced.
func NewForwardedFor(addr net.Addr, trust bool) *ForwardedFor {
	return &ForwardedFor{addr: addr, trust: trust}
}

func (ff *ForwardedFor) HandleRequest(req *request.Request) (*request.Request, error) {
	host, _, err := net.SplitHostPort(ff.addr.String())
	if err != nil {
		return req, err
	}
	if ff.trust {
		return req.WithAddedHeader(headerForwardedFor, host), nil
	}
	return req.WithHeader(headerForwardedFor, host), nil
}

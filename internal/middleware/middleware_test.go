package middleware

import (
	"errors"
	"net"
	"testing"

	"httpmsg/internal/http/header"
	"httpmsg/internal/http/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRequest struct{ err error }

func (f failingRequest) HandleRequest(req *request.Request) (*request.Request, error) {
	return nil, f.err
}

type failingResponse struct{ err error }

func (f failingResponse) HandleResponse(header.Headers, []byte) error {
	return f.err
}

func TestApplyRequest(t *testing.T) {
	req := newRequest(t, header.New())

	addr := &net.TCPAddr{IP: net.ParseIP("10.1.2.3"), Port: 5000}

	got, err := ApplyRequest(req, NewRequestID(), NewForwardedFor(addr, false))
	require.NoError(t, err)
	assert.NotNil(t, got.Attribute(AttributeRequestID, nil))
	assert.Equal(t, "10.1.2.3", got.HeaderLine("X-Forwarded-For"))
}

func TestApplyRequestStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	req := newRequest(t, header.New())

	got, err := ApplyRequest(req, failingRequest{err: boom}, NewRequestID())

	assert.ErrorIs(t, err, boom)
	assert.Same(t, req, got)
}

func TestApplyResponse(t *testing.T) {
	hs := header.New()
	boom := errors.New("boom")

	assert.NoError(t, ApplyResponse(hs, nil, NewServerFingerprint("httpmsg")))
	assert.Equal(t, "httpmsg", hs.Line("Server"))

	err := ApplyResponse(hs, nil, failingResponse{err: boom}, NewServerFingerprint("other"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "httpmsg", hs.Line("Server"))
}

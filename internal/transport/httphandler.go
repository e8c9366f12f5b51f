package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"httpmsg/internal/config"
	"httpmsg/internal/http/form"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/request"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/http/uri"
	"httpmsg/internal/inspect"
	"httpmsg/internal/middleware"
	"httpmsg/internal/random"
	"httpmsg/internal/version"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	defaultReadTimeout = 10 * time.Second
	serverName         = version.Name
	jsonContentType    = "application/json"
)

var (
	errInvalidContentLength = errors.New("invalid Content-Length")
	errTransferEncoding     = errors.New("transfer encodings are not supported")
)

type httpHandler struct {
	config      config.Config
	fs          afero.Fs
	names       random.Random
	log         logrus.FieldLogger
	readTimeout time.Duration
}

func newHTTPHandler(conf config.Config, fs afero.Fs, names random.Random, log logrus.FieldLogger) *httpHandler {
	return &httpHandler{
		config:      conf,
		fs:          fs,
		names:       names,
		log:         log,
		readTimeout: defaultReadTimeout,
	}
}

func (hh *httpHandler) Handler(conn net.Conn) {
	defer hh.closeConnection(conn)

	remote := conn.RemoteAddr()
	log := hh.log.WithField("remote", remote.String())

	if err := conn.SetReadDeadline(time.Now().Add(hh.readTimeout)); err != nil {
		log.WithError(err).Warn("Cannot set read deadline")
	}

	br := bufio.NewReader(conn)
	startLine, hs, err := header.ReadRequest(br)
	if err != nil {
		log.WithError(err).Debug("Malformed request head")
		hh.writeError(conn, log, "", http.StatusBadRequest)
		return
	}
	log = log.WithFields(logrus.Fields{
		"method": startLine.Method,
		"target": startLine.Target,
	})

	req, forms, err := hh.buildRequest(br, startLine, hs, remote, log)
	if err != nil {
		status := statusFor(err)
		log.WithError(err).WithField("status", status).Info("Request rejected")
		hh.writeError(conn, log, startLine.Method, status)
		return
	}
	defer func() {
		if err := forms.Cleanup(); err != nil {
			log.WithError(err).Warn("Cannot remove uploaded files")
		}
	}()

	req, err = middleware.ApplyRequest(req,
		middleware.NewRequestID(),
		middleware.NewForwardedFor(remote, hh.config.TrustForwarded()),
	)
	if err != nil {
		log.WithError(err).Error("Error applying request middlewares")
		hh.writeError(conn, log, startLine.Method, http.StatusInternalServerError)
		return
	}

	requestID, _ := req.Attribute(middleware.AttributeRequestID, "").(string)
	log = log.WithField("request_id", requestID)

	body, err := inspect.Render(req)
	if err != nil {
		log.WithError(err).Error("Cannot render request")
		hh.writeError(conn, log, startLine.Method, http.StatusInternalServerError)
		return
	}

	res := header.New().
		Set(header.ContentType, jsonContentType).
		Set(middleware.HeaderRequestID, requestID)
	if err = hh.respond(conn, req.Method(), http.StatusOK, res, body); err != nil {
		log.WithError(err).Warn("Failed to write response")
		return
	}
	log.WithField("status", http.StatusOK).Info("Request handled")
}

// buildRequest also returns the form source so the caller can remove the
// uploads once the response is written.
func (hh *httpHandler) buildRequest(br *bufio.Reader, startLine header.StartLine, hs header.Headers, remote net.Addr, log logrus.FieldLogger) (*request.Request, *form.Source, error) {
	if len(hs.Values("Transfer-Encoding")) > 0 {
		return nil, nil, errTransferEncoding
	}

	length, err := contentLength(hs)
	if err != nil {
		return nil, nil, err
	}

	streams, err := stream.NewFactory(br, length, hh.config.BufferSize())
	if err != nil {
		return nil, nil, err
	}

	u, err := uri.FromTarget(startLine.Target, hs.Line(header.Host), "http")
	if err != nil {
		return nil, nil, err
	}

	serverParams := map[string]string{
		request.ServerProtocol: startLine.Version,
		"REQUEST_METHOD":       startLine.Method,
		"REQUEST_URI":          startLine.Target,
		"REMOTE_ADDR":          remote.String(),
		"SERVER_PORT":          hh.config.HTTPPort(),
		"SERVER_SOFTWARE":      version.ServerSoftware(),
		"REQUEST_TIME":         strconv.FormatInt(time.Now().Unix(), 10),
	}

	forms := form.NewSource(rawContentType(hs), streams.CreateStream(), hh.fs, hh.names, log)
	factory := request.NewFactory(header.NewFactory(hs), streams, forms)
	return factory.CreateServerRequest(startLine.Method, u, serverParams), forms, nil
}

func contentLength(hs header.Headers) (int64, error) {
	raw := hs.Line("Content-Length")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidContentLength, raw)
	}
	return n, nil
}

// rawContentType keeps the parameters that ContentType drops, such as the
// multipart boundary.
func rawContentType(hs header.Headers) string {
	values := hs.Values(header.ContentType)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stream.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errTransferEncoding):
		return http.StatusNotImplemented
	default:
		return http.StatusBadRequest
	}
}

func (hh *httpHandler) writeError(conn net.Conn, log logrus.FieldLogger, method string, status int) {
	if err := hh.respond(conn, method, status, header.New(), nil); err != nil {
		log.WithError(err).Debug("Failed to write error response")
	}
}

// respond writes a complete response and always asks the client to close
// the connection. HEAD responses carry headers only.
func (hh *httpHandler) respond(conn net.Conn, method string, status int, hs header.Headers, body []byte) error {
	hs.Set("Content-Length", strconv.Itoa(len(body))).
		Set("Connection", "close")

	if err := middleware.ApplyResponse(hs, body, middleware.NewServerFingerprint(serverName)); err != nil {
		return fmt.Errorf("error applying response middlewares: %w", err)
	}

	var buf bytes.Buffer
	if err := header.Write(&buf, fmt.Sprintf("HTTP/1.1 %d %s", status, http.StatusText(status)), hs); err != nil {
		return err
	}
	if method != http.MethodHead {
		buf.Write(body)
	}

	_, err := conn.Write(buf.Bytes())
	return err
}

func (hh *httpHandler) closeConnection(conn net.Conn) {
	err := conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		hh.log.WithError(err).Warn("Error closing connection")
	}
}

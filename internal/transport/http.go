package transport

import (
	"errors"
	"net"

	"httpmsg/internal/config"
	"httpmsg/internal/random"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type httpServer struct {
	handler HTTP
	port    string
	log     logrus.FieldLogger
}

// NewHTTPServer serves every connection with a handler that answers with a
// JSON description of the request it received. Uploaded files are stored in
// fs under names drawn from names.
func NewHTTPServer(conf config.Config, fs afero.Fs, names random.Random, log logrus.FieldLogger) Transport {
	return &httpServer{
		handler: newHTTPHandler(conf, fs, names, log),
		port:    conf.HTTPPort(),
		log:     log,
	}
}

func (ht *httpServer) Listen() (net.Listener, error) {
	return net.Listen("tcp", ":"+ht.port)
}

func (ht *httpServer) Serve(listener net.Listener) error {
	ht.log.WithField("port", ht.port).Info("HTTP server is starting")
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			ht.log.WithError(err).Error("Error accepting connection")
			continue
		}

		go ht.handler.Handler(conn)
	}
}

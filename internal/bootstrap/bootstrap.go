package bootstrap

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"httpmsg/internal/config"
	"httpmsg/internal/random"
	"httpmsg/internal/transport"
	"httpmsg/internal/version"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Bootstrap struct {
	Randomizer random.Random
	Config     config.Config
	Fs         afero.Fs
	Log        logrus.FieldLogger
	ErrChan    chan error
	SignalChan chan os.Signal
}

func New(conf config.Config, log logrus.FieldLogger) (*Bootstrap, error) {
	fs, err := newUploadFs(conf.UploadDir())
	if err != nil {
		return nil, err
	}

	return &Bootstrap{
		Randomizer: random.New(),
		Config:     conf,
		Fs:         fs,
		Log:        log,
		ErrChan:    make(chan error, 5),
		SignalChan: make(chan os.Signal, 1),
	}, nil
}

// newUploadFs keeps uploads in memory unless dir is set, in which case they
// are written below dir on disk.
func newUploadFs(dir string) (afero.Fs, error) {
	if dir == "" {
		return afero.NewMemMapFs(), nil
	}

	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return afero.NewBasePathFs(osFs, dir), nil
}

func startHTTPServer(conf config.Config, fs afero.Fs, names random.Random, log logrus.FieldLogger, errChan chan<- error) {
	httpserver := transport.NewHTTPServer(conf, fs, names, log)
	ln, err := httpserver.Listen()
	if err != nil {
		errChan <- fmt.Errorf("failed to start http server: %w", err)
		return
	}
	if err = httpserver.Serve(ln); err != nil {
		errChan <- fmt.Errorf("error when serving http server: %w", err)
	}
}

func startPprof(pprofPort string, log logrus.FieldLogger, errChan chan<- error) {
	pprofAddr := fmt.Sprintf("localhost:%s", pprofPort)
	log.Infof("Starting pprof server on http://%s/debug/pprof/", pprofAddr)
	if err := http.ListenAndServe(pprofAddr, nil); err != nil {
		errChan <- fmt.Errorf("pprof server error: %v", err)
	}
}

func (b *Bootstrap) Run() error {
	signal.Notify(b.SignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(b.SignalChan)

	go startHTTPServer(b.Config, b.Fs, b.Randomizer, b.Log, b.ErrChan)

	if b.Config.PprofEnabled() {
		go startPprof(b.Config.PprofPort(), b.Log, b.ErrChan)
	}

	b.Log.WithField("version", version.GetShortVersion()).Info("All services started successfully")

	select {
	case err := <-b.ErrChan:
		return fmt.Errorf("service error: %w", err)
	case sig := <-b.SignalChan:
		b.Log.Infof("Received signal %s, initiating graceful shutdown", sig)
		return nil
	}
}

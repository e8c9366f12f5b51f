package config

type Config interface {
	HTTPPort() string
	BufferSize() int

	LogLevel() string
	UploadDir() string
	TrustForwarded() bool

	PprofEnabled() bool
	PprofPort() string
}

func MustLoad() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) HTTPPort() string     { return c.httpPort }
func (c *config) BufferSize() int      { return c.bufferSize }
func (c *config) LogLevel() string     { return c.logLevel }
func (c *config) UploadDir() string    { return c.uploadDir }
func (c *config) TrustForwarded() bool { return c.trustForwarded }
func (c *config) PprofEnabled() bool   { return c.pprofEnabled }
func (c *config) PprofPort() string    { return c.pprofPort }

// WithOverrides returns cfg with the non-empty values replacing the loaded
// port and log level.
func WithOverrides(cfg Config, httpPort, logLevel string) Config {
	c := &config{
		httpPort:       cfg.HTTPPort(),
		bufferSize:     cfg.BufferSize(),
		logLevel:       cfg.LogLevel(),
		uploadDir:      cfg.UploadDir(),
		trustForwarded: cfg.TrustForwarded(),
		pprofEnabled:   cfg.PprofEnabled(),
		pprofPort:      cfg.PprofPort(),
	}
	if httpPort != "" {
		c.httpPort = httpPort
	}
	if logLevel != "" {
		c.logLevel = logLevel
	}
	return c
}

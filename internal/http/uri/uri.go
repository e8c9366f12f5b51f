package uri

import (
	"fmt"
	"net/url"
	"strings"
)

type URI interface {
	Scheme() string
	Host() string
	Port() string
	Path() string
	Query() string
	String() string
}

type uri struct {
	u *url.URL
}

// Parse accepts absolute URIs as well as origin-form request targets.
func Parse(raw string) (URI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse uri %q: %w", raw, err)
	}
	return &uri{u: u}, nil
}

// FromTarget builds the effective URI of a request from its request-line
// target and Host header value.
func FromTarget(target, host, scheme string) (URI, error) {
	if target == "*" {
		return &uri{u: &url.URL{Scheme: scheme, Host: host}}, nil
	}

	if !strings.HasPrefix(target, "/") {
		u, err := Parse(target)
		if err != nil {
			return nil, err
		}
		if u.Host() != "" {
			return u, nil
		}
	}

	u, err := url.ParseRequestURI(target)
	if err != nil {
		return nil, fmt.Errorf("parse request target %q: %w", target, err)
	}
	u.Scheme = scheme
	u.Host = host
	return &uri{u: u}, nil
}

func (ur *uri) Scheme() string {
	return ur.u.Scheme
}

// Host returns the host without its port.
func (ur *uri) Host() string {
	return ur.u.Hostname()
}

func (ur *uri) Port() string {
	return ur.u.Port()
}

func (ur *uri) Path() string {
	return ur.u.EscapedPath()
}

func (ur *uri) Query() string {
	return ur.u.RawQuery
}

func (ur *uri) String() string {
	return ur.u.String()
}

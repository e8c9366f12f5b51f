package request

import (
	"maps"
	"strings"

	"httpmsg/internal/http/form"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/http/uri"
)

const (
	ServerProtocol         = "SERVER_PROTOCOL"
	defaultProtocolVersion = "1.1"
)

// Request is an incoming server request. It is never modified after
// construction: every With* method returns a modified copy and leaves the
// receiver untouched.
//
// The Request owns its header collection exclusively. Header mutators clone
// the collection before touching it, so two Requests never share header
// state. Body and URI are shared between copies and are only ever replaced
// wholesale.
type Request struct {
	method          string
	uri             uri.URI
	headers         header.Headers
	cookies         map[string]string
	body            stream.Stream
	serverParams    map[string]string
	uploadedFiles   map[string]form.UploadedFile
	protocolVersion string
	requestTarget   string
	queryParams     map[string]string
	attributes      map[string]any
	parsedBody      any
}

// New takes ownership of headers; callers must not mutate it afterwards.
func New(
	method string,
	u uri.URI,
	headers header.Headers,
	cookies header.Cookies,
	body stream.Stream,
	serverParams map[string]string,
	uploadedFiles map[string]form.UploadedFile,
	parsedBody any,
) *Request {
	r := &Request{
		method:          method,
		uri:             u,
		headers:         headers,
		cookies:         copyMap(cookies),
		body:            body,
		serverParams:    copyMap(serverParams),
		uploadedFiles:   copyMap(uploadedFiles),
		protocolVersion: defaultProtocolVersion,
		queryParams:     form.ParseQuery(u.Query()),
		attributes:      map[string]any{},
		parsedBody:      parsedBody,
	}

	if protocol := serverParams[ServerProtocol]; protocol != "" {
		r.protocolVersion = strings.TrimPrefix(protocol, "HTTP/")
	}
	return r
}

func (r *Request) clone() *Request {
	c := *r
	return &c
}

func (r *Request) cloneWithHeaders() *Request {
	c := r.clone()
	c.headers = r.headers.Clone()
	return c
}

func (r *Request) ProtocolVersion() string {
	return r.protocolVersion
}

func (r *Request) WithProtocolVersion(version string) *Request {
	c := r.clone()
	c.protocolVersion = version
	return c
}

func (r *Request) Headers() map[string][]string {
	return r.headers.All()
}

func (r *Request) HasHeader(name string) bool {
	return len(r.headers.Values(name)) > 0
}

func (r *Request) Header(name string) []string {
	return r.headers.Values(name)
}

func (r *Request) HeaderLine(name string) string {
	return r.headers.Line(name)
}

func (r *Request) WithHeader(name string, values ...string) *Request {
	c := r.cloneWithHeaders()
	c.headers.Set(name, values...)
	return c
}

func (r *Request) WithAddedHeader(name string, values ...string) *Request {
	c := r.cloneWithHeaders()
	c.headers.Add(name, values...)
	return c
}

func (r *Request) WithoutHeader(name string) *Request {
	c := r.cloneWithHeaders()
	c.headers.Remove(name)
	return c
}

func (r *Request) Body() stream.Stream {
	return r.body
}

func (r *Request) WithBody(body stream.Stream) *Request {
	c := r.clone()
	c.body = body
	return c
}

// RequestTarget returns the override set by WithRequestTarget, or else the
// URI path normalized to a single leading slash plus the raw query.
func (r *Request) RequestTarget() string {
	if r.requestTarget != "" {
		return r.requestTarget
	}

	path := r.uri.Path()
	if path == "" {
		return "/"
	}

	target := "/" + strings.Trim(path, "/")
	if query := r.uri.Query(); query != "" {
		target += "?" + query
	}
	return target
}

func (r *Request) WithRequestTarget(target string) *Request {
	c := r.clone()
	c.requestTarget = target
	return c
}

func (r *Request) Method() string {
	return r.method
}

func (r *Request) WithMethod(method string) *Request {
	c := r.clone()
	c.method = method
	return c
}

func (r *Request) URI() uri.URI {
	return r.uri
}

// WithURI replaces the URI. Unless preserveHost is set and a Host header is
// already present, the new host is added to the Host header. An existing
// Host value is kept next to the new one.
func (r *Request) WithURI(u uri.URI, preserveHost bool) *Request {
	c := r.clone()
	c.uri = u

	host := u.Host()
	if host == "" {
		return c
	}
	if preserveHost && r.headers.Line(header.Host) != "" {
		return c
	}

	c.headers = r.headers.Clone()
	c.headers.Add(header.Host, host)
	return c
}

func (r *Request) ServerParams() map[string]string {
	return copyMap(r.serverParams)
}

func (r *Request) CookieParams() map[string]string {
	return copyMap(r.cookies)
}

func (r *Request) WithCookieParams(cookies map[string]string) *Request {
	c := r.clone()
	c.cookies = copyMap(cookies)
	return c
}

func (r *Request) QueryParams() map[string]string {
	return copyMap(r.queryParams)
}

func (r *Request) WithQueryParams(query map[string]string) *Request {
	c := r.clone()
	c.queryParams = copyMap(query)
	return c
}

func (r *Request) UploadedFiles() map[string]form.UploadedFile {
	return copyMap(r.uploadedFiles)
}

func (r *Request) WithUploadedFiles(files map[string]form.UploadedFile) *Request {
	c := r.clone()
	c.uploadedFiles = copyMap(files)
	return c
}

func (r *Request) ParsedBody() any {
	return r.parsedBody
}

func (r *Request) WithParsedBody(data any) *Request {
	c := r.clone()
	c.parsedBody = data
	return c
}

func (r *Request) Attributes() map[string]any {
	return copyMap(r.attributes)
}

func (r *Request) Attribute(name string, def any) any {
	if v, ok := r.attributes[name]; ok {
		return v
	}
	return def
}

func (r *Request) WithAttribute(name string, value any) *Request {
	c := r.clone()
	c.attributes = copyMap(r.attributes)
	c.attributes[name] = value
	return c
}

func (r *Request) WithoutAttribute(name string) *Request {
	c := r.clone()
	c.attributes = copyMap(r.attributes)
	delete(c.attributes, name)
	return c
}

// copyMap never returns nil so that With* methods can write into the result.
func copyMap[M ~map[K]V, K comparable, V any](m M) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return maps.Clone(map[K]V(m))
}

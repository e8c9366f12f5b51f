package request

import (
	"slices"

	"httpmsg/internal/http/form"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/stream"
	"httpmsg/internal/http/uri"
)

var (
	parsedBodyContentTypes = []string{form.MediaTypeURLEncoded, form.MediaTypeMultipart}
	parsedBodyMethods      = []string{"POST", "PUT", "PATCH"}
)

type HeadersFactory interface {
	Create() header.Headers
}

type StreamFactory interface {
	CreateStream() stream.Stream
}

// FormSource supplies the decoded form of the request body.
type FormSource interface {
	PostedForm() map[string]string
	UploadedFiles() map[string]form.UploadedFile
}

type Factory struct {
	headers HeadersFactory
	streams StreamFactory
	form    FormSource
}

// NewFactory builds a request factory. forms may be nil, in which case
// requests never carry a parsed body.
func NewFactory(headers HeadersFactory, streams StreamFactory, forms FormSource) *Factory {
	return &Factory{
		headers: headers,
		streams: streams,
		form:    forms,
	}
}

func (f *Factory) CreateServerRequest(method string, u uri.URI, serverParams map[string]string) *Request {
	headers := f.headers.Create()

	var (
		parsedBody    any
		uploadedFiles map[string]form.UploadedFile
	)
	if f.form != nil && hasParsedBody(method, headers) {
		parsedBody = f.form.PostedForm()
		uploadedFiles = f.form.UploadedFiles()
	}

	return New(
		method,
		u,
		headers,
		headers.Cookies(),
		f.streams.CreateStream(),
		serverParams,
		uploadedFiles,
		parsedBody,
	)
}

func hasParsedBody(method string, headers header.Headers) bool {
	return slices.Contains(parsedBodyContentTypes, headers.ContentType()) &&
		slices.Contains(parsedBodyMethods, method)
}

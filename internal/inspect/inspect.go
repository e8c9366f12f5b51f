package inspect

import (
	"fmt"

	"httpmsg/internal/http/request"

	"github.com/tidwall/sjson"
)

type uploadedFile struct {
	Filename  string `json:"filename"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
}

// Render describes req as a JSON document. The body is included verbatim
// as a string.
func Render(req *request.Request) ([]byte, error) {
	files := make(map[string]uploadedFile)
	for field, f := range req.UploadedFiles() {
		files[field] = uploadedFile{
			Filename:  f.Filename,
			MediaType: f.MediaType,
			Size:      f.Size,
		}
	}

	fields := []struct {
		path  string
		value any
	}{
		{"method", req.Method()},
		{"request_target", req.RequestTarget()},
		{"protocol_version", req.ProtocolVersion()},
		{"uri", req.URI().String()},
		{"headers", req.Headers()},
		{"cookies", req.CookieParams()},
		{"query", req.QueryParams()},
		{"server", req.ServerParams()},
		{"parsed_body", req.ParsedBody()},
		{"uploaded_files", files},
		{"attributes", req.Attributes()},
		{"body", req.Body().String()},
		{"body_size", req.Body().Size()},
	}

	doc := []byte("{}")
	for _, f := range fields {
		var err error
		doc, err = sjson.SetBytes(doc, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f.path, err)
		}
	}
	return doc, nil
}

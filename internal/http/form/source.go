package form

import (
	"io"
	"sync"

	"httpmsg/internal/http/stream"
	"httpmsg/internal/random"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Source decodes a request body as form data the first time it is asked
// for. Decoding errors are logged and produce an empty form.
type Source struct {
	contentType string
	body        stream.Stream
	fs          afero.Fs
	names       random.Random
	log         logrus.FieldLogger

	once sync.Once
	form *Form
}

func NewSource(contentType string, body stream.Stream, fs afero.Fs, names random.Random, log logrus.FieldLogger) *Source {
	return &Source{
		contentType: contentType,
		body:        body,
		fs:          fs,
		names:       names,
		log:         log,
	}
}

func (s *Source) PostedForm() map[string]string {
	return s.parse().Values
}

func (s *Source) UploadedFiles() map[string]UploadedFile {
	return s.parse().Files
}

// Cleanup deletes the files stored while decoding the body. A Source that
// was never decoded stays empty afterwards.
func (s *Source) Cleanup() error {
	s.once.Do(func() { s.form = newForm() })
	return s.form.RemoveFiles()
}

func (s *Source) parse() *Form {
	s.once.Do(func() {
		s.form = newForm()
		if s.body == nil {
			return
		}

		if _, err := s.body.Seek(0, io.SeekStart); err != nil {
			s.log.WithError(err).Warn("Cannot rewind request body")
			return
		}
		defer func() {
			if _, err := s.body.Seek(0, io.SeekStart); err != nil {
				s.log.WithError(err).Warn("Cannot rewind request body")
			}
		}()

		f, err := Parse(s.contentType, s.body, s.fs, s.names)
		if err != nil {
			s.log.WithError(err).WithField("content_type", s.contentType).Warn("Cannot parse form body")
			return
		}
		s.form = f
	})
	return s.form
}

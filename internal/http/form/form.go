package form

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"strings"

	"httpmsg/internal/random"

	"github.com/spf13/afero"
)

const (
	MediaTypeURLEncoded = "application/x-www-form-urlencoded"
	MediaTypeMultipart  = "multipart/form-data"

	maxFieldSize = 1 << 20
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported form media type")
	ErrMissingBoundary      = errors.New("multipart body without boundary")
	ErrFieldTooLarge        = errors.New("form field too large")
)

type UploadedFile struct {
	Field     string
	Filename  string
	MediaType string
	Size      int64
	Path      string
	fs        afero.Fs
}

func (f UploadedFile) Open() (afero.File, error) {
	if f.fs == nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, os.ErrNotExist)
	}
	return f.fs.Open(f.Path)
}

// Remove deletes the stored upload. Removing a file that is already gone is
// not an error.
func (f UploadedFile) Remove() error {
	if f.fs == nil {
		return nil
	}
	if err := f.fs.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload %s: %w", f.Path, err)
	}
	return nil
}

// Form holds decoded form fields. Repeated field names keep the last value.
type Form struct {
	Values map[string]string
	Files  map[string]UploadedFile
}

func newForm() *Form {
	return &Form{
		Values: map[string]string{},
		Files:  map[string]UploadedFile{},
	}
}

// RemoveFiles deletes every stored upload of the form.
func (f *Form) RemoveFiles() error {
	var errs []error
	for _, file := range f.Files {
		if err := file.Remove(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Parse decodes body according to the Content-Type header line. Uploaded
// files are written to fs under names picked by names.
func Parse(contentType string, body io.Reader, fs afero.Fs, names random.Random) (*Form, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parse content type: %w", err)
	}

	switch mediaType {
	case MediaTypeURLEncoded:
		return parseURLEncoded(body)
	case MediaTypeMultipart:
		boundary := params["boundary"]
		if boundary == "" {
			return nil, ErrMissingBoundary
		}
		return parseMultipart(multipart.NewReader(body, boundary), fs, names)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// ParseQuery decodes a form-encoded string. Malformed pairs are skipped and
// later duplicates overwrite earlier ones.
func ParseQuery(query string) map[string]string {
	values, _ := url.ParseQuery(query)
	return flatten(values)
}

func parseURLEncoded(body io.Reader) (*Form, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxFieldSize+1))
	if err != nil {
		return nil, fmt.Errorf("read form body: %w", err)
	}
	if len(data) > maxFieldSize {
		return nil, ErrFieldTooLarge
	}

	f := newForm()
	f.Values = ParseQuery(string(data))
	return f, nil
}

// parseMultipart removes the uploads it already stored when a later part
// fails.
func parseMultipart(mr *multipart.Reader, fs afero.Fs, names random.Random) (*Form, error) {
	f := newForm()
	if err := readParts(mr, f, fs, names); err != nil {
		if rmErr := f.RemoveFiles(); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
		return nil, err
	}
	return f, nil
}

func readParts(mr *multipart.Reader, f *Form, fs afero.Fs, names random.Random) error {
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read multipart: %w", err)
		}

		field := part.FormName()
		if field == "" {
			_ = part.Close()
			continue
		}

		if part.FileName() == "" {
			value, err := readField(part)
			_ = part.Close()
			if err != nil {
				return err
			}
			f.Values[field] = value
			continue
		}

		file, err := storeFile(part, fs, names)
		_ = part.Close()
		if err != nil {
			return err
		}
		previous, replaced := f.Files[field]
		f.Files[field] = file
		if replaced {
			if err = previous.Remove(); err != nil {
				return err
			}
		}
	}
}

func readField(part *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
	if err != nil {
		return "", fmt.Errorf("read field %q: %w", part.FormName(), err)
	}
	if len(data) > maxFieldSize {
		return "", fmt.Errorf("%w: %s", ErrFieldTooLarge, part.FormName())
	}
	return string(data), nil
}

func storeFile(part *multipart.Part, fs afero.Fs, names random.Random) (UploadedFile, error) {
	name, err := names.StorageName(part.FileName())
	if err != nil {
		return UploadedFile{}, fmt.Errorf("name upload: %w", err)
	}

	dst, err := fs.Create(name)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, part)
	if err != nil {
		_ = fs.Remove(name)
		return UploadedFile{}, fmt.Errorf("store upload %q: %w", part.FileName(), err)
	}

	mediaType := part.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	return UploadedFile{
		Field:     part.FormName(),
		Filename:  part.FileName(),
		MediaType: strings.TrimSpace(mediaType),
		Size:      size,
		Path:      name,
		fs:        fs,
	}, nil
}

func flatten(values url.Values) map[string]string {
	flat := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) == 0 {
			continue
		}
		flat[k] = v[len(v)-1]
	}
	return flat
}

package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	ErrBodyTooLarge  = errors.New("request body exceeds buffer size")
	ErrInvalidLength = errors.New("invalid content length")
	ErrClosed        = errors.New("stream is closed")
)

// Stream is a request body held in memory. It can be rewound, so the same
// body can be parsed as a form and still be read by a handler.
type Stream interface {
	io.ReadSeekCloser
	Size() int64
	String() string
}

type memory struct {
	reader *bytes.Reader
	data   []byte
	closed bool
}

func New(data []byte) Stream {
	return &memory{reader: bytes.NewReader(data), data: data}
}

func Empty() Stream {
	return New(nil)
}

func (m *memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return m.reader.Read(p)
}

func (m *memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return m.reader.Seek(offset, whence)
}

func (m *memory) Close() error {
	m.closed = true
	return nil
}

func (m *memory) Size() int64 {
	return int64(len(m.data))
}

func (m *memory) String() string {
	return string(m.data)
}

type Factory interface {
	CreateStream() Stream
}

type factory struct {
	data []byte
}

// NewFactory reads contentLength bytes from r up front. The returned
// factory hands out independent streams over the same bytes.
func NewFactory(r io.Reader, contentLength int64, limit int) (Factory, error) {
	if contentLength < 0 {
		return nil, ErrInvalidLength
	}
	if contentLength > int64(limit) {
		return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, contentLength, limit)
	}

	data := make([]byte, contentLength)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &factory{data: data}, nil
}

func (f *factory) CreateStream() Stream {
	return New(f.data)
}

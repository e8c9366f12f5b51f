package header

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

var (
	ErrMissingMethod  = errors.New("invalid start line: missing method")
	ErrMissingVersion = errors.New("invalid start line: missing version")
)

type StartLine struct {
	Method  string
	Target  string
	Version string
}

func ParseStartLine(startLine []byte) (StartLine, error) {
	firstSpace := bytes.IndexByte(startLine, ' ')
	if firstSpace == -1 {
		return StartLine{}, ErrMissingMethod
	}

	secondSpace := bytes.IndexByte(startLine[firstSpace+1:], ' ')
	if secondSpace == -1 {
		return StartLine{}, ErrMissingVersion
	}
	secondSpace += firstSpace + 1

	return StartLine{
		Method:  string(startLine[:firstSpace]),
		Target:  string(startLine[firstSpace+1 : secondSpace]),
		Version: string(startLine[secondSpace+1:]),
	}, nil
}

// ReadRequest consumes a request head from br, leaving br positioned at the
// first byte of the body.
func ReadRequest(br *bufio.Reader) (StartLine, Headers, error) {
	startLineBytes, err := br.ReadSlice('\n')
	if err != nil {
		return StartLine{}, nil, err
	}

	startLine, err := ParseStartLine(bytes.TrimRight(startLineBytes, "\r\n"))
	if err != nil {
		return StartLine{}, nil, err
	}

	hs := New()
	for {
		lineBytes, err := br.ReadSlice('\n')
		if err != nil {
			return StartLine{}, nil, err
		}

		lineBytes = bytes.TrimRight(lineBytes, "\r\n")
		if len(lineBytes) == 0 {
			break
		}

		addHeaderLine(lineBytes, hs)
	}

	return startLine, hs, nil
}

func addHeaderLine(line []byte, hs Headers) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return
	}

	key := bytes.TrimSpace(line[:colonIdx])
	value := bytes.TrimSpace(line[colonIdx+1:])
	hs.Add(string(key), string(value))
}

// Write serializes a response or request head. Headers are written in
// normalized-name order, one line per value.
func Write(w io.Writer, startLine string, hs Headers) error {
	var buf bytes.Buffer
	buf.WriteString(startLine)
	buf.WriteString("\r\n")

	impl, ok := hs.(*headers)
	all := hs.All()
	for _, key := range slices.Sorted(maps.Keys(all)) {
		values := all[key]
		name := key
		if ok {
			if h, found := impl.header(key); found {
				name = h.Name()
			}
		}
		for _, v := range values {
			fmt.Fprintf(&buf, "%s: %s\r\n", name, v)
		}
	}

	buf.WriteString("\r\n")
	_, err := w.Write(buf.Bytes())
	return err
}

type Factory interface {
	Create() Headers
}

type factory struct {
	headers Headers
}

// NewFactory returns a factory handing out copies of hs.
func NewFactory(hs Headers) Factory {
	return &factory{headers: hs}
}

func (f *factory) Create() Headers {
	return f.headers.Clone()
}

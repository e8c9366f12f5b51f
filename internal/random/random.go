package random

import (
	"crypto/rand"
	"errors"
	"io"
	"path"
	"strings"
)

var ErrInvalidLength = errors.New("invalid length")

const storageNameLength = 24

// Random produces names for files stored on behalf of clients.
type Random interface {
	String(length int) (string, error)
	StorageName(clientFilename string) (string, error)
}

type random struct {
	reader io.Reader
}

func New() Random {
	return &random{reader: rand.Reader}
}

func (ran *random) String(length int) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)

	if _, err := io.ReadFull(ran.reader, b); err != nil {
		return "", err
	}

	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b), nil
}

// StorageName returns a random name that keeps the lower-cased extension of
// the client supplied filename. Nothing else of the client name survives.
func (ran *random) StorageName(clientFilename string) (string, error) {
	name, err := ran.String(storageNameLength)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.ReplaceAll(clientFilename, "\\", "/")))
	if len(ext) > 1 && isSafeExt(ext[1:]) {
		name += ext
	}
	return name, nil
}

func isSafeExt(ext string) bool {
	if len(ext) > 10 {
		return false
	}
	for _, c := range ext {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

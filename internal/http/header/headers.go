package header

import "strings"

const (
	Cookie      = "Cookie"
	ContentType = "Content-Type"
	Host        = "Host"

	cookieSeparator = "; "
)

// Headers is a case-insensitive, multi-valued header collection.
//
// Set, Add and Remove mutate the receiver in place and return it for
// chaining. A collection must have a single owner at a time; anything that
// hands out a modified copy of its owner (see request.Request) has to Clone
// the collection first.
type Headers interface {
	Set(name string, values ...string) Headers
	Add(name string, values ...string) Headers
	Remove(name string) Headers
	All() map[string][]string
	Values(name string) []string
	Line(name string) string
	Cookies() Cookies
	ContentType() string
	Clone() Headers
}

// Cookies maps cookie names to values as sent in the Cookie header.
type Cookies map[string]string

type headers struct {
	entries map[string]*Header
}

func New() Headers {
	return &headers{entries: make(map[string]*Header, 16)}
}

func (hs *headers) Set(name string, values ...string) Headers {
	hs.entries[normalize(name)] = newHeader(name, ownValues(values))
	return hs
}

func (hs *headers) Add(name string, values ...string) Headers {
	existing, ok := hs.entries[normalize(name)]
	if !ok {
		return hs.Set(name, values...)
	}

	for _, v := range values {
		existing.AddValue(v)
	}
	return hs
}

func (hs *headers) Remove(name string) Headers {
	delete(hs.entries, normalize(name))
	return hs
}

func (hs *headers) All() map[string][]string {
	all := make(map[string][]string, len(hs.entries))
	for key, h := range hs.entries {
		all[key] = ownValues(h.values)
	}
	return all
}

func (hs *headers) Values(name string) []string {
	h, ok := hs.entries[normalize(name)]
	if !ok {
		return []string{}
	}
	return ownValues(h.values)
}

func (hs *headers) Line(name string) string {
	return strings.Join(hs.Values(name), ",")
}

// Cookies parses the first Cookie value only. Pairs that do not split into
// exactly one name and one value are dropped.
func (hs *headers) Cookies() Cookies {
	cookies := Cookies{}

	values := hs.Values(Cookie)
	if len(values) == 0 {
		return cookies
	}

	for _, pair := range strings.Split(values[0], cookieSeparator) {
		parts := strings.Split(pair, "=")
		if len(parts) != 2 {
			continue
		}
		cookies[parts[0]] = parts[1]
	}
	return cookies
}

// ContentType returns the media type of the last Content-Type value,
// without parameters.
func (hs *headers) ContentType() string {
	contentType := ""
	for _, v := range hs.Values(ContentType) {
		contentType, _, _ = strings.Cut(v, ";")
	}
	return contentType
}

func (hs *headers) Clone() Headers {
	entries := make(map[string]*Header, len(hs.entries))
	for key, h := range hs.entries {
		entries[key] = h.clone()
	}
	return &headers{entries: entries}
}

func (hs *headers) header(name string) (*Header, bool) {
	h, ok := hs.entries[normalize(name)]
	return h, ok
}

func ownValues(values []string) []string {
	owned := make([]string, len(values))
	copy(owned, values)
	return owned
}

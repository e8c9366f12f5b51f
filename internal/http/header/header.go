package header

import "strings"

// Header is a single named header entry. The name keeps the casing it was
// first stored with; lookups use the lower-cased form.
type Header struct {
	name           string
	normalizedName string
	values         []string
}

func newHeader(name string, values []string) *Header {
	return &Header{
		name:           name,
		normalizedName: normalize(name),
		values:         values,
	}
}

func (h *Header) Name() string {
	return h.name
}

func (h *Header) NormalizedName() string {
	return h.normalizedName
}

func (h *Header) Values() []string {
	return ownValues(h.values)
}

func (h *Header) SetValues(values ...string) *Header {
	h.values = ownValues(values)
	return h
}

func (h *Header) AddValue(value string) *Header {
	h.values = append(h.values, value)
	return h
}

func (h *Header) clone() *Header {
	values := make([]string, len(h.values))
	copy(values, h.values)
	return &Header{
		name:           h.name,
		normalizedName: h.normalizedName,
		values:         values,
	}
}

func normalize(name string) string {
	return strings.ToLower(name)
}

package request

import (
	"httpmsg/internal/http/form"
	"httpmsg/internal/http/header"
	"httpmsg/internal/http/stream"

	"github.com/stretchr/testify/mock"
)

type mockHeaders struct {
	mock.Mock
}

func (m *mockHeaders) Set(name string, values ...string) header.Headers {
	m.Called(name, values)
	return m
}

func (m *mockHeaders) Add(name string, values ...string) header.Headers {
	m.Called(name, values)
	return m
}

func (m *mockHeaders) Remove(name string) header.Headers {
	m.Called(name)
	return m
}

func (m *mockHeaders) All() map[string][]string {
	return m.Called().Get(0).(map[string][]string)
}

func (m *mockHeaders) Values(name string) []string {
	return m.Called(name).Get(0).([]string)
}

func (m *mockHeaders) Line(name string) string {
	return m.Called(name).String(0)
}

func (m *mockHeaders) Cookies() header.Cookies {
	return m.Called().Get(0).(header.Cookies)
}

func (m *mockHeaders) ContentType() string {
	return m.Called().String(0)
}

func (m *mockHeaders) Clone() header.Headers {
	return m.Called().Get(0).(header.Headers)
}

type mockURI struct {
	mock.Mock
}

func (m *mockURI) Scheme() string { return m.Called().String(0) }
func (m *mockURI) Host() string   { return m.Called().String(0) }
func (m *mockURI) Port() string   { return m.Called().String(0) }
func (m *mockURI) Path() string   { return m.Called().String(0) }
func (m *mockURI) Query() string  { return m.Called().String(0) }
func (m *mockURI) String() string { return m.Called().String(0) }

// newURI returns a URI mock answering Path, Query and Host with the given
// values and anything else with an empty string.
func newURI(path, query, host string) *mockURI {
	u := new(mockURI)
	u.On("Path").Return(path).Maybe()
	u.On("Query").Return(query).Maybe()
	u.On("Host").Return(host).Maybe()
	u.On("Scheme").Return("").Maybe()
	u.On("Port").Return("").Maybe()
	u.On("String").Return("").Maybe()
	return u
}

type mockHeadersFactory struct {
	mock.Mock
}

func (m *mockHeadersFactory) Create() header.Headers {
	return m.Called().Get(0).(header.Headers)
}

type mockStreamFactory struct {
	mock.Mock
}

func (m *mockStreamFactory) CreateStream() stream.Stream {
	return m.Called().Get(0).(stream.Stream)
}

type mockFormSource struct {
	mock.Mock
}

func (m *mockFormSource) PostedForm() map[string]string {
	return m.Called().Get(0).(map[string]string)
}

func (m *mockFormSource) UploadedFiles() map[string]form.UploadedFile {
	return m.Called().Get(0).(map[string]form.UploadedFile)
}

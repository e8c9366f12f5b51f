package transport

import (
	"bytes"
	"net"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) HTTPPort() string     { return m.Called().String(0) }
func (m *MockConfig) BufferSize() int      { return m.Called().Int(0) }
func (m *MockConfig) LogLevel() string     { return m.Called().String(0) }
func (m *MockConfig) UploadDir() string    { return m.Called().String(0) }
func (m *MockConfig) TrustForwarded() bool { return m.Called().Bool(0) }
func (m *MockConfig) PprofEnabled() bool   { return m.Called().Bool(0) }
func (m *MockConfig) PprofPort() string    { return m.Called().String(0) }

type MockConn struct {
	mock.Mock
	ReadBuffer *bytes.Buffer
}

func (m *MockConn) LocalAddr() net.Addr {
	args := m.Called()
	return args.Get(0).(net.Addr)
}

func (m *MockConn) SetDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockConn) SetReadDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockConn) SetWriteDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockConn) Read(b []byte) (n int, err error) {
	if m.ReadBuffer != nil {
		return m.ReadBuffer.Read(b)
	}
	args := m.Called(b)
	return args.Int(0), args.Error(1)
}

func (m *MockConn) Write(b []byte) (n int, err error) {
	args := m.Called(b)
	if args.Int(0) == -1 {
		return len(b), args.Error(1)
	}
	return args.Int(0), args.Error(1)
}

func (m *MockConn) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockConn) RemoteAddr() net.Addr {
	args := m.Called()
	return args.Get(0).(net.Addr)
}

type wrappedConn struct {
	net.Conn
	remoteAddr net.Addr
}

func (c *wrappedConn) RemoteAddr() net.Addr {
	return c.remoteAddr
}

type mockListener struct {
	mock.Mock
}

func (m *mockListener) Accept() (net.Conn, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(net.Conn), args.Error(1)
}

func (m *mockListener) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockListener) Addr() net.Addr {
	args := m.Called()
	return args.Get(0).(net.Addr)
}

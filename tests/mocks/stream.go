package mocks

import (
	"io"
	"sync"
	"time"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/types"
)

// MockStream 模拟 Stream 接口实现
type MockStream struct {
	mu sync.Mutex

	// 数据存储
	ReadData  []byte // 用于 Read 的预设数据
	WriteData []byte // 写入的数据会追加到这里
	ReadPos   int    // 当前读取位置

	// 状态
	Closed      bool
	ResetCalled bool
	ProtocolID  types.ProtocolID
	ConnValue   interfaces.Connection
	Deadline    time.Time

	// 可覆盖的方法
	ReadFunc        func(p []byte) (n int, err error)
	WriteFunc       func(p []byte) (n int, err error)
	CloseFunc       func() error
	ResetFunc       func() error
	SetDeadlineFunc func(t time.Time) error
}

var _ interfaces.Stream = (*MockStream)(nil)

// NewMockStream 创建带有默认值的 MockStream
func NewMockStream() *MockStream {
	return &MockStream{
		WriteData:  make([]byte, 0),
		ProtocolID: "/test/1.0.0",
	}
}

// NewMockStreamWithData 创建带有预设读取数据的 MockStream
func NewMockStreamWithData(data []byte) *MockStream {
	return &MockStream{
		ReadData:   data,
		WriteData:  make([]byte, 0),
		ProtocolID: "/test/1.0.0",
	}
}

// Read 读取数据
func (m *MockStream) Read(p []byte) (n int, err error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(p)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return 0, io.EOF
	}
	if m.ReadPos >= len(m.ReadData) {
		return 0, io.EOF
	}
	n = copy(p, m.ReadData[m.ReadPos:])
	m.ReadPos += n
	return n, nil
}

// Write 写入数据
func (m *MockStream) Write(p []byte) (n int, err error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(p)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return 0, io.ErrClosedPipe
	}
	m.WriteData = append(m.WriteData, p...)
	return len(p), nil
}

// Close 关闭流
func (m *MockStream) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true
	return nil
}

// Reset 重置流
func (m *MockStream) Reset() error {
	if m.ResetFunc != nil {
		return m.ResetFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true
	m.ResetCalled = true
	return nil
}

// SetDeadline 设置读写超时
func (m *MockStream) SetDeadline(t time.Time) error {
	if m.SetDeadlineFunc != nil {
		return m.SetDeadlineFunc(t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deadline = t
	return nil
}

// Protocol 返回流使用的协议 ID
func (m *MockStream) Protocol() types.ProtocolID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ProtocolID
}

// SetProtocol 设置流使用的协议 ID
func (m *MockStream) SetProtocol(proto types.ProtocolID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProtocolID = proto
}

// Conn 返回底层连接
func (m *MockStream) Conn() interfaces.Connection {
	return m.ConnValue
}

// Written 返回当前已写入的数据副本
func (m *MockStream) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.WriteData))
	copy(out, m.WriteData)
	return out
}

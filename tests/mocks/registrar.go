package mocks

import (
	"sync"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/types"
)

// MockRegistrar 模拟 Registrar 接口实现
type MockRegistrar struct {
	mu sync.Mutex

	Handlers map[types.ProtocolID]interfaces.StreamHandler
	Caps     map[types.ProtocolID]interfaces.StreamCaps

	// 可覆盖的方法
	HandleFunc   func(proto types.ProtocolID, handler interfaces.StreamHandler, caps interfaces.StreamCaps) error
	UnhandleFunc func(proto types.ProtocolID) error
}

var _ interfaces.Registrar = (*MockRegistrar)(nil)

// NewMockRegistrar 创建 MockRegistrar
func NewMockRegistrar() *MockRegistrar {
	return &MockRegistrar{
		Handlers: make(map[types.ProtocolID]interfaces.StreamHandler),
		Caps:     make(map[types.ProtocolID]interfaces.StreamCaps),
	}
}

// Handle 注册协议处理器
func (m *MockRegistrar) Handle(proto types.ProtocolID, handler interfaces.StreamHandler, caps interfaces.StreamCaps) error {
	if m.HandleFunc != nil {
		return m.HandleFunc(proto, handler, caps)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Handlers[proto] = handler
	m.Caps[proto] = caps
	return nil
}

// Unhandle 注销协议处理器
func (m *MockRegistrar) Unhandle(proto types.ProtocolID) error {
	if m.UnhandleFunc != nil {
		return m.UnhandleFunc(proto)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Handlers, proto)
	delete(m.Caps, proto)
	return nil
}

// Handler 返回已注册的处理器
func (m *MockRegistrar) Handler(proto types.ProtocolID) (interfaces.StreamHandler, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.Handlers[proto]
	return h, ok
}

// Registered 检查协议是否已注册
func (m *MockRegistrar) Registered(proto types.ProtocolID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.Handlers[proto]
	return ok
}

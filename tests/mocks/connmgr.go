package mocks

import (
	"sync"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/types"
)

// MockConnManager 模拟 ConnManager 接口实现
type MockConnManager struct {
	mu sync.Mutex

	Conns []interfaces.Connection
}

var _ interfaces.ConnManager = (*MockConnManager)(nil)

// NewMockConnManager 创建 MockConnManager
func NewMockConnManager(conns ...interfaces.Connection) *MockConnManager {
	return &MockConnManager{Conns: conns}
}

// Add 添加连接
func (m *MockConnManager) Add(conn interfaces.Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conns = append(m.Conns, conn)
}

// Connections 返回当前所有连接
func (m *MockConnManager) Connections() []interfaces.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]interfaces.Connection, len(m.Conns))
	copy(out, m.Conns)
	return out
}

// ConnsToPeer 返回到指定节点的所有连接
func (m *MockConnManager) ConnsToPeer(peerID types.PeerID) []interfaces.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []interfaces.Connection
	for _, c := range m.Conns {
		if c.RemotePeer() == peerID {
			out = append(out, c)
		}
	}
	return out
}

package mocks

import (
	"context"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/types"
)

// MockConnection 模拟 Connection 接口实现
type MockConnection struct {
	LocalID    types.PeerID
	RemoteID   types.PeerID
	RemoteAddr types.Multiaddr
	Closed     bool

	// 可覆盖的方法
	NewStreamFunc func(ctx context.Context) (interfaces.Stream, error)
}

var _ interfaces.Connection = (*MockConnection)(nil)

// NewMockConnection 创建 MockConnection
func NewMockConnection(local, remote types.PeerID) *MockConnection {
	return &MockConnection{
		LocalID:  local,
		RemoteID: remote,
	}
}

// LocalPeer 返回本地节点 ID
func (m *MockConnection) LocalPeer() types.PeerID {
	return m.LocalID
}

// RemotePeer 返回远端节点 ID
func (m *MockConnection) RemotePeer() types.PeerID {
	return m.RemoteID
}

// RemoteMultiaddr 返回远端多地址
func (m *MockConnection) RemoteMultiaddr() types.Multiaddr {
	return m.RemoteAddr
}

// NewStream 在此连接上创建新流
func (m *MockConnection) NewStream(ctx context.Context) (interfaces.Stream, error) {
	if m.NewStreamFunc != nil {
		return m.NewStreamFunc(ctx)
	}
	stream := NewMockStream()
	stream.ConnValue = m
	return stream, nil
}

// Close 关闭连接
func (m *MockConnection) Close() error {
	m.Closed = true
	return nil
}

// IsClosed 检查连接是否已关闭
func (m *MockConnection) IsClosed() bool {
	return m.Closed
}

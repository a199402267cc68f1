package mocks

import (
	"sync"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/types"
)

// MockAddressManager 模拟 AddressManager 接口实现
type MockAddressManager struct {
	mu sync.Mutex

	ListenAddrs  []types.Multiaddr
	ObservedList []types.Multiaddr

	// 可覆盖的方法
	AddObservedAddrFunc func(addr types.Multiaddr) error
}

var _ interfaces.AddressManager = (*MockAddressManager)(nil)

// NewMockAddressManager 创建 MockAddressManager
func NewMockAddressManager(listen ...types.Multiaddr) *MockAddressManager {
	return &MockAddressManager{
		ListenAddrs: listen,
	}
}

// Addresses 返回当前监听地址列表
func (m *MockAddressManager) Addresses() []types.Multiaddr {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Multiaddr, len(m.ListenAddrs))
	copy(out, m.ListenAddrs)
	return out
}

// ObservedAddrs 返回当前已记录的观测地址列表
func (m *MockAddressManager) ObservedAddrs() []types.Multiaddr {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Multiaddr, len(m.ObservedList))
	copy(out, m.ObservedList)
	return out
}

// AddObservedAddr 添加一个观测地址
func (m *MockAddressManager) AddObservedAddr(addr types.Multiaddr) error {
	if m.AddObservedAddrFunc != nil {
		return m.AddObservedAddrFunc(addr)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ObservedList = append(m.ObservedList, addr)
	return nil
}

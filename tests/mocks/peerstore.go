package mocks

import (
	"errors"
	"sync"
	"time"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/lib/record"
	"github.com/dep2p/go-identify/pkg/types"
)

// ErrNotFound 查询的条目不存在
var ErrNotFound = errors.New("mocks: not found")

// MockPeerstore 模拟 Peerstore 接口实现
//
// 内存实现，带真实的 ConsumePeerRecord 序列号语义，
// 接受的记录以其地址集合覆盖地址簿。
type MockPeerstore struct {
	mu sync.Mutex

	AddrsMap     map[types.PeerID][]types.Multiaddr
	KeysMap      map[types.PeerID]identity.PublicKey
	ProtocolsMap map[types.PeerID][]types.ProtocolID
	MetadataMap  map[types.PeerID]map[string]interface{}
	RecordsMap   map[types.PeerID]*record.Envelope
	SeqMap       map[types.PeerID]uint64

	// 可覆盖的方法
	ConsumePeerRecordFunc func(env *record.Envelope, ttl time.Duration) (bool, error)
	PutFunc               func(peerID types.PeerID, key string, val interface{}) error
	SetProtocolsFunc      func(peerID types.PeerID, protocols ...types.ProtocolID) error
}

var _ interfaces.Peerstore = (*MockPeerstore)(nil)

// NewMockPeerstore 创建 MockPeerstore
func NewMockPeerstore() *MockPeerstore {
	return &MockPeerstore{
		AddrsMap:     make(map[types.PeerID][]types.Multiaddr),
		KeysMap:      make(map[types.PeerID]identity.PublicKey),
		ProtocolsMap: make(map[types.PeerID][]types.ProtocolID),
		MetadataMap:  make(map[types.PeerID]map[string]interface{}),
		RecordsMap:   make(map[types.PeerID]*record.Envelope),
		SeqMap:       make(map[types.PeerID]uint64),
	}
}

// ============================================================================
//                              AddrBook
// ============================================================================

// AddAddrs 添加节点地址
func (m *MockPeerstore) AddAddrs(peerID types.PeerID, addrs []types.Multiaddr, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.AddrsMap[peerID]
	for _, a := range addrs {
		found := false
		for _, e := range existing {
			if e == a {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, a)
		}
	}
	m.AddrsMap[peerID] = existing
}

// SetAddrs 设置节点地址（覆盖现有）
func (m *MockPeerstore) SetAddrs(peerID types.PeerID, addrs []types.Multiaddr, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Multiaddr, len(addrs))
	copy(out, addrs)
	m.AddrsMap[peerID] = out
}

// Addrs 获取节点地址
func (m *MockPeerstore) Addrs(peerID types.PeerID) []types.Multiaddr {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Multiaddr, len(m.AddrsMap[peerID]))
	copy(out, m.AddrsMap[peerID])
	return out
}

// ClearAddrs 清除节点地址
func (m *MockPeerstore) ClearAddrs(peerID types.PeerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.AddrsMap, peerID)
}

// ============================================================================
//                              CertifiedAddrBook
// ============================================================================

// ConsumePeerRecord 提交签名地址记录
//
// 序列号严格大于已存储记录时接受，并以记录地址覆盖地址簿。
func (m *MockPeerstore) ConsumePeerRecord(env *record.Envelope, ttl time.Duration) (bool, error) {
	if m.ConsumePeerRecordFunc != nil {
		return m.ConsumePeerRecordFunc(env, ttl)
	}

	rec, err := env.Record()
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if stored, ok := m.SeqMap[rec.PeerID]; ok && rec.Seq <= stored {
		return false, nil
	}

	m.SeqMap[rec.PeerID] = rec.Seq
	m.RecordsMap[rec.PeerID] = env

	out := make([]types.Multiaddr, len(rec.Addrs))
	copy(out, rec.Addrs)
	m.AddrsMap[rec.PeerID] = out

	return true, nil
}

// GetPeerRecord 返回节点当前的签名地址记录信封
func (m *MockPeerstore) GetPeerRecord(peerID types.PeerID) *record.Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RecordsMap[peerID]
}

// ============================================================================
//                              KeyBook
// ============================================================================

// PubKey 获取节点公钥
func (m *MockPeerstore) PubKey(peerID types.PeerID) (identity.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pk, ok := m.KeysMap[peerID]
	if !ok {
		return nil, ErrNotFound
	}
	return pk, nil
}

// AddPubKey 添加节点公钥
func (m *MockPeerstore) AddPubKey(peerID types.PeerID, pubKey identity.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeysMap[peerID] = pubKey
	return nil
}

// ============================================================================
//                              ProtoBook
// ============================================================================

// GetProtocols 获取节点支持的协议
func (m *MockPeerstore) GetProtocols(peerID types.PeerID) ([]types.ProtocolID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.ProtocolID, len(m.ProtocolsMap[peerID]))
	copy(out, m.ProtocolsMap[peerID])
	return out, nil
}

// SetProtocols 设置节点支持的协议（覆盖）
func (m *MockPeerstore) SetProtocols(peerID types.PeerID, protocols ...types.ProtocolID) error {
	if m.SetProtocolsFunc != nil {
		return m.SetProtocolsFunc(peerID, protocols...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.ProtocolID, len(protocols))
	copy(out, protocols)
	m.ProtocolsMap[peerID] = out
	return nil
}

// SupportsProtocols 检查节点是否支持指定协议
func (m *MockPeerstore) SupportsProtocols(peerID types.PeerID, protocols ...types.ProtocolID) ([]types.ProtocolID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.ProtocolID
	for _, want := range protocols {
		for _, have := range m.ProtocolsMap[peerID] {
			if want == have {
				out = append(out, want)
				break
			}
		}
	}
	return out, nil
}

// ============================================================================
//                              PeerMetadata
// ============================================================================

// Get 获取元数据
func (m *MockPeerstore) Get(peerID types.PeerID, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vals, ok := m.MetadataMap[peerID]
	if !ok {
		return nil, ErrNotFound
	}
	val, ok := vals[key]
	if !ok {
		return nil, ErrNotFound
	}
	return val, nil
}

// Put 存储元数据
func (m *MockPeerstore) Put(peerID types.PeerID, key string, val interface{}) error {
	if m.PutFunc != nil {
		return m.PutFunc(peerID, key, val)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MetadataMap[peerID] == nil {
		m.MetadataMap[peerID] = make(map[string]interface{})
	}
	m.MetadataMap[peerID][key] = val
	return nil
}

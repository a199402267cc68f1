// Package interfaces 定义 go-identify 公共接口
//
// 本文件定义 Peerstore 接口，管理节点信息存储。
package interfaces

import (
	"time"

	"github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/lib/record"
	"github.com/dep2p/go-identify/pkg/types"
)

// 地址 TTL 常量
const (
	// ConnectedAddrTTL 已连接节点地址的有效期
	ConnectedAddrTTL = 30 * time.Minute

	// RecentlyConnectedAddrTTL 最近连接过节点地址的有效期
	RecentlyConnectedAddrTTL = 15 * time.Minute

	// PermanentAddrTTL 永久地址的有效期
	PermanentAddrTTL = time.Duration(1<<63 - 1)
)

// 元数据键
const (
	// MetadataAgentVersion 实现版本串的元数据键
	MetadataAgentVersion = "AgentVersion"

	// MetadataProtocolVersion 协议版本串的元数据键
	MetadataProtocolVersion = "ProtocolVersion"
)

// Peerstore 定义节点信息存储接口
//
// Peerstore 存储节点的地址、密钥、协议支持和元数据。
// 实现必须保证 ConsumePeerRecord 对并发调用方原子：
// 序列号比较和地址替换不可交错。
type Peerstore interface {
	AddrBook
	CertifiedAddrBook
	KeyBook
	ProtoBook
	PeerMetadata
}

// AddrBook 定义地址簿接口
type AddrBook interface {
	// AddAddrs 添加节点地址
	AddAddrs(peerID types.PeerID, addrs []types.Multiaddr, ttl time.Duration)

	// SetAddrs 设置节点地址（覆盖现有）
	SetAddrs(peerID types.PeerID, addrs []types.Multiaddr, ttl time.Duration)

	// Addrs 获取节点地址
	Addrs(peerID types.PeerID) []types.Multiaddr

	// ClearAddrs 清除节点地址
	ClearAddrs(peerID types.PeerID)
}

// CertifiedAddrBook 定义签名地址簿接口
//
// 在普通地址簿之上维护经过信封验证的地址记录。
type CertifiedAddrBook interface {
	// ConsumePeerRecord 提交一个已验证的签名地址记录
	//
	// 仅当记录的序列号严格大于已存储记录时接受；接受后记录中的
	// 地址以给定 TTL 替换该节点的地址集合。返回是否接受。
	ConsumePeerRecord(env *record.Envelope, ttl time.Duration) (bool, error)

	// GetPeerRecord 返回节点当前的签名地址记录信封
	//
	// 没有记录时返回 nil。
	GetPeerRecord(peerID types.PeerID) *record.Envelope
}

// KeyBook 定义密钥簿接口
type KeyBook interface {
	// PubKey 获取节点公钥
	PubKey(peerID types.PeerID) (identity.PublicKey, error)

	// AddPubKey 添加节点公钥
	AddPubKey(peerID types.PeerID, pubKey identity.PublicKey) error
}

// ProtoBook 定义协议簿接口
type ProtoBook interface {
	// GetProtocols 获取节点支持的协议
	GetProtocols(peerID types.PeerID) ([]types.ProtocolID, error)

	// SetProtocols 设置节点支持的协议（覆盖）
	SetProtocols(peerID types.PeerID, protocols ...types.ProtocolID) error

	// SupportsProtocols 检查节点是否支持指定协议，返回支持的子集
	SupportsProtocols(peerID types.PeerID, protocols ...types.ProtocolID) ([]types.ProtocolID, error)
}

// PeerMetadata 定义节点元数据存储接口
type PeerMetadata interface {
	// Get 获取元数据
	Get(peerID types.PeerID, key string) (interface{}, error)

	// Put 存储元数据
	Put(peerID types.PeerID, key string, val interface{}) error
}

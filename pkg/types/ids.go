package types

import (
	"errors"

	"github.com/mr-tron/base58"
)

// ============================================================================
//                              PeerID - 节点标识
// ============================================================================

// PeerID 节点唯一标识符
//
// 由公钥派生（序列化公钥的 SHA256 哈希），外部表示为 Base58 编码。
// 空字符串表示未知节点。
type PeerID string

// EmptyPeerID 空节点 ID
const EmptyPeerID PeerID = ""

var (
	// ErrEmptyPeerID 空节点 ID
	ErrEmptyPeerID = errors.New("empty peer ID")

	// ErrInvalidPeerID 无效的节点 ID
	ErrInvalidPeerID = errors.New("invalid peer ID: must be base58")
)

// String 返回 PeerID 的字符串表示
func (id PeerID) String() string {
	return string(id)
}

// ShortString 返回 PeerID 的短字符串表示
//
// 格式：Base58 前 8 个字符，用于日志中的简短标识。
func (id PeerID) ShortString() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// IsEmpty 检查 PeerID 是否为空
func (id PeerID) IsEmpty() bool {
	return id == EmptyPeerID
}

// Equal 比较两个 PeerID 是否相等
func (id PeerID) Equal(other PeerID) bool {
	return id == other
}

// ParsePeerID 从字符串解析 PeerID
//
// 仅接受合法的 Base58 编码（用户输入和配置边界使用）。
func ParsePeerID(s string) (PeerID, error) {
	if s == "" {
		return EmptyPeerID, ErrEmptyPeerID
	}
	if _, err := base58.Decode(s); err != nil {
		return EmptyPeerID, ErrInvalidPeerID
	}
	return PeerID(s), nil
}

// ============================================================================
//                              Base58 编解码
// ============================================================================

// Base58Encode 将字节切片编码为 Base58 字符串
func Base58Encode(input []byte) string {
	return base58.Encode(input)
}

// Base58Decode 将 Base58 字符串解码为字节切片
func Base58Decode(input string) ([]byte, error) {
	return base58.Decode(input)
}

// ============================================================================
//                              ProtocolID - 协议标识
// ============================================================================

// ProtocolID 协议标识符
// 格式: /name/version，如 /ipfs/id/1.0.0
type ProtocolID string

// String 返回协议 ID 字符串
func (p ProtocolID) String() string {
	return string(p)
}

// ProtocolIDStrings 将协议 ID 列表转换为字符串列表
func ProtocolIDStrings(ids []ProtocolID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// ProtocolIDsFromStrings 从字符串列表构建协议 ID 列表
func ProtocolIDsFromStrings(strs []string) []ProtocolID {
	out := make([]ProtocolID, len(strs))
	for i, s := range strs {
		out[i] = ProtocolID(s)
	}
	return out
}

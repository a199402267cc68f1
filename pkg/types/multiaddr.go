package types

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
//                              Multiaddr - 统一地址类型
// ============================================================================

// Multiaddr 统一地址类型（值对象）
//
// Multiaddr 是模块内部唯一的地址表示形式。
// 所有用于地址簿/签名记录/观测地址的地址必须是 Multiaddr 类型。
//
// 约束：
//   - String() 必须始终返回 canonical multiaddr（以 "/" 开头）
//   - Bytes() 返回其线上二进制形式（UTF-8 字节），与 MultiaddrFromBytes 互逆
//
// 格式示例：
//   - /ip4/192.168.1.1/tcp/4001
//   - /ip6/::1/udp/4001/quic-v1
//   - /dns4/example.com/tcp/4001
//   - /ip4/1.2.3.4/tcp/4001/p2p/QmNodeID
type Multiaddr string

// Multiaddr 错误定义
var (
	// ErrInvalidMultiaddr 无效的 multiaddr 格式
	ErrInvalidMultiaddr = errors.New("invalid multiaddr format")

	// ErrEmptyMultiaddr 空 multiaddr
	ErrEmptyMultiaddr = errors.New("empty multiaddr")

	// ErrNotMultiaddrFormat 不是 multiaddr 格式（不以 / 开头）
	ErrNotMultiaddrFormat = errors.New("not multiaddr format: must start with /")
)

// ============================================================================
//                              解析/构建
// ============================================================================

// ParseMultiaddr 解析并规范化 multiaddr
//
// 仅接受 multiaddr 格式输入（以 "/" 开头），并校验起始协议组件。
//
// 示例：
//   - "/ip4/1.2.3.4/tcp/4001" → Multiaddr
//   - "/ip4/1.2.3.4/tcp/4001/p2p/QmNode" → Multiaddr
//   - "1.2.3.4:4001" → error（不是 multiaddr 格式）
func ParseMultiaddr(s string) (Multiaddr, error) {
	if s == "" {
		return "", ErrEmptyMultiaddr
	}

	s = strings.TrimSpace(s)

	// 必须以 / 开头
	if !strings.HasPrefix(s, "/") {
		return "", ErrNotMultiaddrFormat
	}

	// 基本格式校验：检查是否包含有效的协议组件
	parts := strings.Split(s, "/")
	if len(parts) < 3 {
		return "", ErrInvalidMultiaddr
	}

	// 验证第一个组件是有效的网络类型
	switch parts[1] {
	case "ip4", "ip6", "dns4", "dns6", "dnsaddr", "p2p":
		// 有效的起始组件
	default:
		return "", fmt.Errorf("%w: unknown protocol %q", ErrInvalidMultiaddr, parts[1])
	}

	return Multiaddr(s), nil
}

// MustParseMultiaddr 解析 multiaddr，失败时 panic
//
// 仅用于常量初始化或测试代码，生产代码应使用 ParseMultiaddr。
func MustParseMultiaddr(s string) Multiaddr {
	ma, err := ParseMultiaddr(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseMultiaddr(%q): %v", s, err))
	}
	return ma
}

// MultiaddrFromBytes 从线上二进制形式解析 multiaddr
//
// 与 Bytes() 互逆，用于解码协议消息中携带的地址字段。
func MultiaddrFromBytes(b []byte) (Multiaddr, error) {
	return ParseMultiaddr(string(b))
}

// ============================================================================
//                              访问器
// ============================================================================

// String 返回 canonical multiaddr 字符串
func (m Multiaddr) String() string {
	return string(m)
}

// Bytes 返回 multiaddr 的线上二进制形式
func (m Multiaddr) Bytes() []byte {
	return []byte(m)
}

// IsEmpty 检查 multiaddr 是否为空
func (m Multiaddr) IsEmpty() bool {
	return m == ""
}

// PeerID 返回地址尾部的 /p2p/<PeerID> 组件
//
// 没有该组件时返回 EmptyPeerID。
func (m Multiaddr) PeerID() PeerID {
	parts := strings.Split(string(m), "/")
	if len(parts) >= 3 && parts[len(parts)-2] == "p2p" {
		return PeerID(parts[len(parts)-1])
	}
	return EmptyPeerID
}

// StripPeerID 返回去掉尾部 /p2p/<PeerID> 组件的地址
//
// 地址没有该组件时原样返回。
func (m Multiaddr) StripPeerID() Multiaddr {
	s := string(m)
	idx := strings.LastIndex(s, "/p2p/")
	if idx < 0 {
		return m
	}
	// 仅剥离尾部组件：/p2p/<id> 之后不能再有其他组件
	rest := s[idx+len("/p2p/"):]
	if rest == "" || strings.Contains(rest, "/") {
		return m
	}
	if idx == 0 {
		// 纯 /p2p/<id> 地址剥离后为空，保持原样
		return m
	}
	return Multiaddr(s[:idx])
}

// ============================================================================
//                              批量转换
// ============================================================================

// MultiaddrsToBytes 将地址列表转换为二进制形式列表
func MultiaddrsToBytes(addrs []Multiaddr) [][]byte {
	out := make([][]byte, len(addrs))
	for i, a := range addrs {
		out[i] = a.Bytes()
	}
	return out
}

// MultiaddrStrings 将地址列表转换为字符串列表
func MultiaddrStrings(addrs []Multiaddr) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

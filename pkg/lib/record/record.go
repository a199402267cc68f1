// Package record 实现签名地址记录
//
// 用于在 P2P 网络中安全地传播节点地址信息：
// - 信封签名防止伪造（只有私钥持有者才能创建有效记录）
// - 序列号防止重放攻击（地址簿只接受更新的记录）
// - 域分隔符防止跨协议签名复用
package record

import (
	"errors"
	"time"

	"github.com/dep2p/go-identify/pkg/types"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidRecord 地址记录数据无效
	ErrInvalidRecord = errors.New("invalid peer record data")

	// ErrEmptyPeerID 地址记录缺少节点 ID
	ErrEmptyPeerID = errors.New("peer record has no peer ID")
)

// 字段标签
const (
	tagRecordPeerID = 0x0a // field 1, wire type 2
	tagRecordSeq    = 0x10 // field 2, wire type 0 (varint)
	tagRecordAddr   = 0x1a // field 3, wire type 2 (嵌套 AddressInfo)

	tagAddrInfoMultiaddr = 0x0a // AddressInfo field 1, wire type 2
)

// ============================================================================
//                              PeerRecord - 地址记录
// ============================================================================

// PeerRecord 节点地址记录
//
// 携带单调递增序列号的监听地址声明，由信封绑定到签名公钥。
type PeerRecord struct {
	// PeerID 节点 ID
	PeerID types.PeerID

	// Seq 序列号（单调递增，用于防重放）
	Seq uint64

	// Addrs 监听地址列表
	Addrs []types.Multiaddr
}

// NewPeerRecord 创建新的地址记录
//
// 使用纳秒时间戳作为初始序列号，保证重启后新 mint 的记录仍然更新。
func NewPeerRecord(peerID types.PeerID, addrs []types.Multiaddr) *PeerRecord {
	return &PeerRecord{
		PeerID: peerID,
		Seq:    uint64(time.Now().UnixNano()),
		Addrs:  addrs,
	}
}

// IsNewerThan 检查记录是否比另一个记录更新
//
// 基于序列号比较，序列号大的更新。
func (r *PeerRecord) IsNewerThan(other *PeerRecord) bool {
	if other == nil {
		return true
	}
	return r.Seq > other.Seq
}

// ============================================================================
//                              线上编码
// ============================================================================

// Marshal 序列化地址记录
//
// protobuf wire format：
//   - Field 1 (peer_id):   bytes  - 节点 ID（Base58 字符串的 UTF-8 字节）
//   - Field 2 (seq):       varint - 序列号
//   - Field 3 (addresses): repeated message { Field 1 (multiaddr): bytes }
func (r *PeerRecord) Marshal() ([]byte, error) {
	if r.PeerID.IsEmpty() {
		return nil, ErrEmptyPeerID
	}

	result := make([]byte, 0, 16+len(r.PeerID)+len(r.Addrs)*32)

	// Field 1: peer_id
	result = append(result, tagRecordPeerID)
	result = appendVarint(result, uint64(len(r.PeerID)))
	result = append(result, r.PeerID...)

	// Field 2: seq
	if r.Seq > 0 {
		result = append(result, tagRecordSeq)
		result = appendVarint(result, r.Seq)
	}

	// Field 3: addresses
	for _, addr := range r.Addrs {
		ab := addr.Bytes()
		inner := make([]byte, 0, 2+len(ab))
		inner = append(inner, tagAddrInfoMultiaddr)
		inner = appendVarint(inner, uint64(len(ab)))
		inner = append(inner, ab...)

		result = append(result, tagRecordAddr)
		result = appendVarint(result, uint64(len(inner)))
		result = append(result, inner...)
	}

	return result, nil
}

// Unmarshal 反序列化地址记录
//
// 地址字段逐条解析，无法解析的地址条目跳过。
func (r *PeerRecord) Unmarshal(data []byte) error {
	for len(data) > 0 {
		tag, n := consumeVarint(data)
		if n < 0 {
			return ErrInvalidRecord
		}
		data = data[n:]

		fieldNum := tag >> 3
		wireType := tag & 0x07

		switch wireType {
		case 0: // varint
			v, n := consumeVarint(data)
			if n < 0 {
				return ErrInvalidRecord
			}
			data = data[n:]
			if fieldNum == 2 {
				r.Seq = v
			}

		case 2: // length-delimited
			length, n := consumeVarint(data)
			if n < 0 {
				return ErrInvalidRecord
			}
			data = data[n:]
			if uint64(len(data)) < length {
				return ErrInvalidRecord
			}
			switch fieldNum {
			case 1: // peer_id
				r.PeerID = types.PeerID(data[:length])
			case 3: // addresses
				addr, err := unmarshalAddressInfo(data[:length])
				if err == nil && !addr.IsEmpty() {
					r.Addrs = append(r.Addrs, addr)
				}
				// 其他字段静默忽略（向前兼容）
			}
			data = data[length:]

		default:
			return ErrInvalidRecord
		}
	}

	if r.PeerID.IsEmpty() {
		return ErrEmptyPeerID
	}
	return nil
}

// unmarshalAddressInfo 解析嵌套的 AddressInfo 消息
func unmarshalAddressInfo(data []byte) (types.Multiaddr, error) {
	for len(data) > 0 {
		tag, n := consumeVarint(data)
		if n < 0 {
			return "", ErrInvalidRecord
		}
		data = data[n:]

		if tag&0x07 != 2 {
			return "", ErrInvalidRecord
		}

		length, n := consumeVarint(data)
		if n < 0 {
			return "", ErrInvalidRecord
		}
		data = data[n:]
		if uint64(len(data)) < length {
			return "", ErrInvalidRecord
		}

		if tag>>3 == 1 { // multiaddr
			return types.MultiaddrFromBytes(data[:length])
		}
		data = data[length:]
	}
	return "", ErrInvalidRecord
}

// appendVarint 追加 varint 编码
func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// consumeVarint 消费 varint 编码，返回值和消费的字节数
func consumeVarint(data []byte) (uint64, int) {
	var v uint64
	for i := 0; i < len(data) && i < 10; i++ {
		b := data[i]
		v |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return v, i + 1
		}
	}
	return 0, -1
}

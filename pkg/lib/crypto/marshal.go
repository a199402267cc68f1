package crypto

import (
	"encoding/binary"
	"fmt"

	"github.com/dep2p/go-identify/pkg/interfaces/identity"
)

// ============================================================================
//                              序列化格式
// ============================================================================

// 序列化格式：
//
//   ┌─────────────────────────────────────────────────────────────┐
//   │                    公钥/私钥序列化格式                         │
//   ├─────────────────────────────────────────────────────────────┤
//   │  Type:   uint8 (KeyType)                                    │
//   │  Length: uint32 (大端序)                                     │
//   │  Data:   密钥数据                                            │
//   └─────────────────────────────────────────────────────────────┘
//
// 这是身份消息 public_key 字段与地址记录信封 public_key 字段的线上格式。

const (
	// 序列化头大小：1 字节类型 + 4 字节长度
	marshalHeaderSize = 5
)

// ============================================================================
//                              公钥序列化
// ============================================================================

// MarshalPublicKey 序列化公钥
//
// 返回格式：[Type(1)] [Length(4)] [Data(n)]
func MarshalPublicKey(key identity.PublicKey) ([]byte, error) {
	if key == nil {
		return nil, ErrNilPublicKey
	}

	raw, err := key.Raw()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
	}

	buf := make([]byte, marshalHeaderSize+len(raw))

	// 写入类型
	buf[0] = byte(key.Type())

	// 写入长度（大端序）
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(raw)))

	// 写入数据
	copy(buf[5:], raw)

	return buf, nil
}

// UnmarshalPublicKey 从字节反序列化公钥
//
// 参数格式：[Type(1)] [Length(4)] [Data(n)]
func UnmarshalPublicKey(data []byte) (identity.PublicKey, error) {
	if len(data) < marshalHeaderSize {
		return nil, fmt.Errorf("%w: data too short", ErrUnmarshalFailed)
	}

	// 读取类型
	keyType := identity.KeyType(data[0])

	// 读取长度
	length := binary.BigEndian.Uint32(data[1:5])

	// 验证数据长度
	if uint32(len(data)-marshalHeaderSize) != length {
		return nil, fmt.Errorf("%w: data length mismatch", ErrUnmarshalFailed)
	}

	raw := data[marshalHeaderSize:]

	switch keyType {
	case identity.KeyTypeEd25519:
		return UnmarshalEd25519PublicKey(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, keyType)
	}
}

// ============================================================================
//                              私钥序列化
// ============================================================================

// MarshalPrivateKey 序列化私钥
//
// 返回格式：[Type(1)] [Length(4)] [Data(n)]
func MarshalPrivateKey(key identity.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, ErrNilPrivateKey
	}

	raw, err := key.Raw()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
	}

	buf := make([]byte, marshalHeaderSize+len(raw))
	buf[0] = byte(key.Type())
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(raw)))
	copy(buf[5:], raw)

	return buf, nil
}

// UnmarshalPrivateKey 从字节反序列化私钥
func UnmarshalPrivateKey(data []byte) (identity.PrivateKey, error) {
	if len(data) < marshalHeaderSize {
		return nil, fmt.Errorf("%w: data too short", ErrUnmarshalFailed)
	}

	keyType := identity.KeyType(data[0])
	length := binary.BigEndian.Uint32(data[1:5])
	if uint32(len(data)-marshalHeaderSize) != length {
		return nil, fmt.Errorf("%w: data length mismatch", ErrUnmarshalFailed)
	}

	raw := data[marshalHeaderSize:]

	switch keyType {
	case identity.KeyTypeEd25519:
		return UnmarshalEd25519PrivateKey(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyType, keyType)
	}
}

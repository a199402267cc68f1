// Package identity 定义身份管理相关接口
//
// 身份模块负责节点的密码学身份，包括：
// - 公钥/私钥抽象
// - 签名和验证
// - 节点 ID 派生（由公钥派生，Base58 编码）
package identity

import (
	"github.com/dep2p/go-identify/pkg/types"
)

// ============================================================================
//                              KeyType - 密钥类型
// ============================================================================

// KeyType 密钥类型
//
// 值与密钥序列化格式中的类型字节保持一致：
//   - KEY_TYPE_UNSPECIFIED = 0
//   - RSA = 1
//   - Ed25519 = 2
//   - Secp256k1 = 3
//   - ECDSA = 4
type KeyType int

const (
	// KeyTypeUnspecified 未指定密钥类型
	KeyTypeUnspecified KeyType = 0
	// KeyTypeRSA RSA 密钥
	KeyTypeRSA KeyType = 1
	// KeyTypeEd25519 Ed25519 密钥（默认推荐）
	KeyTypeEd25519 KeyType = 2
	// KeyTypeSecp256k1 Secp256k1 密钥（区块链兼容）
	KeyTypeSecp256k1 KeyType = 3
	// KeyTypeECDSA ECDSA 密钥
	KeyTypeECDSA KeyType = 4
)

// String 返回密钥类型名称
func (kt KeyType) String() string {
	switch kt {
	case KeyTypeUnspecified:
		return "Unspecified"
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeEd25519:
		return "Ed25519"
	case KeyTypeSecp256k1:
		return "Secp256k1"
	case KeyTypeECDSA:
		return "ECDSA"
	default:
		return "Unknown"
	}
}

// ============================================================================
//                              PublicKey / PrivateKey 接口
// ============================================================================

// PublicKey 定义公钥接口
type PublicKey interface {
	// Raw 返回原始公钥字节
	Raw() ([]byte, error)

	// Type 返回密钥类型
	Type() KeyType

	// Equals 比较两个公钥是否相等
	Equals(other PublicKey) bool

	// Verify 使用此公钥验证签名
	Verify(data, sig []byte) (bool, error)
}

// PrivateKey 定义私钥接口
type PrivateKey interface {
	// Raw 返回原始私钥字节
	Raw() ([]byte, error)

	// Type 返回密钥类型
	Type() KeyType

	// PublicKey 返回对应的公钥
	PublicKey() PublicKey

	// Equals 比较两个私钥是否相等
	Equals(other PrivateKey) bool

	// Sign 使用此私钥签名数据
	Sign(data []byte) ([]byte, error)
}

// ============================================================================
//                              Identity 接口
// ============================================================================

// Identity 节点身份接口
//
// Identity 代表节点的密码学身份，包含公钥和私钥。
// 节点 ID 由公钥派生，是节点在网络中的唯一标识。
//
// 安全边界说明：
// - PrivateKey() 方法返回私钥对象，是系统最敏感的 API
// - 允许用途：签名地址记录、身份持久化
// - 禁止用途：日志输出、网络传输、传递给不受信任的组件
// - 推荐做法：优先使用 Sign() 方法进行签名
type Identity interface {
	// ID 返回节点 ID（由公钥派生）
	ID() types.PeerID

	// PublicKey 返回公钥
	PublicKey() PublicKey

	// PrivateKey 返回私钥
	//
	// 安全敏感：调用方应严格控制使用场景。
	PrivateKey() PrivateKey

	// Sign 使用私钥签名数据
	Sign(data []byte) ([]byte, error)

	// Verify 验证指定公钥对数据的签名是否有效
	Verify(data, signature []byte, pubKey PublicKey) (bool, error)
}

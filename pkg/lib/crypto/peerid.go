package crypto

import (
	"crypto/sha256"

	"github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/types"
)

// ============================================================================
//                              PeerID 派生
// ============================================================================

// PeerIDFromPublicKey 从公钥派生 PeerID
//
// 派生算法：Base58(SHA256(序列化公钥))
func PeerIDFromPublicKey(pub identity.PublicKey) (types.PeerID, error) {
	if pub == nil {
		return types.EmptyPeerID, ErrNilPublicKey
	}

	// 序列化公钥
	data, err := MarshalPublicKey(pub)
	if err != nil {
		return types.EmptyPeerID, err
	}

	// SHA256 哈希
	hash := sha256.Sum256(data)

	// Base58 编码
	return types.PeerID(types.Base58Encode(hash[:])), nil
}

// PeerIDFromPublicKeyBytes 从序列化公钥字节派生 PeerID
//
// 身份消息携带的 public_key 字段已经是序列化格式，直接解析后派生。
func PeerIDFromPublicKeyBytes(data []byte) (types.PeerID, error) {
	pub, err := UnmarshalPublicKey(data)
	if err != nil {
		return types.EmptyPeerID, err
	}
	return PeerIDFromPublicKey(pub)
}

// PeerIDFromPrivateKey 从私钥派生 PeerID
//
// 通过获取私钥对应的公钥，然后派生 PeerID。
func PeerIDFromPrivateKey(priv identity.PrivateKey) (types.PeerID, error) {
	if priv == nil {
		return types.EmptyPeerID, ErrNilPrivateKey
	}
	return PeerIDFromPublicKey(priv.PublicKey())
}

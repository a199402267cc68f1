package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/dep2p/go-identify/pkg/interfaces/identity"
)

// Ed25519 密钥常量
const (
	// Ed25519PrivateKeySize Ed25519 私钥大小（64 字节）
	Ed25519PrivateKeySize = ed25519.PrivateKeySize
	// Ed25519PublicKeySize Ed25519 公钥大小（32 字节）
	Ed25519PublicKeySize = ed25519.PublicKeySize
	// Ed25519SignatureSize Ed25519 签名大小（64 字节）
	Ed25519SignatureSize = ed25519.SignatureSize
)

// ============================================================================
//                              Ed25519PublicKey
// ============================================================================

// Ed25519PublicKey Ed25519 公钥实现
type Ed25519PublicKey struct {
	k ed25519.PublicKey
}

var _ identity.PublicKey = (*Ed25519PublicKey)(nil)

// Raw 返回原始公钥字节
func (k *Ed25519PublicKey) Raw() ([]byte, error) {
	buf := make([]byte, len(k.k))
	copy(buf, k.k)
	return buf, nil
}

// Type 返回密钥类型
func (k *Ed25519PublicKey) Type() identity.KeyType {
	return identity.KeyTypeEd25519
}

// Equals 比较两个公钥是否相等
//
// 使用常量时间比较以防止时序攻击。
func (k *Ed25519PublicKey) Equals(other identity.PublicKey) bool {
	ek, ok := other.(*Ed25519PublicKey)
	if !ok {
		return keyEqual(k, other)
	}
	return subtle.ConstantTimeCompare(k.k, ek.k) == 1
}

// Verify 使用此公钥验证签名
func (k *Ed25519PublicKey) Verify(data, sig []byte) (bool, error) {
	if len(sig) != Ed25519SignatureSize {
		return false, nil
	}
	return ed25519.Verify(k.k, data, sig), nil
}

// ============================================================================
//                              Ed25519PrivateKey
// ============================================================================

// Ed25519PrivateKey Ed25519 私钥实现
type Ed25519PrivateKey struct {
	k ed25519.PrivateKey
}

var _ identity.PrivateKey = (*Ed25519PrivateKey)(nil)

// Raw 返回原始私钥字节
//
// Ed25519 私钥为 64 字节，包含 32 字节私钥种子和 32 字节公钥。
func (k *Ed25519PrivateKey) Raw() ([]byte, error) {
	buf := make([]byte, len(k.k))
	copy(buf, k.k)
	return buf, nil
}

// Type 返回密钥类型
func (k *Ed25519PrivateKey) Type() identity.KeyType {
	return identity.KeyTypeEd25519
}

// PublicKey 返回对应的公钥
func (k *Ed25519PrivateKey) PublicKey() identity.PublicKey {
	return &Ed25519PublicKey{k: k.k.Public().(ed25519.PublicKey)}
}

// Equals 比较两个私钥是否相等
func (k *Ed25519PrivateKey) Equals(other identity.PrivateKey) bool {
	ek, ok := other.(*Ed25519PrivateKey)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(k.k, ek.k) == 1
}

// Sign 使用此私钥签名数据
func (k *Ed25519PrivateKey) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(k.k, data), nil
}

// ============================================================================
//                              生成与反序列化
// ============================================================================

// GenerateEd25519Key 生成 Ed25519 密钥对
//
// src 为 nil 时使用 crypto/rand。
func GenerateEd25519Key(src io.Reader) (identity.PrivateKey, identity.PublicKey, error) {
	if src == nil {
		src = rand.Reader
	}
	pub, priv, err := ed25519.GenerateKey(src)
	if err != nil {
		return nil, nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return &Ed25519PrivateKey{k: priv}, &Ed25519PublicKey{k: pub}, nil
}

// UnmarshalEd25519PublicKey 从原始字节反序列化 Ed25519 公钥
func UnmarshalEd25519PublicKey(data []byte) (identity.PublicKey, error) {
	if len(data) != Ed25519PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrInvalidKeyBytes, Ed25519PublicKeySize, len(data))
	}
	k := make(ed25519.PublicKey, Ed25519PublicKeySize)
	copy(k, data)
	return &Ed25519PublicKey{k: k}, nil
}

// UnmarshalEd25519PrivateKey 从原始字节反序列化 Ed25519 私钥
func UnmarshalEd25519PrivateKey(data []byte) (identity.PrivateKey, error) {
	if len(data) != Ed25519PrivateKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrInvalidKeyBytes, Ed25519PrivateKeySize, len(data))
	}
	k := make(ed25519.PrivateKey, Ed25519PrivateKeySize)
	copy(k, data)
	return &Ed25519PrivateKey{k: k}, nil
}

// keyEqual 通过序列化字节比较两个公钥
func keyEqual(a, b identity.PublicKey) bool {
	if a == nil || b == nil {
		return false
	}
	ab, err := MarshalPublicKey(a)
	if err != nil {
		return false
	}
	bb, err := MarshalPublicKey(b)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(ab, bb) == 1
}

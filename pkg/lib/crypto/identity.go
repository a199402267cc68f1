package crypto

import (
	"github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/types"
)

// ============================================================================
//                              节点身份实现
// ============================================================================

// nodeIdentity 基于私钥的节点身份实现
type nodeIdentity struct {
	priv identity.PrivateKey
	pub  identity.PublicKey
	id   types.PeerID
}

var _ identity.Identity = (*nodeIdentity)(nil)

// NewIdentity 从私钥创建节点身份
//
// 节点 ID 在构造时派生并缓存，身份在生命周期内不可变。
func NewIdentity(priv identity.PrivateKey) (identity.Identity, error) {
	if priv == nil {
		return nil, ErrNilPrivateKey
	}

	pub := priv.PublicKey()
	id, err := PeerIDFromPublicKey(pub)
	if err != nil {
		return nil, err
	}

	return &nodeIdentity{
		priv: priv,
		pub:  pub,
		id:   id,
	}, nil
}

// GenerateIdentity 生成全新的 Ed25519 节点身份
func GenerateIdentity() (identity.Identity, error) {
	priv, _, err := GenerateEd25519Key(nil)
	if err != nil {
		return nil, err
	}
	return NewIdentity(priv)
}

// ID 返回节点 ID
func (n *nodeIdentity) ID() types.PeerID {
	return n.id
}

// PublicKey 返回公钥
func (n *nodeIdentity) PublicKey() identity.PublicKey {
	return n.pub
}

// PrivateKey 返回私钥
func (n *nodeIdentity) PrivateKey() identity.PrivateKey {
	return n.priv
}

// Sign 使用私钥签名数据
func (n *nodeIdentity) Sign(data []byte) ([]byte, error) {
	return n.priv.Sign(data)
}

// Verify 验证指定公钥对数据的签名是否有效
func (n *nodeIdentity) Verify(data, signature []byte, pubKey identity.PublicKey) (bool, error) {
	if pubKey == nil {
		return false, ErrNilPublicKey
	}
	return pubKey.Verify(data, signature)
}

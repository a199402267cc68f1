package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/lib/crypto"
	"github.com/dep2p/go-identify/pkg/types"
)

// ============================================================================
//                              常量与错误
// ============================================================================

// PeerRecordDomain 地址记录信封的签名域分隔符
//
// 域分隔符混入待签名数据，使地址记录签名无法被复用到其他协议。
const PeerRecordDomain = "dep2p-peer-record"

// PeerRecordPayloadType 地址记录信封的负载类型标识
var PeerRecordPayloadType = []byte("/dep2p/peer-record")

var (
	// ErrInvalidEnvelope 信封数据无效
	ErrInvalidEnvelope = errors.New("invalid envelope data")

	// ErrInvalidSignature 信封签名验证失败
	ErrInvalidSignature = errors.New("invalid envelope signature")

	// ErrWrongPayloadType 信封负载类型不匹配
	ErrWrongPayloadType = errors.New("unexpected envelope payload type")

	// ErrPeerIDMismatch 记录节点 ID 与签名公钥不匹配
	ErrPeerIDMismatch = errors.New("peer record ID does not match signing key")

	// ErrEmptyDomain 签名域为空
	ErrEmptyDomain = errors.New("envelope domain must not be empty")
)

// 字段标签
const (
	tagEnvPublicKey   = 0x0a // field 1, wire type 2
	tagEnvPayloadType = 0x12 // field 2, wire type 2
	tagEnvPayload     = 0x1a // field 3, wire type 2
	tagEnvSignature   = 0x2a // field 5, wire type 2
)

// ============================================================================
//                              Envelope - 签名信封
// ============================================================================

// Envelope 签名信封
//
// 将域分隔符和负载（这里是地址记录）绑定到一个签名公钥。
type Envelope struct {
	// PublicKey 签名公钥
	PublicKey identity.PublicKey

	// PayloadType 负载类型标识
	PayloadType []byte

	// Payload 负载字节（序列化的 PeerRecord）
	Payload []byte

	// Signature 签名
	Signature []byte
}

// PeerID 返回签名公钥派生的节点 ID
func (e *Envelope) PeerID() (types.PeerID, error) {
	return crypto.PeerIDFromPublicKey(e.PublicKey)
}

// Record 解析信封负载为地址记录
func (e *Envelope) Record() (*PeerRecord, error) {
	rec := &PeerRecord{}
	if err := rec.Unmarshal(e.Payload); err != nil {
		return nil, err
	}
	return rec, nil
}

// Equal 比较两个信封是否相等
func (e *Envelope) Equal(other *Envelope) bool {
	if other == nil {
		return false
	}
	return e.PublicKey.Equals(other.PublicKey) &&
		bytes.Equal(e.PayloadType, other.PayloadType) &&
		bytes.Equal(e.Payload, other.Payload) &&
		bytes.Equal(e.Signature, other.Signature)
}

// ============================================================================
//                              签名与验证
// ============================================================================

// unsignedData 返回用于签名的数据
//
// 签名数据格式: len(domain) || domain || len(payloadType) || payloadType || len(payload) || payload
// 长度均为 4 字节大端序。
func unsignedData(domain string, payloadType, payload []byte) []byte {
	size := 12 + len(domain) + len(payloadType) + len(payload)
	data := make([]byte, 0, size)

	lenBuf := make([]byte, 4)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(domain)))
	data = append(data, lenBuf...)
	data = append(data, domain...)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(payloadType)))
	data = append(data, lenBuf...)
	data = append(data, payloadType...)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(payload)))
	data = append(data, lenBuf...)
	data = append(data, payload...)

	return data
}

// Seal 对地址记录进行签名，生成信封
//
// 使用本地私钥在地址记录域下签名。记录的节点 ID 必须与私钥派生的
// 节点 ID 一致，否则生成的信封永远无法通过验证。
func Seal(rec *PeerRecord, priv identity.PrivateKey) (*Envelope, error) {
	if priv == nil {
		return nil, crypto.ErrNilPrivateKey
	}

	signerID, err := crypto.PeerIDFromPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	if !signerID.Equal(rec.PeerID) {
		return nil, ErrPeerIDMismatch
	}

	payload, err := rec.Marshal()
	if err != nil {
		return nil, err
	}

	sig, err := priv.Sign(unsignedData(PeerRecordDomain, PeerRecordPayloadType, payload))
	if err != nil {
		return nil, fmt.Errorf("sign peer record: %w", err)
	}

	return &Envelope{
		PublicKey:   priv.PublicKey(),
		PayloadType: PeerRecordPayloadType,
		Payload:     payload,
		Signature:   sig,
	}, nil
}

// ConsumeEnvelope 解析并验证签名信封
//
// 依次执行：
//  1. 解析信封结构和嵌入公钥
//  2. 在指定域下验证签名
//  3. 校验负载类型为地址记录
//  4. 解析地址记录并校验其节点 ID 与签名公钥派生 ID 一致
//
// 任何一步失败都返回错误，信封不可部分信任。
func ConsumeEnvelope(data []byte, domain string) (*Envelope, *PeerRecord, error) {
	if domain == "" {
		return nil, nil, ErrEmptyDomain
	}

	env, err := UnmarshalEnvelope(data)
	if err != nil {
		return nil, nil, err
	}

	ok, err := env.PublicKey.Verify(unsignedData(domain, env.PayloadType, env.Payload), env.Signature)
	if err != nil || !ok {
		return nil, nil, ErrInvalidSignature
	}

	if !bytes.Equal(env.PayloadType, PeerRecordPayloadType) {
		return nil, nil, ErrWrongPayloadType
	}

	rec, err := env.Record()
	if err != nil {
		return nil, nil, err
	}

	signerID, err := env.PeerID()
	if err != nil {
		return nil, nil, err
	}
	if !signerID.Equal(rec.PeerID) {
		return nil, nil, ErrPeerIDMismatch
	}

	return env, rec, nil
}

// ============================================================================
//                              线上编码
// ============================================================================

// Marshal 序列化信封
//
// protobuf wire format：
//   - Field 1 (public_key):   bytes - 序列化公钥
//   - Field 2 (payload_type): bytes
//   - Field 3 (payload):      bytes
//   - Field 5 (signature):    bytes
func (e *Envelope) Marshal() ([]byte, error) {
	pk, err := crypto.MarshalPublicKey(e.PublicKey)
	if err != nil {
		return nil, err
	}

	result := make([]byte, 0, 8+len(pk)+len(e.PayloadType)+len(e.Payload)+len(e.Signature))

	result = append(result, tagEnvPublicKey)
	result = appendVarint(result, uint64(len(pk)))
	result = append(result, pk...)

	result = append(result, tagEnvPayloadType)
	result = appendVarint(result, uint64(len(e.PayloadType)))
	result = append(result, e.PayloadType...)

	result = append(result, tagEnvPayload)
	result = appendVarint(result, uint64(len(e.Payload)))
	result = append(result, e.Payload...)

	result = append(result, tagEnvSignature)
	result = appendVarint(result, uint64(len(e.Signature)))
	result = append(result, e.Signature...)

	return result, nil
}

// UnmarshalEnvelope 反序列化信封（不做签名验证）
//
// 验证请使用 ConsumeEnvelope。
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	if len(data) == 0 {
		return nil, ErrInvalidEnvelope
	}

	env := &Envelope{}
	var pubKeyBytes []byte

	for len(data) > 0 {
		tag, n := consumeVarint(data)
		if n < 0 {
			return nil, ErrInvalidEnvelope
		}
		data = data[n:]

		if tag&0x07 != 2 {
			return nil, ErrInvalidEnvelope
		}

		length, n := consumeVarint(data)
		if n < 0 {
			return nil, ErrInvalidEnvelope
		}
		data = data[n:]
		if uint64(len(data)) < length {
			return nil, ErrInvalidEnvelope
		}

		switch tag >> 3 {
		case 1: // public_key
			pubKeyBytes = make([]byte, length)
			copy(pubKeyBytes, data[:length])
		case 2: // payload_type
			env.PayloadType = make([]byte, length)
			copy(env.PayloadType, data[:length])
		case 3: // payload
			env.Payload = make([]byte, length)
			copy(env.Payload, data[:length])
		case 5: // signature
			env.Signature = make([]byte, length)
			copy(env.Signature, data[:length])
			// 其他字段静默忽略（向前兼容）
		}
		data = data[length:]
	}

	if len(pubKeyBytes) == 0 || len(env.Signature) == 0 {
		return nil, ErrInvalidEnvelope
	}

	pub, err := crypto.UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	env.PublicKey = pub

	return env, nil
}

package crypto

import "errors"

// 密码学错误定义
var (
	// ErrNilPublicKey 公钥为 nil
	ErrNilPublicKey = errors.New("public key is nil")

	// ErrNilPrivateKey 私钥为 nil
	ErrNilPrivateKey = errors.New("private key is nil")

	// ErrInvalidKeyBytes 密钥字节长度或内容无效
	ErrInvalidKeyBytes = errors.New("invalid key bytes")

	// ErrUnsupportedKeyType 不支持的密钥类型
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrMarshalFailed 密钥序列化失败
	ErrMarshalFailed = errors.New("key marshal failed")

	// ErrUnmarshalFailed 密钥反序列化失败
	ErrUnmarshalFailed = errors.New("key unmarshal failed")
)

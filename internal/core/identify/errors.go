package identify

import "errors"

// 协议交换错误定义
//
// 初始方 Identify 将这些错误返回给调用方；响应方和推送路径只记录日志。
var (
	// ErrConnectionEnded 流在收到完整消息帧前关闭
	ErrConnectionEnded = errors.New("identify: connection ended before message was received")

	// ErrMessageTooLarge 消息帧长度超过上限
	ErrMessageTooLarge = errors.New("identify: message size exceeded maximum allowed")

	// ErrInvalidMessage 消息帧无法解码
	ErrInvalidMessage = errors.New("identify: invalid message")

	// ErrMissingPublicKey 响应缺少公钥
	ErrMissingPublicKey = errors.New("identify: public key missing from response")

	// ErrInvalidPeer 公钥派生的节点 ID 与连接远端不符，或等于本地节点
	ErrInvalidPeer = errors.New("identify: invalid peer")

	// ErrInvalidSignature 信封签名验证失败
	ErrInvalidSignature = errors.New("identify: invalid signature")

	// ErrTimeout 交换超时
	ErrTimeout = errors.New("identify: timeout")

	// ErrCancelled 交换被外部取消
	ErrCancelled = errors.New("identify: cancelled")

	// ErrNotStarted 服务未启动
	ErrNotStarted = errors.New("identify: service not started")

	// ErrAlreadyStarted 服务已启动
	ErrAlreadyStarted = errors.New("identify: service already started")

	// ErrNilConnection 连接为 nil
	ErrNilConnection = errors.New("identify: nil connection")
)

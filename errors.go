package identify

import (
	coreidentify "github.com/dep2p/go-identify/internal/core/identify"
)

// 公共错误定义
//
// 引擎内部的错误在此重导出，调用方用 errors.Is 匹配。
var (
	// ErrConnectionEnded 流在收到完整消息帧前关闭
	ErrConnectionEnded = coreidentify.ErrConnectionEnded

	// ErrMessageTooLarge 消息帧长度超过上限
	ErrMessageTooLarge = coreidentify.ErrMessageTooLarge

	// ErrInvalidMessage 消息帧无法解码
	ErrInvalidMessage = coreidentify.ErrInvalidMessage

	// ErrMissingPublicKey 响应缺少公钥
	ErrMissingPublicKey = coreidentify.ErrMissingPublicKey

	// ErrInvalidPeer 公钥派生的节点 ID 与连接远端不符，或等于本地节点
	ErrInvalidPeer = coreidentify.ErrInvalidPeer

	// ErrInvalidSignature 信封签名验证失败
	ErrInvalidSignature = coreidentify.ErrInvalidSignature

	// ErrTimeout 交换超时
	ErrTimeout = coreidentify.ErrTimeout

	// ErrCancelled 交换被外部取消
	ErrCancelled = coreidentify.ErrCancelled

	// ErrNotStarted 服务未启动
	ErrNotStarted = coreidentify.ErrNotStarted

	// ErrAlreadyStarted 服务已启动
	ErrAlreadyStarted = coreidentify.ErrAlreadyStarted

	// ErrNilConnection 连接为 nil
	ErrNilConnection = coreidentify.ErrNilConnection
)

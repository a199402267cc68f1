// Package interfaces 定义 go-identify 公共接口
//
// 本文件定义 Stream 和 Connection 接口。
package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-identify/pkg/types"
)

// StreamHandler 定义流处理函数类型
type StreamHandler func(Stream)

// Stream 定义双向流接口
//
// 协议交换的载体，由多路复用器在一条连接上派生。
type Stream interface {
	// Read 从流中读取数据
	Read(p []byte) (n int, err error)

	// Write 向流中写入数据
	Write(p []byte) (n int, err error)

	// Close 关闭流
	Close() error

	// Reset 重置流（异常关闭）
	Reset() error

	// SetDeadline 设置读写超时
	//
	// 超时后，Read 和 Write 会返回错误。
	// 传入零值 time.Time{} 表示不超时。
	SetDeadline(t time.Time) error

	// Protocol 返回流使用的协议 ID
	Protocol() types.ProtocolID

	// SetProtocol 设置流使用的协议 ID（协议协商时使用）
	SetProtocol(proto types.ProtocolID)

	// Conn 返回底层连接
	Conn() Connection
}

// Connection 定义连接接口
//
// 一条已完成升级的传输连接，可在其上派生新流。
type Connection interface {
	// LocalPeer 返回本地节点 ID
	LocalPeer() types.PeerID

	// RemotePeer 返回远端节点 ID
	RemotePeer() types.PeerID

	// RemoteMultiaddr 返回远端多地址
	RemoteMultiaddr() types.Multiaddr

	// NewStream 在此连接上创建新流
	NewStream(ctx context.Context) (Stream, error)

	// Close 关闭连接
	Close() error

	// IsClosed 检查连接是否已关闭
	IsClosed() bool
}

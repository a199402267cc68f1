// Package interfaces 定义 go-identify 公共接口
//
// 本文件定义 Registrar 接口，对接协议选择层。
package interfaces

import (
	"github.com/dep2p/go-identify/pkg/types"
)

// StreamCaps 协议的并发流上限
//
// 协议选择层按协议分别限制入站和出站并发流，超限的流被直接拒绝。
type StreamCaps struct {
	// MaxInbound 入站并发流上限
	MaxInbound int

	// MaxOutbound 出站并发流上限
	MaxOutbound int
}

// Registrar 定义协议处理器注册表接口
//
// 协议选择层将协商到指定协议的入站流路由给已注册的处理器。
type Registrar interface {
	// Handle 注册协议处理器
	Handle(proto types.ProtocolID, handler StreamHandler, caps StreamCaps) error

	// Unhandle 注销协议处理器
	Unhandle(proto types.ProtocolID) error
}

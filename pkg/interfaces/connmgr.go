// Package interfaces 定义 go-identify 公共接口
//
// 本文件定义 ConnManager 接口，提供连接枚举。
package interfaces

import (
	"github.com/dep2p/go-identify/pkg/types"
)

// ConnManager 定义连接管理接口
//
// 身份识别引擎只读消费：枚举当前连接，按节点查找连接。
// 连接的建立与关闭由连接管理器自身负责。
type ConnManager interface {
	// Connections 返回当前所有连接
	Connections() []Connection

	// ConnsToPeer 返回到指定节点的所有连接
	ConnsToPeer(peerID types.PeerID) []Connection
}

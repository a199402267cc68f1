// Package interfaces 定义 go-identify 公共接口
//
// 本文件定义 AddressManager 接口，管理本地地址注册表。
package interfaces

import (
	"github.com/dep2p/go-identify/pkg/types"
)

// AddressManager 定义本地地址管理接口
//
// 维护本地节点的监听地址与观测地址。观测地址是远端节点看到的
// 本机地址，可能是公网地址，用于发现本机的对外可达地址。
type AddressManager interface {
	// Addresses 返回当前监听地址列表
	Addresses() []types.Multiaddr

	// ObservedAddrs 返回当前已记录的观测地址列表
	ObservedAddrs() []types.Multiaddr

	// AddObservedAddr 添加一个观测地址
	AddObservedAddr(addr types.Multiaddr) error
}

package identify

import (
	"go.uber.org/fx"

	coreidentify "github.com/dep2p/go-identify/internal/core/identify"
)

// Module 返回身份识别子系统的 Fx 模块
//
// 调用方负责向容器提供 Dependencies 中列出的协作方；
// 配置可选，缺省时使用默认配置。服务随应用生命周期启停。
//
// 使用：
//
//	app := fx.New(
//		fx.Provide(newIdentity, newPeerstore, newAddressManager,
//			newRegistrar, newConnManager, newEventBus),
//		identify.Module(),
//	)
func Module() fx.Option {
	return coreidentify.Module()
}

// Config 身份识别服务配置
//
// 供 Fx 容器注入自定义配置时使用。
type Config = coreidentify.Config

// NewConfig 创建默认配置
func NewConfig() Config {
	return coreidentify.NewConfig()
}

package identify

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-identify/pkg/interfaces"
	identityif "github.com/dep2p/go-identify/pkg/interfaces/identity"
)

// Params 服务依赖参数
type Params struct {
	fx.In

	Cfg            Config `optional:"true"`
	Identity       identityif.Identity
	Peerstore      interfaces.Peerstore
	AddressManager interfaces.AddressManager
	Registrar      interfaces.Registrar
	ConnManager    interfaces.ConnManager
	EventBus       interfaces.EventBus `optional:"true"`
}

// Output 模块输出
type Output struct {
	fx.Out

	Service *Service
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("identify",
		fx.Provide(provideService),
		fx.Invoke(registerLifecycle),
	)
}

// provideService 提供身份识别服务实例
//
// 未注入配置时使用默认配置。
func provideService(p Params) (Output, error) {
	cfg := p.Cfg
	if cfg == (Config{}) {
		cfg = NewConfig()
	}

	svc, err := New(cfg, p.Identity, p.Peerstore, p.AddressManager, p.Registrar, p.ConnManager, p.EventBus)
	if err != nil {
		return Output{}, err
	}
	return Output{Service: svc}, nil
}

// registerLifecycle 将服务挂接到应用生命周期
func registerLifecycle(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return svc.Start()
		},
		OnStop: func(context.Context) error {
			return svc.Stop()
		},
	})
}

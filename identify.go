package identify

import (
	"context"

	coreidentify "github.com/dep2p/go-identify/internal/core/identify"
	"github.com/dep2p/go-identify/pkg/interfaces"
	identityif "github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/types"
)

// 协议 ID 常量
const (
	// ID 身份识别协议 ID（默认前缀）
	ID types.ProtocolID = "/ipfs/id/" + coreidentify.IdentifyVersion

	// IDPush 身份推送协议 ID（默认前缀）
	IDPush types.ProtocolID = "/ipfs/id/push/" + coreidentify.PushVersion
)

// Service 身份识别服务的公开接口
type Service interface {
	// Start 启动服务：注册协议处理器，订阅连接与本地身份变更事件
	Start() error

	// Stop 停止服务：注销处理器，退订事件，取消进行中的交换
	Stop() error

	// Identify 主动识别连接对端
	//
	// ctx 不携带截止时间时以配置的超时为界。错误返回给调用方。
	Identify(ctx context.Context, conn interfaces.Connection) error

	// Push 向指定连接推送当前身份（尽力而为，错误只记录日志）
	Push(ctx context.Context, conns []interfaces.Connection) error

	// PushToPeerStore 向所有公告支持 push 协议的已连接节点推送身份
	PushToPeerStore(ctx context.Context) error

	// Protocols 返回服务公告的协议 ID 列表
	Protocols() []types.ProtocolID
}

// Dependencies 服务依赖的协作方
type Dependencies struct {
	// Identity 本地节点身份（必需）
	Identity identityif.Identity

	// Peerstore 节点信息存储（必需）
	Peerstore interfaces.Peerstore

	// AddressManager 本地地址注册表（必需）
	AddressManager interfaces.AddressManager

	// Registrar 协议处理器注册表（必需）
	Registrar interfaces.Registrar

	// ConnManager 连接枚举（必需）
	ConnManager interfaces.ConnManager

	// EventBus 事件总线（可选；缺省时不触发自动 identify 与推送）
	EventBus interfaces.EventBus
}

// New 创建身份识别服务
func New(deps Dependencies, opts ...Option) (Service, error) {
	cfg := coreidentify.NewConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return coreidentify.New(
		cfg,
		deps.Identity,
		deps.Peerstore,
		deps.AddressManager,
		deps.Registrar,
		deps.ConnManager,
		deps.EventBus,
	)
}

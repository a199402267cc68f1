// Package identify 提供 P2P 网络的身份识别子系统
//
// identify 是在已建立的传输连接上双向交换身份记录的协议：
// 连接建立后，双方各自请求对端的身份记录（公钥、监听地址、
// 支持的应用层协议、实现版本串，以及可选的签名地址记录）。
// 配套的 identify push 子协议在本地身份变更（新监听地址、
// 协议集合变化）时，把新的身份记录主动广播给所有已连接节点。
//
// 子系统通过窄接口消费外部协作方（连接管理、节点存储、地址管理、
// 协议注册表、事件总线），自身不建立连接，也不选择连接对象。
//
// # 使用
//
//	svc, err := identify.New(identify.Dependencies{
//		Identity:       ident,
//		Peerstore:      peerstore,
//		AddressManager: addrMgr,
//		Registrar:      registrar,
//		ConnManager:    connMgr,
//		EventBus:       bus,
//	}, identify.WithAgentVersion("myapp/1.2.3"))
//	if err != nil {
//		return err
//	}
//	if err := svc.Start(); err != nil {
//		return err
//	}
//	defer svc.Stop()
//
// 启动后，连接建立事件自动触发 identify，本地身份变更自动触发推送。
package identify

// Package types 定义 go-identify 的基础类型
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各组件间传递数据。
//
// 包含的类型：
//   - PeerID     - 节点唯一标识（公钥派生，Base58 编码）
//   - ProtocolID - 协议标识符（/name/version 格式）
//   - Multiaddr  - 统一地址类型（canonical multiaddr 字符串）
//   - 事件类型   - EvtPeerConnected / EvtLocalAddrsUpdated / EvtLocalProtocolsUpdated
package types

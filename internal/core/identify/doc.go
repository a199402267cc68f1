// Package identify 实现节点身份识别协议引擎
//
// identify 协议用于在连接建立后交换节点信息，包括：
//   - 节点公钥
//   - 监听地址与签名地址记录
//   - 支持的协议列表
//   - 实现版本与协议版本
//
// # 协议 ID
//
//   /<prefix>/id/1.0.0
//   /<prefix>/id/push/1.0.0
//
// 默认前缀为 ipfs。
//
// # 流程
//
//  1. 连接建立后自动触发 identify：发起方读取对端的身份消息，
//     验证公钥与节点 ID 绑定后写入节点存储
//  2. 本地监听地址或协议集合变更时，向所有公告支持 push 协议的
//     已连接节点推送新的身份消息
//
// # 消息帧
//
// 每条流只承载一个消息帧：varint 长度前缀 + 身份消息，
// 长度上限默认 8192 字节，超限的帧直接拒绝而不缓冲。
package identify

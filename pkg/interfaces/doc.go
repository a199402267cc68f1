// Package interfaces 定义 go-identify 消费的协作方契约
//
// 身份识别子系统不拥有连接、流、节点存储或地址注册表；
// 它通过本包的窄接口消费这些外部组件：
//   - Stream / Connection  - 多路复用传输层提供的双向字节流
//   - Peerstore            - 地址簿/密钥簿/协议簿/元数据存储
//   - AddressManager       - 本地监听地址与观测地址注册表
//   - Registrar            - 协议选择层的处理器注册表
//   - ConnManager          - 连接枚举
//   - EventBus             - 事件发布订阅
//
// 接口方向是单向的：这些组件不依赖身份识别引擎。
package interfaces

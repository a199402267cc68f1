// Package types 定义 go-identify 公共类型
//
// 本文件定义事件相关类型。
package types

import (
	"time"
)

// ============================================================================
//                              Event - 事件接口
// ============================================================================

// Event 基础事件接口
type Event interface {
	// Type 返回事件类型
	Type() string

	// Timestamp 返回事件时间戳
	Timestamp() time.Time
}

// BaseEvent 基础事件实现
type BaseEvent struct {
	EventType string
	Time      time.Time
}

// Type 返回事件类型
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp 返回事件时间戳
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
	}
}

// ============================================================================
//                              连接事件
// ============================================================================

// EvtPeerConnected 节点连接事件
//
// 连接管理器在新连接完成升级后发布。
type EvtPeerConnected struct {
	BaseEvent
	PeerID   PeerID
	NumConns int
}

// ============================================================================
//                              本地身份变更事件
// ============================================================================

// EvtLocalAddrsUpdated 监听地址变更事件
//
// PeerID 为地址发生变更的节点；只有本地节点的变更会触发身份推送。
type EvtLocalAddrsUpdated struct {
	BaseEvent
	PeerID PeerID
}

// EvtLocalProtocolsUpdated 协议支持变更事件
//
// PeerID 为协议集合发生变更的节点；只有本地节点的变更会触发身份推送。
type EvtLocalProtocolsUpdated struct {
	BaseEvent
	PeerID PeerID
}

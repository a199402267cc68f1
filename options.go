package identify

import (
	"time"

	coreidentify "github.com/dep2p/go-identify/internal/core/identify"
)

// Option 用户配置选项函数
type Option func(*coreidentify.Config) error

// WithProtocolPrefix 设置协议字符串的第一段
//
// 两个协议 ID 都使用该前缀：/<prefix>/id/1.0.0 与 /<prefix>/id/push/1.0.0。
func WithProtocolPrefix(prefix string) Option {
	return func(c *coreidentify.Config) error {
		c.ProtocolPrefix = prefix
		return nil
	}
}

// WithAgentVersion 设置对外公告的实现版本串
func WithAgentVersion(v string) Option {
	return func(c *coreidentify.Config) error {
		c.AgentVersion = v
		return nil
	}
}

// WithProtocolVersion 设置对外公告的协议版本串
func WithProtocolVersion(v string) Option {
	return func(c *coreidentify.Config) error {
		c.ProtocolVersion = v
		return nil
	}
}

// WithTimeout 设置单次交换的截止时间
func WithTimeout(d time.Duration) Option {
	return func(c *coreidentify.Config) error {
		c.Timeout = d
		return nil
	}
}

// WithMaxMessageSize 设置消息帧大小上限（字节）
func WithMaxMessageSize(n int) Option {
	return func(c *coreidentify.Config) error {
		c.MaxMessageSize = n
		return nil
	}
}

// WithStreamLimits 设置 identify 协议的入站/出站并发流上限
func WithStreamLimits(inbound, outbound int) Option {
	return func(c *coreidentify.Config) error {
		c.MaxInboundStreams = inbound
		c.MaxOutboundStreams = outbound
		return nil
	}
}

// WithPushStreamLimits 设置 push 协议的入站/出站并发流上限
func WithPushStreamLimits(incoming, outgoing int) Option {
	return func(c *coreidentify.Config) error {
		c.MaxPushIncomingStreams = incoming
		c.MaxPushOutgoingStreams = outgoing
		return nil
	}
}

// WithMaxObservedAddresses 设置观测地址保留上限
func WithMaxObservedAddresses(n int) Option {
	return func(c *coreidentify.Config) error {
		c.MaxObservedAddresses = n
		return nil
	}
}

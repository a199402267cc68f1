package identify

import (
	"errors"
	"fmt"
	"time"

	"github.com/dep2p/go-identify/pkg/types"
)

// 协议版本段
const (
	// IdentifyVersion 身份识别协议版本
	IdentifyVersion = "1.0.0"

	// PushVersion 身份推送协议版本
	PushVersion = "1.0.0"
)

// 默认配置值
const (
	// DefaultProtocolPrefix 默认协议前缀
	DefaultProtocolPrefix = "ipfs"

	// DefaultAgentVersion 默认实现版本串
	DefaultAgentVersion = "go-identify/1.0.0"

	// DefaultProtocolVersion 默认协议版本串
	DefaultProtocolVersion = "ipfs/0.1.0"

	// DefaultTimeout 单次交换的默认超时
	DefaultTimeout = 5 * time.Second

	// DefaultMaxMessageSize 消息帧大小上限默认值
	DefaultMaxMessageSize = 8192

	// DefaultMaxStreams identify 协议入站/出站并发流默认上限
	DefaultMaxStreams = 1

	// DefaultMaxPushStreams push 协议入站/出站并发流默认上限
	DefaultMaxPushStreams = 1

	// DefaultMaxObservedAddresses 观测地址保留上限默认值
	DefaultMaxObservedAddresses = 10
)

// Config 身份识别服务配置
type Config struct {
	// ProtocolPrefix 协议字符串的第一段
	ProtocolPrefix string

	// AgentVersion 对外公告的实现版本串
	AgentVersion string

	// ProtocolVersion 对外公告的协议版本串
	ProtocolVersion string

	// Timeout 单次交换的截止时间
	Timeout time.Duration

	// MaxMessageSize 消息帧大小上限（字节）
	MaxMessageSize int

	// MaxInboundStreams identify 入站并发流上限
	MaxInboundStreams int

	// MaxOutboundStreams identify 出站并发流上限
	MaxOutboundStreams int

	// MaxPushIncomingStreams push 入站并发流上限
	MaxPushIncomingStreams int

	// MaxPushOutgoingStreams push 出站并发流上限
	MaxPushOutgoingStreams int

	// MaxObservedAddresses 观测地址保留上限
	MaxObservedAddresses int
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		ProtocolPrefix:         DefaultProtocolPrefix,
		AgentVersion:           DefaultAgentVersion,
		ProtocolVersion:        DefaultProtocolVersion,
		Timeout:                DefaultTimeout,
		MaxMessageSize:         DefaultMaxMessageSize,
		MaxInboundStreams:      DefaultMaxStreams,
		MaxOutboundStreams:     DefaultMaxStreams,
		MaxPushIncomingStreams: DefaultMaxPushStreams,
		MaxPushOutgoingStreams: DefaultMaxPushStreams,
		MaxObservedAddresses:   DefaultMaxObservedAddresses,
	}
}

// WithProtocolPrefix 设置协议前缀
func (c Config) WithProtocolPrefix(prefix string) Config {
	c.ProtocolPrefix = prefix
	return c
}

// WithAgentVersion 设置实现版本串
func (c Config) WithAgentVersion(v string) Config {
	c.AgentVersion = v
	return c
}

// WithTimeout 设置交换超时
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

// WithMaxMessageSize 设置消息帧大小上限
func (c Config) WithMaxMessageSize(n int) Config {
	c.MaxMessageSize = n
	return c
}

// WithMaxObservedAddresses 设置观测地址保留上限
func (c Config) WithMaxObservedAddresses(n int) Config {
	c.MaxObservedAddresses = n
	return c
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.ProtocolPrefix == "" {
		return errors.New("identify config: protocol prefix must not be empty")
	}
	if c.Timeout <= 0 {
		return errors.New("identify config: timeout must be positive")
	}
	if c.MaxMessageSize <= 0 {
		return errors.New("identify config: max message size must be positive")
	}
	if c.MaxObservedAddresses < 0 {
		return errors.New("identify config: max observed addresses must not be negative")
	}
	return nil
}

// ProtocolID 返回身份识别协议 ID
func (c Config) ProtocolID() types.ProtocolID {
	return types.ProtocolID(fmt.Sprintf("/%s/id/%s", c.ProtocolPrefix, IdentifyVersion))
}

// PushProtocolID 返回身份推送协议 ID
func (c Config) PushProtocolID() types.ProtocolID {
	return types.ProtocolID(fmt.Sprintf("/%s/id/push/%s", c.ProtocolPrefix, PushVersion))
}

package mocks

import (
	"reflect"
	"sync"

	"github.com/dep2p/go-identify/pkg/interfaces"
)

// MockEventBus 模拟 EventBus 接口实现
//
// 按事件类型路由的内存总线；Publish 同步投递到所有订阅通道。
type MockEventBus struct {
	mu   sync.Mutex
	subs map[reflect.Type][]*MockSubscription
}

var _ interfaces.EventBus = (*MockEventBus)(nil)

// NewMockEventBus 创建 MockEventBus
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subs: make(map[reflect.Type][]*MockSubscription),
	}
}

// Subscribe 订阅指定类型的事件
//
// eventType 传入事件指针，如 new(types.EvtPeerConnected)。
func (m *MockEventBus) Subscribe(eventType interface{}, opts ...interfaces.SubscriptionOpt) (interfaces.Subscription, error) {
	settings := &interfaces.SubscriptionSettings{Buffer: 16}
	for _, opt := range opts {
		opt(settings)
	}

	sub := &MockSubscription{
		ch: make(chan interface{}, settings.Buffer),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	typ := reflect.TypeOf(eventType)
	m.subs[typ] = append(m.subs[typ], sub)
	return sub, nil
}

// Emitter 获取指定事件类型的发射器
func (m *MockEventBus) Emitter(eventType interface{}, _ ...interfaces.EmitterOpt) (interfaces.Emitter, error) {
	return &MockEmitter{bus: m}, nil
}

// Publish 向所有匹配类型的订阅投递事件
//
// evt 必须与订阅时的事件指针类型一致。通道已满时丢弃。
func (m *MockEventBus) Publish(evt interface{}) {
	m.mu.Lock()
	subs := append([]*MockSubscription(nil), m.subs[reflect.TypeOf(evt)]...)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(evt)
	}
}

// ============================================================================
//                              Subscription / Emitter
// ============================================================================

// MockSubscription 模拟事件订阅
type MockSubscription struct {
	mu     sync.Mutex
	ch     chan interface{}
	closed bool
}

var _ interfaces.Subscription = (*MockSubscription)(nil)

// Out 返回接收事件的通道
func (s *MockSubscription) Out() <-chan interface{} {
	return s.ch
}

// Close 取消订阅
func (s *MockSubscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

// deliver 投递事件；订阅已关闭或通道已满时丢弃
func (s *MockSubscription) deliver(evt interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.ch <- evt:
	default:
	}
}

// MockEmitter 模拟事件发射器
type MockEmitter struct {
	bus *MockEventBus
}

var _ interfaces.Emitter = (*MockEmitter)(nil)

// Emit 发射事件
func (e *MockEmitter) Emit(event interface{}) error {
	e.bus.Publish(event)
	return nil
}

// Close 关闭发射器
func (e *MockEmitter) Close() error {
	return nil
}

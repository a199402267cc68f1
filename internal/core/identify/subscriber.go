package identify

import (
	"context"
	"fmt"
	"sync"

	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/types"
)

// subscriber 事件耦合层
//
// 把连接生命周期和本地身份变更耦合到协议调用：
//   - EvtPeerConnected            ⇒ 对新连接发起一次 identify
//   - EvtLocalAddrsUpdated        ⇒ 本地节点变更时 push-to-all
//   - EvtLocalProtocolsUpdated    ⇒ 同上
//
// 订阅方向是单向的：事件源不依赖身份识别引擎。
type subscriber struct {
	svc *Service

	ctx    context.Context
	cancel context.CancelFunc
	subs   []interfaces.Subscription
	wg     sync.WaitGroup
}

func newSubscriber(svc *Service) *subscriber {
	return &subscriber{svc: svc}
}

// start 订阅事件并启动分发循环
func (s *subscriber) start(parent context.Context) error {
	if s.svc.bus == nil {
		logger.Warn("事件总线不可用，自动 identify 与 push 被禁用")
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(parent)

	connSub, err := s.svc.bus.Subscribe(new(types.EvtPeerConnected))
	if err != nil {
		return fmt.Errorf("subscribe peer connected: %w", err)
	}
	addrSub, err := s.svc.bus.Subscribe(new(types.EvtLocalAddrsUpdated))
	if err != nil {
		_ = connSub.Close()
		return fmt.Errorf("subscribe local addrs updated: %w", err)
	}
	protoSub, err := s.svc.bus.Subscribe(new(types.EvtLocalProtocolsUpdated))
	if err != nil {
		_ = connSub.Close()
		_ = addrSub.Close()
		return fmt.Errorf("subscribe local protocols updated: %w", err)
	}

	s.subs = []interfaces.Subscription{connSub, addrSub, protoSub}

	s.wg.Add(1)
	go s.loop(connSub, addrSub, protoSub)

	return nil
}

// stop 退订并等待分发循环退出
func (s *subscriber) stop() {
	if s.cancel != nil {
		s.cancel()
	}
	for _, sub := range s.subs {
		_ = sub.Close()
	}
	s.subs = nil
	s.wg.Wait()
}

// loop 事件分发循环
func (s *subscriber) loop(connSub, addrSub, protoSub interfaces.Subscription) {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case evt, ok := <-connSub.Out():
			if !ok {
				return
			}
			if connected, ok := evt.(*types.EvtPeerConnected); ok {
				s.onPeerConnected(connected.PeerID)
			}

		case evt, ok := <-addrSub.Out():
			if !ok {
				return
			}
			if updated, ok := evt.(*types.EvtLocalAddrsUpdated); ok {
				s.onLocalChange(updated.PeerID, "addrs")
			}

		case evt, ok := <-protoSub.Out():
			if !ok {
				return
			}
			if updated, ok := evt.(*types.EvtLocalProtocolsUpdated); ok {
				s.onLocalChange(updated.PeerID, "protocols")
			}
		}
	}
}

// onPeerConnected 处理连接建立事件
//
// 对该节点的一条连接发起 identify；错误记录后丢弃，不影响连接使用。
func (s *subscriber) onPeerConnected(peerID types.PeerID) {
	if s.svc.conns == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		conns := s.svc.conns.ConnsToPeer(peerID)
		if len(conns) == 0 {
			logger.Debug("连接事件到达时已无可用连接", "peer", peerID.ShortString())
			return
		}

		if err := s.svc.Identify(s.ctx, conns[0]); err != nil {
			logger.Debug("自动 identify 失败",
				"peer", peerID.ShortString(),
				"error", err)
		}
	}()
}

// onLocalChange 处理本地身份变更事件
//
// 只有本地节点的变更触发推送；其他节点的事件忽略。
func (s *subscriber) onLocalChange(peerID types.PeerID, what string) {
	if !peerID.Equal(s.svc.ident.ID()) {
		return
	}

	logger.Debug("本地身份变更，触发推送", "changed", what)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := s.svc.PushToPeerStore(s.ctx); err != nil {
			logger.Debug("身份推送失败", "error", err)
		}
	}()
}

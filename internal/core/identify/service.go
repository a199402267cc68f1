package identify

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dep2p/go-identify/pkg/interfaces"
	identityif "github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/lib/crypto"
	"github.com/dep2p/go-identify/pkg/lib/log"
	pb "github.com/dep2p/go-identify/pkg/lib/proto/identify"
	"github.com/dep2p/go-identify/pkg/lib/record"
	"github.com/dep2p/go-identify/pkg/types"
)

var logger = log.Logger("core/identify")

// ============================================================================
//                              交换状态机
// ============================================================================

// exchangeState 单次协议交换的状态
//
// Opening → Transferring：子流协商成功
// Transferring → Closed：消息帧完成、超时、取消或 I/O 错误
// Closed 为终态，进入时释放流句柄。
type exchangeState int

const (
	stateOpening exchangeState = iota
	stateTransferring
	stateClosed
)

// String 返回状态名称
func (s exchangeState) String() string {
	switch s {
	case stateOpening:
		return "opening"
	case stateTransferring:
		return "transferring"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              Service - 身份识别服务
// ============================================================================

// Service 身份识别服务
//
// 驱动四个协议角色：identify 发起方/响应方、push 发起方/响应方。
// 服务以固定配置和节点身份创建，Start 一次（注册处理器、订阅事件），
// Stop 一次（注销、退订）；单次交换的状态只存在于交换内部。
type Service struct {
	cfg   Config
	ident identityif.Identity
	peers interfaces.Peerstore
	addrs interfaces.AddressManager
	reg   interfaces.Registrar
	conns interfaces.ConnManager
	bus   interfaces.EventBus

	protoID     types.ProtocolID
	pushProtoID types.ProtocolID

	rec *reconciler
	sub *subscriber

	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New 创建身份识别服务
//
// 协议 ID 在构造时从配置派生，服务生命周期内不变。
func New(
	cfg Config,
	ident identityif.Identity,
	peers interfaces.Peerstore,
	addrs interfaces.AddressManager,
	reg interfaces.Registrar,
	conns interfaces.ConnManager,
	bus interfaces.EventBus,
) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, fmt.Errorf("identify: identity is required")
	}

	s := &Service{
		cfg:         cfg,
		ident:       ident,
		peers:       peers,
		addrs:       addrs,
		reg:         reg,
		conns:       conns,
		bus:         bus,
		protoID:     cfg.ProtocolID(),
		pushProtoID: cfg.PushProtocolID(),
		rec:         newReconciler(peers, addrs, cfg.MaxObservedAddresses),
	}
	s.sub = newSubscriber(s)
	return s, nil
}

// Protocols 返回服务公告的协议 ID 列表
func (s *Service) Protocols() []types.ProtocolID {
	return []types.ProtocolID{s.protoID, s.pushProtoID}
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 启动服务
//
// 写入本地元数据，注册两个协议处理器（携带各自的并发流上限），
// 订阅连接与本地身份变更事件。
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	localID := s.ident.ID()
	if err := s.peers.Put(localID, interfaces.MetadataAgentVersion, []byte(s.cfg.AgentVersion)); err != nil {
		logger.Warn("写入本地 AgentVersion 失败", "error", err)
	}
	if err := s.peers.Put(localID, interfaces.MetadataProtocolVersion, []byte(s.cfg.ProtocolVersion)); err != nil {
		logger.Warn("写入本地 ProtocolVersion 失败", "error", err)
	}

	if err := s.reg.Handle(s.protoID, s.handleIdentify, interfaces.StreamCaps{
		MaxInbound:  s.cfg.MaxInboundStreams,
		MaxOutbound: s.cfg.MaxOutboundStreams,
	}); err != nil {
		s.cancel()
		return fmt.Errorf("register identify handler: %w", err)
	}

	if err := s.reg.Handle(s.pushProtoID, s.handlePush, interfaces.StreamCaps{
		MaxInbound:  s.cfg.MaxPushIncomingStreams,
		MaxOutbound: s.cfg.MaxPushOutgoingStreams,
	}); err != nil {
		_ = s.reg.Unhandle(s.protoID)
		s.cancel()
		return fmt.Errorf("register identify push handler: %w", err)
	}

	if err := s.sub.start(s.ctx); err != nil {
		_ = s.reg.Unhandle(s.protoID)
		_ = s.reg.Unhandle(s.pushProtoID)
		s.cancel()
		return err
	}

	s.started = true
	logger.Info("身份识别服务已启动",
		"protocol", s.protoID,
		"pushProtocol", s.pushProtoID)
	return nil
}

// Stop 停止服务
//
// 注销处理器、退订事件；进行中的交换通过上下文取消。
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	_ = s.reg.Unhandle(s.protoID)
	_ = s.reg.Unhandle(s.pushProtoID)
	s.sub.stop()
	s.cancel()

	s.started = false
	logger.Info("身份识别服务已停止")
	return nil
}

// ============================================================================
//                              Identify 发起方
// ============================================================================

// Identify 主动识别连接对端
//
// 调用方上下文不携带截止时间时，交换以配置的 Timeout 为界。
// 所有错误返回给调用方；由连接事件自动触发时，事件耦合层记录并丢弃。
func (s *Service) Identify(ctx context.Context, conn interfaces.Connection) error {
	if conn == nil {
		return ErrNilConnection
	}

	localID := s.ident.ID()
	remote := conn.RemotePeer()

	// 本地节点不得学习自己的身份
	if remote.Equal(localID) {
		return fmt.Errorf("%w: remote peer is self", ErrInvalidPeer)
	}

	// 调用方上下文未携带截止时间时，以配置的超时为界
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	exchange := uuid.NewString()[:8]
	state := stateOpening
	logger.Debug("identify 交换开始",
		"exchange", exchange,
		"peer", remote.ShortString(),
		"state", state)

	stream, err := conn.NewStream(ctx)
	if err != nil {
		return fmt.Errorf("open identify stream: %w", s.mapContextErr(ctx, err))
	}
	stream.SetProtocol(s.protoID)

	state = stateTransferring
	stopWatch := watchContext(ctx, stream)
	defer func() {
		stopWatch()
		_ = stream.Close()
		state = stateClosed
		logger.Debug("identify 交换结束",
			"exchange", exchange,
			"peer", remote.ShortString(),
			"state", state)
	}()

	msg, err := ReadMessage(stream, s.cfg.MaxMessageSize)
	if err != nil {
		return s.mapContextErr(ctx, err)
	}

	if len(msg.PublicKey) == 0 {
		return ErrMissingPublicKey
	}

	pub, err := crypto.UnmarshalPublicKey(msg.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: bad public key: %v", ErrInvalidMessage, err)
	}

	derived, err := crypto.PeerIDFromPublicKey(pub)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if !derived.Equal(remote) {
		return fmt.Errorf("%w: public key derives %s, connection remote is %s",
			ErrInvalidPeer, derived.ShortString(), remote.ShortString())
	}
	if derived.Equal(localID) {
		return fmt.Errorf("%w: remote claims local identity", ErrInvalidPeer)
	}

	if err := s.peers.AddPubKey(remote, pub); err != nil {
		logger.Warn("记录远端公钥失败", "peer", remote.ShortString(), "error", err)
	}

	s.rec.apply(remote, msg, modeIdentify)

	logger.Debug("identify 交换完成",
		"exchange", exchange,
		"peer", remote.ShortString(),
		"protocols", len(msg.Protocols),
		"agent", string(msg.AgentVersion))
	return nil
}

// mapContextErr 将上下文终止映射到交换错误
func (s *Service) mapContextErr(ctx context.Context, err error) error {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ErrTimeout
	case context.Canceled:
		return ErrCancelled
	default:
		return err
	}
}

// ============================================================================
//                              Identify 响应方
// ============================================================================

// handleIdentify 处理入站 identify 请求
//
// 从当前主机状态构造身份消息，写出一个消息帧后关闭流。
// 所有错误只记录日志，不向任何调用方暴露。
func (s *Service) handleIdentify(stream interfaces.Stream) {
	defer stream.Close()

	ctx, cancel := context.WithTimeout(s.serviceContext(), s.cfg.Timeout)
	defer cancel()

	stopWatch := watchContext(ctx, stream)
	defer stopWatch()

	msg := s.buildIdentifyMessage(stream.Conn())

	if err := WriteMessage(stream, msg); err != nil {
		logger.Debug("写出 identify 响应失败", "error", err)
	}
}

// buildIdentifyMessage 从当前主机状态构造身份消息
func (s *Service) buildIdentifyMessage(conn interfaces.Connection) *pb.Identify {
	localID := s.ident.ID()

	msg := &pb.Identify{
		ProtocolVersion: []byte(s.cfg.ProtocolVersion),
		AgentVersion:    []byte(s.cfg.AgentVersion),
	}

	// 公钥：序列化失败时保持空字节
	if pk, err := crypto.MarshalPublicKey(s.ident.PublicKey()); err == nil {
		msg.PublicKey = pk
	}

	// 监听地址：剥离尾部 /p2p/<id> 组件
	listen := s.listenAddrs()
	msg.ListenAddrs = types.MultiaddrsToBytes(listen)

	// 签名地址记录：没有现成记录且有监听地址时 mint 一个新记录并持久化
	msg.SignedPeerRecord = s.signedRecordBytes(listen)

	// 观测地址：连接的远端地址
	if conn != nil {
		if ra := conn.RemoteMultiaddr(); !ra.IsEmpty() {
			msg.ObservedAddr = ra.Bytes()
		}
	}

	// 协议集合：节点存储记录的本地协议
	if protos, err := s.peers.GetProtocols(localID); err == nil {
		msg.Protocols = types.ProtocolIDStrings(protos)
	}

	return msg
}

// listenAddrs 返回剥离 /p2p 后缀的当前监听地址
func (s *Service) listenAddrs() []types.Multiaddr {
	if s.addrs == nil {
		return nil
	}
	raw := s.addrs.Addresses()
	out := make([]types.Multiaddr, 0, len(raw))
	for _, a := range raw {
		out = append(out, a.StripPeerID())
	}
	return out
}

// signedRecordBytes 返回本地节点当前的签名地址记录字节
//
// 有监听地址，且节点存储没有记录或记录中的地址与当前监听地址不一致时，
// mint 一个新记录（序列号为纳秒时间戳，严格递增）、签名并持久化。
// 监听地址为空时不 mint：沿用已存储的记录，没有记录则返回 nil。
func (s *Service) signedRecordBytes(listen []types.Multiaddr) []byte {
	localID := s.ident.ID()

	env := s.peers.GetPeerRecord(localID)
	if env != nil {
		if rec, err := env.Record(); err == nil && addrsEqual(rec.Addrs, listen) {
			return marshalEnvelope(env)
		}
	}

	if len(listen) == 0 {
		if env != nil {
			return marshalEnvelope(env)
		}
		return nil
	}

	rec := record.NewPeerRecord(localID, listen)
	sealed, err := record.Seal(rec, s.ident.PrivateKey())
	if err != nil {
		logger.Warn("签名地址记录生成失败", "error", err)
		return nil
	}
	if _, err := s.peers.ConsumePeerRecord(sealed, interfaces.PermanentAddrTTL); err != nil {
		logger.Warn("持久化本地地址记录失败", "error", err)
	}

	return marshalEnvelope(sealed)
}

// marshalEnvelope 序列化信封，失败时返回 nil 并记录日志
func marshalEnvelope(env *record.Envelope) []byte {
	data, err := env.Marshal()
	if err != nil {
		logger.Warn("序列化地址记录信封失败", "error", err)
		return nil
	}
	return data
}

// addrsEqual 比较两个地址集合是否一致（与顺序无关）
func addrsEqual(a, b []types.Multiaddr) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[types.Multiaddr]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}
	for _, y := range b {
		if _, ok := set[y]; !ok {
			return false
		}
	}
	return true
}

// ============================================================================
//                              Push 发起方
// ============================================================================

// Push 向指定连接推送当前身份
//
// 连接并行处理，受 MaxPushOutgoingStreams 限制；没有确认，
// 不保证跨节点的顺序。错误只记录日志。
func (s *Service) Push(ctx context.Context, conns []interfaces.Connection) error {
	if len(conns) == 0 {
		return nil
	}

	listen := s.listenAddrs()
	msg := &pb.Push{
		ListenAddrs:      types.MultiaddrsToBytes(listen),
		SignedPeerRecord: s.signedRecordBytes(listen),
	}
	if protos, err := s.peers.GetProtocols(s.ident.ID()); err == nil {
		msg.Protocols = types.ProtocolIDStrings(protos)
	}

	limit := int64(s.cfg.MaxPushOutgoingStreams)
	if limit <= 0 {
		limit = 1
	}
	sem := semaphore.NewWeighted(limit)

	var wg sync.WaitGroup
	for _, conn := range conns {
		if conn == nil || conn.IsClosed() {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Debug("push 被取消", "error", err)
			break
		}

		wg.Add(1)
		go func(c interfaces.Connection) {
			defer wg.Done()
			defer sem.Release(1)
			s.pushToConn(ctx, c, msg)
		}(conn)
	}
	wg.Wait()

	return nil
}

// pushToConn 向单个连接写出一个推送帧
func (s *Service) pushToConn(ctx context.Context, conn interfaces.Connection, msg *pb.Push) {
	remote := conn.RemotePeer()

	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	stream, err := conn.NewStream(cctx)
	if err != nil {
		logger.Debug("打开 push 流失败", "peer", remote.ShortString(), "error", err)
		return
	}
	stream.SetProtocol(s.pushProtoID)

	stopWatch := watchContext(cctx, stream)
	defer stopWatch()
	defer stream.Close()

	if err := WriteMessage(stream, msg); err != nil {
		logger.Debug("写出 push 消息失败", "peer", remote.ShortString(), "error", err)
		return
	}

	logger.Debug("身份推送完成", "peer", remote.ShortString())
}

// PushToPeerStore 向所有公告支持 push 协议的已连接节点推送身份
func (s *Service) PushToPeerStore(ctx context.Context) error {
	if s.conns == nil {
		return nil
	}

	all := s.conns.Connections()
	targets := make([]interfaces.Connection, 0, len(all))
	for _, conn := range all {
		if conn == nil || conn.IsClosed() {
			continue
		}
		supported, err := s.peers.SupportsProtocols(conn.RemotePeer(), s.pushProtoID)
		if err != nil || len(supported) == 0 {
			continue
		}
		targets = append(targets, conn)
	}

	logger.Debug("push-to-all", "connections", len(all), "targets", len(targets))
	return s.Push(ctx, targets)
}

// ============================================================================
//                              Push 响应方
// ============================================================================

// handlePush 处理入站身份推送
//
// 读取一个消息帧并入库。与 identify 不同，push 不要求公钥字段；
// 信封节点 ID 与连接远端的绑定由入库时的信封验证保证。
// 所有错误只记录日志。
func (s *Service) handlePush(stream interfaces.Stream) {
	defer stream.Close()

	conn := stream.Conn()
	if conn == nil {
		logger.Debug("push 流缺少底层连接")
		return
	}

	remote := conn.RemotePeer()
	if remote.Equal(s.ident.ID()) {
		logger.Warn("丢弃来自本地节点的身份推送")
		return
	}

	ctx, cancel := context.WithTimeout(s.serviceContext(), s.cfg.Timeout)
	defer cancel()

	stopWatch := watchContext(ctx, stream)
	defer stopWatch()

	msg, err := ReadPushMessage(stream, s.cfg.MaxMessageSize)
	if err != nil {
		logger.Debug("读取 push 消息失败", "peer", remote.ShortString(), "error", err)
		return
	}

	// push 消息是身份记录的子集，复用同一入库路径
	s.rec.apply(remote, &pb.Identify{
		ListenAddrs:      msg.ListenAddrs,
		Protocols:        msg.Protocols,
		SignedPeerRecord: msg.SignedPeerRecord,
	}, modePush)
	logger.Debug("身份推送已入库", "peer", remote.ShortString())
}

// ============================================================================
//                              辅助
// ============================================================================

// serviceContext 返回服务生命周期上下文
//
// 未启动时（直接调用处理器的测试场景）退化为 Background。
func (s *Service) serviceContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}

// watchContext 将上下文取消传播到流
//
// 截止时间映射为流的读写超时；上下文被取消时重置流，
// 使阻塞中的读写立即返回。返回的 stop 必须在交换结束时调用。
func watchContext(ctx context.Context, stream interfaces.Stream) (stop func()) {
	if d, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(d)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = stream.Reset()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

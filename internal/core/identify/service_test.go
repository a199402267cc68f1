package identify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/dep2p/go-identify/pkg/interfaces"
	identityif "github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/lib/crypto"
	pb "github.com/dep2p/go-identify/pkg/lib/proto/identify"
	"github.com/dep2p/go-identify/pkg/lib/record"
	"github.com/dep2p/go-identify/pkg/types"
	"github.com/dep2p/go-identify/tests/mocks"
)

// ============================================================================
//                              测试夹具
// ============================================================================

// testNode 一个节点的服务及其全部协作方
type testNode struct {
	ident identityif.Identity
	svc   *Service
	peers *mocks.MockPeerstore
	addrs *mocks.MockAddressManager
	reg   *mocks.MockRegistrar
	conns *mocks.MockConnManager
	bus   *mocks.MockEventBus
}

// newTestNode 构造一个带默认配置的测试节点
func newTestNode(t *testing.T, cfg Config) *testNode {
	t.Helper()

	ident, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	n := &testNode{
		ident: ident,
		peers: mocks.NewMockPeerstore(),
		addrs: mocks.NewMockAddressManager(),
		reg:   mocks.NewMockRegistrar(),
		conns: mocks.NewMockConnManager(),
		bus:   mocks.NewMockEventBus(),
	}

	n.svc, err = New(cfg, ident, n.peers, n.addrs, n.reg, n.conns, n.bus)
	require.NoError(t, err)
	return n
}

// respond 以响应方身份生成一帧身份消息
//
// observerAddr 是响应方看到的对端地址（写入 observed_addr 字段）。
func (n *testNode) respond(t *testing.T, remote types.PeerID, observerAddr types.Multiaddr) []byte {
	t.Helper()

	conn := mocks.NewMockConnection(n.ident.ID(), remote)
	conn.RemoteAddr = observerAddr

	stream := mocks.NewMockStream()
	stream.ConnValue = conn

	n.svc.handleIdentify(stream)
	return stream.Written()
}

// dialWith 构造一条到 remote 的连接，其新流预置了给定的读数据
func dialWith(local, remote types.PeerID, frame []byte) (*mocks.MockConnection, *mocks.MockStream) {
	conn := mocks.NewMockConnection(local, remote)
	stream := mocks.NewMockStreamWithData(frame)
	stream.ConnValue = conn
	conn.NewStreamFunc = func(context.Context) (interfaces.Stream, error) {
		return stream, nil
	}
	return conn, stream
}

// encodeFrame 手工编码一帧协议消息
func encodeFrame(t *testing.T, msg proto.Message) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, msg))
	return buf.Bytes()
}

// marshaledKey 返回身份的序列化公钥
func marshaledKey(t *testing.T, ident identityif.Identity) []byte {
	t.Helper()
	pk, err := crypto.MarshalPublicKey(ident.PublicKey())
	require.NoError(t, err)
	return pk
}

// ============================================================================
//                              生命周期
// ============================================================================

// TestService_StartStop 测试启动注册与停止注销
func TestService_StartStop(t *testing.T) {
	n := newTestNode(t, NewConfig())

	require.NoError(t, n.svc.Start())

	// 两个协议都已注册并携带各自的流上限
	assert.True(t, n.reg.Registered("/ipfs/id/1.0.0"))
	assert.True(t, n.reg.Registered("/ipfs/id/push/1.0.0"))
	assert.Equal(t, interfaces.StreamCaps{MaxInbound: 1, MaxOutbound: 1}, n.reg.Caps["/ipfs/id/1.0.0"])
	assert.Equal(t, interfaces.StreamCaps{MaxInbound: 1, MaxOutbound: 1}, n.reg.Caps["/ipfs/id/push/1.0.0"])

	// 本地元数据已写入
	agent, err := n.peers.Get(n.ident.ID(), interfaces.MetadataAgentVersion)
	require.NoError(t, err)
	assert.Equal(t, []byte(DefaultAgentVersion), agent)

	// 重复启动被拒绝
	assert.ErrorIs(t, n.svc.Start(), ErrAlreadyStarted)

	require.NoError(t, n.svc.Stop())

	// 协议已注销
	assert.False(t, n.reg.Registered("/ipfs/id/1.0.0"))
	assert.False(t, n.reg.Registered("/ipfs/id/push/1.0.0"))

	// 重复停止被拒绝
	assert.ErrorIs(t, n.svc.Stop(), ErrNotStarted)
}

// TestService_Protocols 测试协议 ID 公告
func TestService_Protocols(t *testing.T) {
	n := newTestNode(t, NewConfig().WithProtocolPrefix("myapp"))

	assert.Equal(t, []types.ProtocolID{
		"/myapp/id/1.0.0",
		"/myapp/id/push/1.0.0",
	}, n.svc.Protocols())
}

// ============================================================================
//                              Identify 端到端
// ============================================================================

// TestIdentify_HappyPathWithEnvelope 带签名记录的完整交换
//
// A 监听 /ip4/10.0.0.1/tcp/4001，公告协议 {/chat/1, /ping/1}，agent "a/1"。
// 交换后 B 的节点存储中 A 的地址来自信封、协议与元数据齐全。
func TestIdentify_HappyPathWithEnvelope(t *testing.T) {
	a := newTestNode(t, NewConfig().WithAgentVersion("a/1"))
	a.addrs.ListenAddrs = []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}
	require.NoError(t, a.peers.SetProtocols(a.ident.ID(), "/chat/1", "/ping/1"))

	b := newTestNode(t, NewConfig())

	frame := a.respond(t, b.ident.ID(), "/ip4/10.0.0.9/tcp/5001")
	conn, stream := dialWith(b.ident.ID(), a.ident.ID(), frame)

	require.NoError(t, b.svc.Identify(context.Background(), conn))

	// 地址来自信封
	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}, b.peers.Addrs(a.ident.ID()))
	assert.NotNil(t, b.peers.GetPeerRecord(a.ident.ID()))

	// 协议与元数据
	protos, _ := b.peers.GetProtocols(a.ident.ID())
	assert.ElementsMatch(t, []types.ProtocolID{"/chat/1", "/ping/1"}, protos)

	agent, err := b.peers.Get(a.ident.ID(), interfaces.MetadataAgentVersion)
	require.NoError(t, err)
	assert.Equal(t, []byte("a/1"), agent)

	// 远端公钥已记录
	pk, err := b.peers.PubKey(a.ident.ID())
	require.NoError(t, err)
	assert.True(t, pk.Equals(a.ident.PublicKey()))

	// B 学到了 A 观测到的自己的地址
	observed := b.addrs.ObservedAddrs()
	require.Len(t, observed, 1)
	assert.Equal(t, types.Multiaddr("/ip4/10.0.0.9/tcp/5001"), observed[0])

	// 交换结束后流已关闭
	assert.True(t, stream.Closed)
}

// TestIdentify_LegacyPeer 无签名记录的旧式节点
func TestIdentify_LegacyPeer(t *testing.T) {
	a, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	b := newTestNode(t, NewConfig())

	frame := encodeFrame(t, &pb.Identify{
		PublicKey:    marshaledKey(t, a),
		ListenAddrs:  [][]byte{[]byte("/ip4/10.0.0.2/tcp/4001")},
		Protocols:    []string{"/chat/1"},
		AgentVersion: []byte("legacy/0.9"),
	})
	conn, _ := dialWith(b.ident.ID(), a.ID(), frame)

	require.NoError(t, b.svc.Identify(context.Background(), conn))

	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.2/tcp/4001"}, b.peers.Addrs(a.ID()))
	assert.Nil(t, b.peers.GetPeerRecord(a.ID()), "旧式节点不应留下签名记录")
}

// TestIdentify_PeerIDMismatch 公钥派生节点与连接远端不符
func TestIdentify_PeerIDMismatch(t *testing.T) {
	z, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	b := newTestNode(t, NewConfig())

	// 消息携带 Z 的公钥，但连接远端声称是另一个节点 A
	frame := encodeFrame(t, &pb.Identify{
		PublicKey:   marshaledKey(t, z),
		ListenAddrs: [][]byte{[]byte("/ip4/10.0.0.3/tcp/4001")},
		Protocols:   []string{"/chat/1"},
	})
	remoteA := types.PeerID("QmClaimedPeerA")
	conn, _ := dialWith(b.ident.ID(), remoteA, frame)

	err = b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrInvalidPeer)

	// 节点存储没有任何写入
	assert.Empty(t, b.peers.Addrs(remoteA))
	protos, _ := b.peers.GetProtocols(remoteA)
	assert.Empty(t, protos)
	_, err = b.peers.PubKey(remoteA)
	assert.Error(t, err)
}

// TestIdentify_SelfRejected 自我识别被拒绝
func TestIdentify_SelfRejected(t *testing.T) {
	b := newTestNode(t, NewConfig())

	conn := mocks.NewMockConnection(b.ident.ID(), b.ident.ID())

	err := b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrInvalidPeer)
}

// TestIdentify_OversizeFrame 超限帧
func TestIdentify_OversizeFrame(t *testing.T) {
	b := newTestNode(t, NewConfig())

	header := make([]byte, varint.UvarintSize(9000))
	varint.PutUvarint(header, 9000)
	conn, stream := dialWith(b.ident.ID(), "QmRemotePeer", header)

	err := b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrMessageTooLarge)
	assert.True(t, stream.Closed)
}

// TestIdentify_MissingPublicKey 响应缺少公钥
func TestIdentify_MissingPublicKey(t *testing.T) {
	b := newTestNode(t, NewConfig())

	frame := encodeFrame(t, &pb.Identify{
		ListenAddrs: [][]byte{[]byte("/ip4/10.0.0.4/tcp/4001")},
	})
	conn, _ := dialWith(b.ident.ID(), "QmRemotePeer", frame)

	err := b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrMissingPublicKey)
}

// TestIdentify_InvalidMessage 消息体无法解码
func TestIdentify_InvalidMessage(t *testing.T) {
	b := newTestNode(t, NewConfig())

	// 合法长度前缀 + 损坏消息体
	conn, _ := dialWith(b.ident.ID(), "QmRemotePeer", []byte{0x03, 0x0a, 0x7f, 0x01})

	err := b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

// TestIdentify_ConnectionEnded 流在消息帧前关闭
func TestIdentify_ConnectionEnded(t *testing.T) {
	b := newTestNode(t, NewConfig())

	conn, _ := dialWith(b.ident.ID(), "QmRemotePeer", nil)

	err := b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrConnectionEnded)
}

// TestIdentify_Timeout 交换超时
func TestIdentify_Timeout(t *testing.T) {
	b := newTestNode(t, NewConfig().WithTimeout(50*time.Millisecond))

	conn := mocks.NewMockConnection(b.ident.ID(), "QmRemotePeer")
	stream := mocks.NewMockStream()
	stream.ConnValue = conn
	stream.ReadFunc = func([]byte) (int, error) {
		// 模拟阻塞直到交换被取消
		time.Sleep(300 * time.Millisecond)
		return 0, errors.New("stream reset")
	}
	conn.NewStreamFunc = func(context.Context) (interfaces.Stream, error) {
		return stream, nil
	}

	err := b.svc.Identify(context.Background(), conn)
	assert.ErrorIs(t, err, ErrTimeout)
}

// TestIdentify_CallerCancellation 调用方取消
func TestIdentify_CallerCancellation(t *testing.T) {
	b := newTestNode(t, NewConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn, _ := dialWith(b.ident.ID(), "QmRemotePeer", nil)

	err := b.svc.Identify(ctx, conn)
	assert.ErrorIs(t, err, ErrCancelled)
}

// TestIdentify_NilConnection nil 连接
func TestIdentify_NilConnection(t *testing.T) {
	b := newTestNode(t, NewConfig())
	assert.ErrorIs(t, b.svc.Identify(context.Background(), nil), ErrNilConnection)
}

// ============================================================================
//                              响应方
// ============================================================================

// TestHandleIdentify_Response 测试响应消息内容
func TestHandleIdentify_Response(t *testing.T) {
	a := newTestNode(t, NewConfig().WithAgentVersion("a/1"))
	a.addrs.ListenAddrs = []types.Multiaddr{
		"/ip4/10.0.0.1/tcp/4001/p2p/" + types.Multiaddr(a.ident.ID()),
		"/ip4/192.168.0.1/tcp/4001",
	}
	require.NoError(t, a.peers.SetProtocols(a.ident.ID(), "/chat/1"))

	frame := a.respond(t, "QmObserver", "/ip4/7.7.7.7/tcp/7001")

	msg, err := ReadMessage(bytes.NewReader(frame), DefaultMaxMessageSize)
	require.NoError(t, err)

	// 公钥派生本地节点 ID
	derived, err := crypto.PeerIDFromPublicKeyBytes(msg.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, a.ident.ID(), derived)

	// 监听地址剥离了 /p2p 后缀
	require.Len(t, msg.ListenAddrs, 2)
	assert.Equal(t, "/ip4/10.0.0.1/tcp/4001", string(msg.ListenAddrs[0]))
	assert.Equal(t, "/ip4/192.168.0.1/tcp/4001", string(msg.ListenAddrs[1]))

	// 观测地址是连接远端地址
	assert.Equal(t, "/ip4/7.7.7.7/tcp/7001", string(msg.ObservedAddr))

	// 版本串与协议集合
	assert.Equal(t, "a/1", string(msg.AgentVersion))
	assert.Equal(t, DefaultProtocolVersion, string(msg.ProtocolVersion))
	assert.Equal(t, []string{"/chat/1"}, msg.Protocols)

	// 签名记录可验证且绑定本地节点
	_, rec, err := record.ConsumeEnvelope(msg.SignedPeerRecord, record.PeerRecordDomain)
	require.NoError(t, err)
	assert.Equal(t, a.ident.ID(), rec.PeerID)
	assert.ElementsMatch(t, []types.Multiaddr{
		"/ip4/10.0.0.1/tcp/4001",
		"/ip4/192.168.0.1/tcp/4001",
	}, rec.Addrs)

	// mint 的记录已持久化
	assert.NotNil(t, a.peers.GetPeerRecord(a.ident.ID()))
}

// TestHandleIdentify_ReusesStoredRecord 测试记录只 mint 一次
func TestHandleIdentify_ReusesStoredRecord(t *testing.T) {
	a := newTestNode(t, NewConfig())
	a.addrs.ListenAddrs = []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}

	frame1 := a.respond(t, "QmObserver", "")
	frame2 := a.respond(t, "QmObserver", "")

	msg1, err := ReadMessage(bytes.NewReader(frame1), DefaultMaxMessageSize)
	require.NoError(t, err)
	msg2, err := ReadMessage(bytes.NewReader(frame2), DefaultMaxMessageSize)
	require.NoError(t, err)

	_, rec1, err := record.ConsumeEnvelope(msg1.SignedPeerRecord, record.PeerRecordDomain)
	require.NoError(t, err)
	_, rec2, err := record.ConsumeEnvelope(msg2.SignedPeerRecord, record.PeerRecordDomain)
	require.NoError(t, err)

	assert.Equal(t, rec1.Seq, rec2.Seq, "地址未变化时不应重新 mint 记录")
}

// TestHandleIdentify_NoListenAddrs 无监听地址时不 mint 记录
func TestHandleIdentify_NoListenAddrs(t *testing.T) {
	a := newTestNode(t, NewConfig())

	frame := a.respond(t, "QmObserver", "")

	msg, err := ReadMessage(bytes.NewReader(frame), DefaultMaxMessageSize)
	require.NoError(t, err)

	assert.Empty(t, msg.SignedPeerRecord)
	assert.Empty(t, msg.ListenAddrs)
	assert.Nil(t, a.peers.GetPeerRecord(a.ident.ID()))
}

// ============================================================================
//                              Push
// ============================================================================

// TestPush_UpdatesAddresses 推送传播新地址
//
// A 先推送一次；新增监听地址后再推送。两次 B 的地址簿都应反映
// A 当时的地址集合（第二次依赖序列号更大的新记录）。
func TestPush_UpdatesAddresses(t *testing.T) {
	a := newTestNode(t, NewConfig())
	a.addrs.ListenAddrs = []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}
	require.NoError(t, a.peers.SetProtocols(a.ident.ID(), "/chat/1"))

	b := newTestNode(t, NewConfig())

	deliver := func() {
		// A 推送到与 B 的连接
		connAB := mocks.NewMockConnection(a.ident.ID(), b.ident.ID())
		pushStream := mocks.NewMockStream()
		pushStream.ConnValue = connAB
		connAB.NewStreamFunc = func(context.Context) (interfaces.Stream, error) {
			return pushStream, nil
		}
		require.NoError(t, a.svc.Push(context.Background(), []interfaces.Connection{connAB}))
		assert.EqualValues(t, "/ipfs/id/push/1.0.0", pushStream.Protocol())

		// B 收到该帧
		connBA := mocks.NewMockConnection(b.ident.ID(), a.ident.ID())
		recvStream := mocks.NewMockStreamWithData(pushStream.Written())
		recvStream.ConnValue = connBA
		b.svc.handlePush(recvStream)
	}

	deliver()
	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}, b.peers.Addrs(a.ident.ID()))

	// A 新增监听地址后再次推送
	a.addrs.ListenAddrs = []types.Multiaddr{
		"/ip4/10.0.0.1/tcp/4001",
		"/ip4/10.0.0.3/tcp/4001",
	}
	deliver()
	assert.ElementsMatch(t, []types.Multiaddr{
		"/ip4/10.0.0.1/tcp/4001",
		"/ip4/10.0.0.3/tcp/4001",
	}, b.peers.Addrs(a.ident.ID()))

	// 协议集合随推送入库
	protos, _ := b.peers.GetProtocols(a.ident.ID())
	assert.ElementsMatch(t, []types.ProtocolID{"/chat/1"}, protos)
}

// TestHandlePush_RejectsSelf 丢弃来自本地节点的推送
func TestHandlePush_RejectsSelf(t *testing.T) {
	b := newTestNode(t, NewConfig())

	frame := encodeFrame(t, &pb.Push{
		ListenAddrs: [][]byte{[]byte("/ip4/6.6.6.6/tcp/4001")},
	})

	conn := mocks.NewMockConnection(b.ident.ID(), b.ident.ID())
	stream := mocks.NewMockStreamWithData(frame)
	stream.ConnValue = conn

	b.svc.handlePush(stream)

	assert.Empty(t, b.peers.Addrs(b.ident.ID()))
	assert.True(t, stream.Closed)
}

// TestHandlePush_NoPublicKeyRequired push 不要求公钥字段
func TestHandlePush_NoPublicKeyRequired(t *testing.T) {
	a, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	b := newTestNode(t, NewConfig())

	frame := encodeFrame(t, &pb.Push{
		ListenAddrs: [][]byte{[]byte("/ip4/10.0.0.8/tcp/4001")},
		Protocols:   []string{"/chat/1"},
	})

	conn := mocks.NewMockConnection(b.ident.ID(), a.ID())
	stream := mocks.NewMockStreamWithData(frame)
	stream.ConnValue = conn

	b.svc.handlePush(stream)

	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.8/tcp/4001"}, b.peers.Addrs(a.ID()))
}

// TestPushToPeerStore_FiltersByProtocol 只推送给公告支持 push 的节点
func TestPushToPeerStore_FiltersByProtocol(t *testing.T) {
	a := newTestNode(t, NewConfig())
	a.addrs.ListenAddrs = []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}

	newCountingConn := func(remote types.PeerID) (*mocks.MockConnection, *int) {
		opened := 0
		conn := mocks.NewMockConnection(a.ident.ID(), remote)
		conn.NewStreamFunc = func(context.Context) (interfaces.Stream, error) {
			opened++
			stream := mocks.NewMockStream()
			stream.ConnValue = conn
			return stream, nil
		}
		return conn, &opened
	}

	supporter, supporterOpened := newCountingConn("QmSupporter")
	other, otherOpened := newCountingConn("QmOther")

	a.conns.Add(supporter)
	a.conns.Add(other)

	// 只有 supporter 公告了 push 协议
	require.NoError(t, a.peers.SetProtocols("QmSupporter", a.svc.pushProtoID))
	require.NoError(t, a.peers.SetProtocols("QmOther", "/chat/1"))

	require.NoError(t, a.svc.PushToPeerStore(context.Background()))

	assert.Equal(t, 1, *supporterOpened)
	assert.Equal(t, 0, *otherOpened)
}

// TestPush_SkipsClosedConnections 跳过已关闭的连接
func TestPush_SkipsClosedConnections(t *testing.T) {
	a := newTestNode(t, NewConfig())

	opened := 0
	conn := mocks.NewMockConnection(a.ident.ID(), "QmRemotePeer")
	conn.NewStreamFunc = func(context.Context) (interfaces.Stream, error) {
		opened++
		return mocks.NewMockStream(), nil
	}
	require.NoError(t, conn.Close())

	require.NoError(t, a.svc.Push(context.Background(), []interfaces.Connection{conn, nil}))
	assert.Equal(t, 0, opened)
}

package identify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-identify/pkg/interfaces"
	identityif "github.com/dep2p/go-identify/pkg/interfaces/identity"
	"github.com/dep2p/go-identify/pkg/lib/crypto"
	pb "github.com/dep2p/go-identify/pkg/lib/proto/identify"
	"github.com/dep2p/go-identify/pkg/lib/record"
	"github.com/dep2p/go-identify/pkg/types"
	"github.com/dep2p/go-identify/tests/mocks"
)

// sealedRecordBytes 为指定身份生成签名地址记录字节
func sealedRecordBytes(t *testing.T, ident identityif.Identity, seq uint64, addrs ...types.Multiaddr) []byte {
	t.Helper()

	rec := &record.PeerRecord{
		PeerID: ident.ID(),
		Seq:    seq,
		Addrs:  addrs,
	}
	env, err := record.Seal(rec, ident.PrivateKey())
	require.NoError(t, err)

	data, err := env.Marshal()
	require.NoError(t, err)
	return data
}

// TestReconciler_EnvelopeWins 测试签名记录被接受后覆盖未签名地址
func TestReconciler_EnvelopeWins(t *testing.T) {
	ident, err := crypto.GenerateIdentity()
	require.NoError(t, err)
	remote := ident.ID()

	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	msg := &pb.Identify{
		ListenAddrs:      [][]byte{[]byte("/ip4/99.99.99.99/tcp/1")},
		Protocols:        []string{"/chat/1", "/ping/1"},
		AgentVersion:     []byte("a/1"),
		ProtocolVersion:  []byte("ipfs/0.1.0"),
		SignedPeerRecord: sealedRecordBytes(t, ident, 1, "/ip4/10.0.0.1/tcp/4001"),
	}

	r.apply(remote, msg, modeIdentify)

	// 地址来自信封，而不是未签名的 listen_addrs
	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}, peers.Addrs(remote))
	assert.NotNil(t, peers.GetPeerRecord(remote))

	// 协议与元数据始终写入
	protos, _ := peers.GetProtocols(remote)
	assert.ElementsMatch(t, []types.ProtocolID{"/chat/1", "/ping/1"}, protos)

	agent, err := peers.Get(remote, interfaces.MetadataAgentVersion)
	require.NoError(t, err)
	assert.Equal(t, []byte("a/1"), agent)

	pv, err := peers.Get(remote, interfaces.MetadataProtocolVersion)
	require.NoError(t, err)
	assert.Equal(t, []byte("ipfs/0.1.0"), pv)
}

// TestReconciler_LegacyFallbackOnBadEnvelope 测试信封损坏时回退到未签名地址
func TestReconciler_LegacyFallbackOnBadEnvelope(t *testing.T) {
	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	remote := types.PeerID("QmRemotePeer")
	msg := &pb.Identify{
		ListenAddrs:      [][]byte{[]byte("/ip4/10.0.0.2/tcp/4001")},
		Protocols:        []string{"/echo/1.0.0"},
		AgentVersion:     []byte("a/2"),
		SignedPeerRecord: []byte("definitely not an envelope"),
	}

	r.apply(remote, msg, modeIdentify)

	// 回退路径：未签名地址入库，没有签名记录
	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.2/tcp/4001"}, peers.Addrs(remote))
	assert.Nil(t, peers.GetPeerRecord(remote))

	// 协议与元数据仍然入库
	protos, _ := peers.GetProtocols(remote)
	assert.ElementsMatch(t, []types.ProtocolID{"/echo/1.0.0"}, protos)
}

// TestReconciler_EnvelopePeerMismatch 测试信封节点与连接远端不符时回退
func TestReconciler_EnvelopePeerMismatch(t *testing.T) {
	other, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	// 信封由 other 签名，但连接远端是另一个节点
	remote := types.PeerID("QmSomeoneElse")
	msg := &pb.Identify{
		ListenAddrs:      [][]byte{[]byte("/ip4/10.0.0.3/tcp/4001")},
		SignedPeerRecord: sealedRecordBytes(t, other, 1, "/ip4/7.7.7.7/tcp/7"),
	}

	r.apply(remote, msg, modeIdentify)

	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.3/tcp/4001"}, peers.Addrs(remote))
	assert.Nil(t, peers.GetPeerRecord(remote))
}

// TestReconciler_StaleSequenceFallsBack 测试序列号过旧的记录被地址簿拒绝
func TestReconciler_StaleSequenceFallsBack(t *testing.T) {
	ident, err := crypto.GenerateIdentity()
	require.NoError(t, err)
	remote := ident.ID()

	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	// 先入库 seq=5
	msg1 := &pb.Identify{
		SignedPeerRecord: sealedRecordBytes(t, ident, 5, "/ip4/10.0.0.5/tcp/4001"),
	}
	r.apply(remote, msg1, modeIdentify)
	require.Equal(t, []types.Multiaddr{"/ip4/10.0.0.5/tcp/4001"}, peers.Addrs(remote))

	// seq=3 的旧记录被拒绝，回退到未签名地址
	msg2 := &pb.Identify{
		ListenAddrs:      [][]byte{[]byte("/ip4/10.0.0.9/tcp/4001")},
		SignedPeerRecord: sealedRecordBytes(t, ident, 3, "/ip4/10.0.0.3/tcp/4001"),
	}
	r.apply(remote, msg2, modeIdentify)

	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.9/tcp/4001"}, peers.Addrs(remote))
}

// TestReconciler_SkipsUnparseableListenAddr 测试仅跳过无法解析的地址条目
func TestReconciler_SkipsUnparseableListenAddr(t *testing.T) {
	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	remote := types.PeerID("QmRemotePeer")
	msg := &pb.Identify{
		ListenAddrs: [][]byte{
			[]byte("/ip4/10.0.0.1/tcp/4001"),
			[]byte("not-a-multiaddr"),
			[]byte("/ip4/10.0.0.2/tcp/4001"),
		},
	}

	r.apply(remote, msg, modeIdentify)

	assert.Equal(t, []types.Multiaddr{
		"/ip4/10.0.0.1/tcp/4001",
		"/ip4/10.0.0.2/tcp/4001",
	}, peers.Addrs(remote))
}

// TestReconciler_ObservedAddrCap 测试观测地址上限
func TestReconciler_ObservedAddrCap(t *testing.T) {
	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, 1)

	// 两个节点报告两个不同的观测地址，只保留一个
	r.apply("QmPeerOne", &pb.Identify{
		ObservedAddr: []byte("/ip4/1.1.1.1/tcp/4001"),
	}, modeIdentify)
	r.apply("QmPeerTwo", &pb.Identify{
		ObservedAddr: []byte("/ip4/2.2.2.2/tcp/4001"),
	}, modeIdentify)

	observed := addrs.ObservedAddrs()
	require.Len(t, observed, 1)
	assert.Equal(t, types.Multiaddr("/ip4/1.1.1.1/tcp/4001"), observed[0])
}

// TestReconciler_ObservedAddrParseFailure 测试观测地址解析失败不影响交换
func TestReconciler_ObservedAddrParseFailure(t *testing.T) {
	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	r.apply("QmRemotePeer", &pb.Identify{
		ObservedAddr: []byte("garbage"),
		Protocols:    []string{"/chat/1"},
	}, modeIdentify)

	assert.Empty(t, addrs.ObservedAddrs())
	protos, _ := peers.GetProtocols("QmRemotePeer")
	assert.Len(t, protos, 1)
}

// TestReconciler_PushModeSkipsObserved 测试 push 模式不学习观测地址
func TestReconciler_PushModeSkipsObserved(t *testing.T) {
	peers := mocks.NewMockPeerstore()
	addrs := mocks.NewMockAddressManager()
	r := newReconciler(peers, addrs, DefaultMaxObservedAddresses)

	r.apply("QmRemotePeer", &pb.Identify{
		ObservedAddr: []byte("/ip4/3.3.3.3/tcp/4001"),
	}, modePush)

	assert.Empty(t, addrs.ObservedAddrs())
}

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-identify/pkg/lib/record"
	"github.com/dep2p/go-identify/pkg/types"
)

// TestPeerRecord_RoundTrip 测试地址记录编解码往返
func TestPeerRecord_RoundTrip(t *testing.T) {
	rec := &record.PeerRecord{
		PeerID: "QmTestPeer",
		Seq:    42,
		Addrs: []types.Multiaddr{
			"/ip4/10.0.0.1/tcp/4001",
			"/ip6/::1/udp/4001/quic-v1",
		},
	}

	data, err := rec.Marshal()
	require.NoError(t, err)

	decoded := &record.PeerRecord{}
	require.NoError(t, decoded.Unmarshal(data))

	assert.Equal(t, rec.PeerID, decoded.PeerID)
	assert.Equal(t, rec.Seq, decoded.Seq)
	assert.Equal(t, rec.Addrs, decoded.Addrs)
}

// TestPeerRecord_LargeSeq 测试大序列号（纳秒时间戳量级）
func TestPeerRecord_LargeSeq(t *testing.T) {
	rec := &record.PeerRecord{
		PeerID: "QmTestPeer",
		Seq:    1754300000000000000,
		Addrs:  []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"},
	}

	data, err := rec.Marshal()
	require.NoError(t, err)

	decoded := &record.PeerRecord{}
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, rec.Seq, decoded.Seq)
}

// TestPeerRecord_EmptyPeerID 测试缺少节点 ID 的记录
func TestPeerRecord_EmptyPeerID(t *testing.T) {
	rec := &record.PeerRecord{
		Addrs: []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"},
	}

	_, err := rec.Marshal()
	assert.ErrorIs(t, err, record.ErrEmptyPeerID)
}

// TestPeerRecord_NewPeerRecord 测试新记录的序列号单调性
func TestPeerRecord_NewPeerRecord(t *testing.T) {
	addrs := []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}

	first := record.NewPeerRecord("QmPeer", addrs)
	second := record.NewPeerRecord("QmPeer", addrs)

	assert.NotZero(t, first.Seq)
	assert.True(t, second.Seq >= first.Seq, "后创建的记录序列号不应回退")
	assert.True(t, second.IsNewerThan(nil))
}

// TestPeerRecord_IsNewerThan 测试序列号比较
func TestPeerRecord_IsNewerThan(t *testing.T) {
	older := &record.PeerRecord{PeerID: "QmPeer", Seq: 1}
	newer := &record.PeerRecord{PeerID: "QmPeer", Seq: 2}

	assert.True(t, newer.IsNewerThan(older))
	assert.False(t, older.IsNewerThan(newer))
	assert.False(t, older.IsNewerThan(older))
}

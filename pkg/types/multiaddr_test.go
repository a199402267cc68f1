package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseMultiaddr 测试地址解析
func TestParseMultiaddr(t *testing.T) {
	valid := []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip6/::1/udp/4001/quic-v1",
		"/dns4/example.com/tcp/443",
		"/ip4/1.2.3.4/tcp/4001/p2p/QmNode",
	}
	for _, s := range valid {
		ma, err := ParseMultiaddr(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ma.String())
	}

	invalid := []string{
		"",
		"1.2.3.4:4001",
		"/unknown/foo/bar",
		"/ip4",
	}
	for _, s := range invalid {
		_, err := ParseMultiaddr(s)
		assert.Error(t, err, s)
	}
}

// TestMultiaddr_Bytes 测试二进制形式往返
func TestMultiaddr_Bytes(t *testing.T) {
	ma := MustParseMultiaddr("/ip4/10.0.0.1/tcp/4001")

	got, err := MultiaddrFromBytes(ma.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ma, got)

	_, err = MultiaddrFromBytes([]byte("garbage"))
	assert.Error(t, err)
}

// TestMultiaddr_StripPeerID 测试剥离 /p2p 后缀
func TestMultiaddr_StripPeerID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/ip4/1.2.3.4/tcp/4001/p2p/QmNode", "/ip4/1.2.3.4/tcp/4001"},
		{"/ip4/1.2.3.4/tcp/4001", "/ip4/1.2.3.4/tcp/4001"},
		{"/p2p/QmNode", "/p2p/QmNode"},
	}
	for _, tc := range tests {
		got := Multiaddr(tc.in).StripPeerID()
		assert.Equal(t, tc.want, got.String(), tc.in)
	}
}

// TestMultiaddr_PeerID 测试提取尾部节点 ID
func TestMultiaddr_PeerID(t *testing.T) {
	assert.Equal(t, PeerID("QmNode"), Multiaddr("/ip4/1.2.3.4/tcp/4001/p2p/QmNode").PeerID())
	assert.Equal(t, EmptyPeerID, Multiaddr("/ip4/1.2.3.4/tcp/4001").PeerID())
}

// TestPeerID_ShortString 测试日志短标识
func TestPeerID_ShortString(t *testing.T) {
	assert.Equal(t, "12D3KooW", PeerID("12D3KooWTestPeer").ShortString())
	assert.Equal(t, "short", PeerID("short").ShortString())
}

// TestParsePeerID 测试节点 ID 解析
func TestParsePeerID(t *testing.T) {
	id, err := ParsePeerID("12D3KooW")
	require.NoError(t, err)
	assert.Equal(t, PeerID("12D3KooW"), id)

	_, err = ParsePeerID("")
	assert.ErrorIs(t, err, ErrEmptyPeerID)

	// 0 和 O 不在 Base58 字母表中
	_, err = ParsePeerID("0OIl")
	assert.ErrorIs(t, err, ErrInvalidPeerID)
}

// TestBase58_RoundTrip 测试 Base58 编解码往返
func TestBase58_RoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0xfe, 0xff, 0x42}

	encoded := Base58Encode(data)
	decoded, err := Base58Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

package identify

import (
	"github.com/dep2p/go-identify/pkg/interfaces"
	"github.com/dep2p/go-identify/pkg/lib/record"
	pb "github.com/dep2p/go-identify/pkg/lib/proto/identify"
	"github.com/dep2p/go-identify/pkg/types"
)

// reconcileMode 入库模式
type reconcileMode int

const (
	// modeIdentify identify 交换：观测地址会被提交给地址管理器
	modeIdentify reconcileMode = iota

	// modePush push 交换：不学习观测地址
	modePush
)

// reconciler 将已验证的身份视图写入节点存储
//
// 对远端节点的地址/协议/元数据字段，reconciler 是唯一写入方。
// 并发交换的收敛依赖节点存储自身的写序：签名记录靠序列号，
// 元数据是 last-write-wins，引擎不加额外同步。
type reconciler struct {
	peers       interfaces.Peerstore
	addrs       interfaces.AddressManager
	maxObserved int
}

func newReconciler(peers interfaces.Peerstore, addrs interfaces.AddressManager, maxObserved int) *reconciler {
	return &reconciler{
		peers:       peers,
		addrs:       addrs,
		maxObserved: maxObserved,
	}
}

// apply 按固定顺序应用身份消息
//
// 顺序：
//  1. 签名地址记录验证通过且被地址簿接受 ⇒ 跳过未签名地址
//  2. 否则回退：逐条解析 listen_addrs，跳过无法解析的条目
//  3. 始终覆盖协议集合
//  4. 存在时写入 AgentVersion / ProtocolVersion 元数据（原始字节串）
//  5. 仅 identify 模式：在上限内提交观测地址
func (r *reconciler) apply(p types.PeerID, msg *pb.Identify, mode reconcileMode) {
	accepted := r.consumeSignedRecord(p, msg.SignedPeerRecord)

	if !accepted {
		r.applyLegacyAddrs(p, msg.ListenAddrs)
	}

	if err := r.peers.SetProtocols(p, types.ProtocolIDsFromStrings(msg.Protocols)...); err != nil {
		logger.Warn("写入协议集合失败", "peer", p.ShortString(), "error", err)
	}

	if len(msg.AgentVersion) > 0 {
		if err := r.peers.Put(p, interfaces.MetadataAgentVersion, msg.AgentVersion); err != nil {
			logger.Warn("写入 AgentVersion 失败", "peer", p.ShortString(), "error", err)
		}
	}
	if len(msg.ProtocolVersion) > 0 {
		if err := r.peers.Put(p, interfaces.MetadataProtocolVersion, msg.ProtocolVersion); err != nil {
			logger.Warn("写入 ProtocolVersion 失败", "peer", p.ShortString(), "error", err)
		}
	}

	if mode == modeIdentify {
		r.offerObservedAddr(p, msg.ObservedAddr)
	}
}

// consumeSignedRecord 验证签名地址记录并提交给地址簿
//
// 验证失败、节点 ID 不匹配或地址簿拒绝（序列号过旧）都返回 false，
// 交换回退到未签名地址路径，不中止。
func (r *reconciler) consumeSignedRecord(p types.PeerID, envBytes []byte) bool {
	if len(envBytes) == 0 {
		return false
	}

	env, rec, err := record.ConsumeEnvelope(envBytes, record.PeerRecordDomain)
	if err != nil {
		logger.Warn("签名地址记录验证失败，回退到未签名地址",
			"peer", p.ShortString(),
			"error", err)
		return false
	}

	if !rec.PeerID.Equal(p) {
		logger.Warn("签名地址记录节点 ID 与连接远端不符，回退到未签名地址",
			"peer", p.ShortString(),
			"recordPeer", rec.PeerID.ShortString())
		return false
	}

	ok, err := r.peers.ConsumePeerRecord(env, interfaces.ConnectedAddrTTL)
	if err != nil {
		logger.Warn("提交签名地址记录失败", "peer", p.ShortString(), "error", err)
		return false
	}
	if !ok {
		logger.Debug("签名地址记录未被接受（序列号过旧）",
			"peer", p.ShortString(),
			"seq", rec.Seq)
		return false
	}

	logger.Debug("签名地址记录已入库",
		"peer", p.ShortString(),
		"seq", rec.Seq,
		"addrs", len(rec.Addrs))
	return true
}

// applyLegacyAddrs 将未签名的监听地址写入地址簿
//
// 逐条解析，仅跳过无法解析的条目；没有任何可用地址时不触碰地址簿。
func (r *reconciler) applyLegacyAddrs(p types.PeerID, listenAddrs [][]byte) {
	var maddrs []types.Multiaddr
	for _, ab := range listenAddrs {
		ma, err := types.MultiaddrFromBytes(ab)
		if err != nil {
			logger.Debug("跳过无法解析的监听地址",
				"peer", p.ShortString(),
				"addr", string(ab),
				"error", err)
			continue
		}
		maddrs = append(maddrs, ma)
	}

	if len(maddrs) == 0 {
		return
	}

	r.peers.SetAddrs(p, maddrs, interfaces.ConnectedAddrTTL)
	logger.Debug("未签名监听地址已入库",
		"peer", p.ShortString(),
		"addrs", len(maddrs))
}

// offerObservedAddr 在上限内向地址管理器提交观测地址
//
// 解析失败只意味着没有学到观测地址，不影响交换结果。
func (r *reconciler) offerObservedAddr(p types.PeerID, observed []byte) {
	if len(observed) == 0 {
		return
	}

	ma, err := types.MultiaddrFromBytes(observed)
	if err != nil {
		logger.Debug("观测地址解析失败",
			"peer", p.ShortString(),
			"error", err)
		return
	}

	if len(r.addrs.ObservedAddrs()) >= r.maxObserved {
		logger.Debug("观测地址已达上限，丢弃",
			"peer", p.ShortString(),
			"addr", ma.String(),
			"max", r.maxObserved)
		return
	}

	if err := r.addrs.AddObservedAddr(ma); err != nil {
		logger.Debug("添加观测地址失败",
			"peer", p.ShortString(),
			"addr", ma.String(),
			"error", err)
		return
	}

	logger.Debug("已添加观测地址",
		"peer", p.ShortString(),
		"addr", ma.String())
}

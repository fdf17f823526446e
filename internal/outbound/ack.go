package outbound

import (
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubxmsg"
)

// ackKind 下行帧期望的应答
type ackKind uint8

const (
	ackNone ackKind = iota
	ackCFG          // ACK-ACK / ACK-NAK
	ackMGA          // MGA-ACKDATA0，需接收机开启 navBbrMask 应答
)

func expectedAck(f *ubx.Frame, awaitMga bool) ackKind {
	switch f.ClassTag() {
	case ubx.ClassCFG:
		return ackCFG
	case ubx.ClassMGA:
		if awaitMga {
			return ackMGA
		}
	}
	return ackNone
}

// matchAck 判断上行帧是否是对 sent 的应答；matched 为 false 时 acked 无意义
func matchAck(kind ackKind, sent, f *ubx.Frame) (matched, acked bool) {
	switch kind {
	case ackCFG:
		a, err := ubxmsg.ParseAck(f)
		if err != nil || a.ClassID != sent.Class || a.MsgID != sent.SubID {
			return false, false
		}
		return true, a.Acked
	case ackMGA:
		m, err := ubxmsg.ParseMgaAck(f)
		if err != nil || m.MsgID != sent.SubID {
			return false, false
		}
		return true, m.Used
	}
	return false, false
}

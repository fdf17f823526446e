package outbound

import "github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"

// 下行指令优先级，数值越小越先发送
const (
	// PriorityEmergency 复位类指令
	PriorityEmergency = 1
	// PriorityHigh 轮询与配置存取
	PriorityHigh = 2
	// PriorityNormal 普通配置
	PriorityNormal = 3
	// PriorityLow 辅助数据（MGA/AID），通常成批下发
	PriorityLow = 4
	// PriorityBackground 固件与日志
	PriorityBackground = 5
)

// PriorityOf 按消息身份与载荷长度给出默认优先级
func PriorityOf(id ubx.ID, payloadLen int) int {
	switch id {
	case ubx.CfgRST:
		return PriorityEmergency
	case ubx.CfgCFG:
		return PriorityHigh
	}
	if payloadLen == 0 {
		return PriorityHigh
	}
	switch id.Class() {
	case ubx.ClassCFG:
		return PriorityNormal
	case ubx.ClassMGA, ubx.ClassAID:
		return PriorityLow
	case ubx.ClassUPD, ubx.ClassLOG:
		return PriorityBackground
	}
	return PriorityNormal
}

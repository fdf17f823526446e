package ubx

import "strings"

// Class UBX 消息类别（帧中 class 字节）
type Class uint8

// 已知类别，其余字节值（含 0）均归入 ClassUnknown
const (
	ClassUnknown Class = 0x00
	ClassNAV     Class = 0x01
	ClassRXM     Class = 0x02
	ClassINF     Class = 0x04
	ClassACK     Class = 0x05
	ClassCFG     Class = 0x06
	ClassUPD     Class = 0x09
	ClassMON     Class = 0x0a
	ClassAID     Class = 0x0b
	ClassTIM     Class = 0x0d
	ClassESF     Class = 0x10
	ClassMGA     Class = 0x13
	ClassLOG     Class = 0x21
	ClassSEC     Class = 0x27
	ClassHNR     Class = 0x28
)

var knownClasses = [...]Class{
	ClassNAV, ClassRXM, ClassINF, ClassACK, ClassCFG, ClassUPD, ClassMON,
	ClassAID, ClassTIM, ClassESF, ClassMGA, ClassLOG, ClassSEC, ClassHNR,
}

// ClassOf 原始 class 字节 -> Class，未识别返回 ClassUnknown
func ClassOf(b uint8) Class {
	switch c := Class(b); c {
	case ClassNAV, ClassRXM, ClassINF, ClassACK, ClassCFG, ClassUPD, ClassMON,
		ClassAID, ClassTIM, ClassESF, ClassMGA, ClassLOG, ClassSEC, ClassHNR:
		return c
	}
	return ClassUnknown
}

// Byte 返回线上字节值
func (c Class) Byte() uint8 { return uint8(c) }

func (c Class) String() string {
	switch c {
	case ClassNAV:
		return "NAV"
	case ClassRXM:
		return "RXM"
	case ClassINF:
		return "INF"
	case ClassACK:
		return "ACK"
	case ClassCFG:
		return "CFG"
	case ClassUPD:
		return "UPD"
	case ClassMON:
		return "MON"
	case ClassAID:
		return "AID"
	case ClassTIM:
		return "TIM"
	case ClassESF:
		return "ESF"
	case ClassMGA:
		return "MGA"
	case ClassLOG:
		return "LOG"
	case ClassSEC:
		return "SEC"
	case ClassHNR:
		return "HNR"
	}
	return "Unknown"
}

// ParseClass 按名称查找类别（忽略大小写）
func ParseClass(name string) (Class, bool) {
	for _, c := range knownClasses {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	if strings.EqualFold(name, ClassUnknown.String()) {
		return ClassUnknown, true
	}
	return ClassUnknown, false
}

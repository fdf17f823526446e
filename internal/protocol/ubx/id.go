package ubx

import "strings"

// ID 帧的完整身份（类别 + 类内子 ID）。
//
// 取值只能是各类别的子 ID 类型（NavID、MonID ...）或 UnknownID，
// 可直接用类型开关分派：
//
//	switch id := f.ID().(type) {
//	case ubx.MonID:
//		if id == ubx.MonVER { ... }
//	case ubx.UnknownID:
//	}
type ID interface {
	// Class 身份所属类别
	Class() Class
	// Byte 线上子 ID 字节
	Byte() uint8
	// String 形如 "MON-VER"，类别未知时为 "Unknown"
	String() string
	isID()
}

// UnknownID 类别本身未识别时的身份，不携带子 ID
type UnknownID struct{}

func (UnknownID) Class() Class   { return ClassUnknown }
func (UnknownID) Byte() uint8    { return 0 }
func (UnknownID) String() string { return ClassUnknown.String() }
func (UnknownID) isID()          {}

// IDOf (class, 子 ID 字节) -> ID；对任意输入都有结果
func IDOf(class Class, b uint8) ID {
	switch class {
	case ClassNAV:
		return parseNavID(b)
	case ClassRXM:
		return parseRxmID(b)
	case ClassINF:
		return parseInfID(b)
	case ClassACK:
		return parseAckID(b)
	case ClassCFG:
		return parseCfgID(b)
	case ClassUPD:
		return parseUpdID(b)
	case ClassMON:
		return parseMonID(b)
	case ClassAID:
		return parseAidID(b)
	case ClassTIM:
		return parseTimID(b)
	case ClassESF:
		return parseEsfID(b)
	case ClassMGA:
		return parseMgaID(b)
	case ClassLOG:
		return parseLogID(b)
	case ClassSEC:
		return parseSecID(b)
	case ClassHNR:
		return parseHnrID(b)
	}
	return UnknownID{}
}

// IDOfBytes 直接由原始 (class, id) 字节对求身份
func IDOfBytes(class, id uint8) ID { return IDOf(ClassOf(class), id) }

// KnownIDs 返回全部具名身份（副本）
func KnownIDs() []ID {
	out := make([]ID, len(knownIDs))
	copy(out, knownIDs[:])
	return out
}

// ParseID 解析 "MON-VER" 形式的名称（忽略大小写）。
// "MON-Unknown" 解析为该类的未知子 ID，"Unknown" 解析为 UnknownID。
func ParseID(name string) (ID, bool) {
	if strings.EqualFold(name, ClassUnknown.String()) {
		return UnknownID{}, true
	}
	className, sub, ok := strings.Cut(name, "-")
	if !ok {
		return nil, false
	}
	class, ok := ParseClass(className)
	if !ok || class == ClassUnknown {
		return nil, false
	}
	for _, id := range knownIDs {
		if id.Class() == class && strings.EqualFold(id.String(), name) {
			return id, true
		}
	}
	if strings.EqualFold(sub, "Unknown") {
		id, ok := unknownIDs[class]
		return id, ok
	}
	return nil, false
}

// unknownIDs 各类的未知子 ID
var unknownIDs = map[Class]ID{
	ClassNAV: NavUnknown,
	ClassRXM: RxmUnknown,
	ClassINF: InfUnknown,
	ClassACK: AckUnknown,
	ClassCFG: CfgUnknown,
	ClassUPD: UpdUnknown,
	ClassMON: MonUnknown,
	ClassAID: AidUnknown,
	ClassTIM: TimUnknown,
	ClassESF: EsfUnknown,
	ClassMGA: MgaUnknown,
	ClassLOG: LogUnknown,
	ClassSEC: SecUnknown,
	ClassHNR: HnrUnknown,
}

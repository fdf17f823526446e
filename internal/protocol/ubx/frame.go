package ubx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	Sync1 uint8 = 0xb5
	Sync2 uint8 = 0x62

	// HeaderLen 同步头(2) + class(1) + id(1) + length(2)
	HeaderLen = 6
	// ChecksumLen CK_A + CK_B
	ChecksumLen = 2
	// MaxPayloadLen 16 位长度字段上限
	MaxPayloadLen = 0xffff
)

// Frame UBX 单帧
// 布局：sync1(0xB5) | sync2(0x62) | class | id | lenLE[2] | payload[len] | ckA | ckB
//
// 解码路径由 Decoder 逐状态填充，编码路径由 NewFrame 一次性构造并写入校验值；
// 构造完成后调用方不应再修改字段。
type Frame struct {
	Sync1   uint8
	Sync2   uint8
	Class   uint8 // 原始 class 字节
	SubID   uint8 // 原始 id 字节
	Length  uint16
	Payload []byte
	CheckA  uint8
	CheckB  uint8
}

// NewFrame 编码路径构造帧：填同步头、解析标签到原始字节、设置长度、复制载荷并写入校验值。
// class 与 id 分别决定 class 字节和 id 字节，调用方负责两者一致（参见 Build）。
func NewFrame(class Class, id ID, payload []byte) (*Frame, error) {
	if len(payload) > MaxPayloadLen {
		return nil, &SizeError{Size: len(payload), Limit: MaxPayloadLen}
	}
	var sub uint8
	if id != nil {
		sub = id.Byte()
	}
	f := &Frame{
		Sync1:   Sync1,
		Sync2:   Sync2,
		Class:   class.Byte(),
		SubID:   sub,
		Length:  uint16(len(payload)),
		Payload: make([]byte, len(payload)),
	}
	copy(f.Payload, payload)
	f.stampChecksum()
	return f, nil
}

// Build 以 ID 隐含的类别构造帧
func Build(id ID, payload []byte) (*Frame, error) {
	if id == nil {
		id = UnknownID{}
	}
	return NewFrame(id.Class(), id, payload)
}

// Encode 构造并直接序列化
func Encode(id ID, payload []byte) ([]byte, error) {
	f, err := Build(id, payload)
	if err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// ID 由原始 class/id 字节推导身份
func (f *Frame) ID() ID { return IDOfBytes(f.Class, f.SubID) }

// ClassTag 由原始 class 字节推导类别
func (f *Frame) ClassTag() Class { return ClassOf(f.Class) }

// Checksum 帧中携带的校验值
func (f *Frame) Checksum() Checksum { return Checksum{A: f.CheckA, B: f.CheckB} }

// ComputeChecksum 按当前字段重新计算校验值
func (f *Frame) ComputeChecksum() Checksum {
	return ComputeChecksum(f.Class, f.SubID, f.Length, f.Payload)
}

// Verify 校验帧的一致性（长度与校验值）
func (f *Frame) Verify() error {
	if int(f.Length) != len(f.Payload) {
		return fmt.Errorf("ubx: length %d does not match payload size %d", f.Length, len(f.Payload))
	}
	if got, want := f.Checksum(), f.ComputeChecksum(); got != want {
		return &ChecksumError{Received: got, Computed: want}
	}
	return nil
}

func (f *Frame) stampChecksum() {
	sum := f.ComputeChecksum()
	f.CheckA, f.CheckB = sum.A, sum.B
}

// Size 线上总字节数
func (f *Frame) Size() int { return HeaderLen + len(f.Payload) + ChecksumLen }

// AppendBytes 按线上顺序追加到 dst
func (f *Frame) AppendBytes(dst []byte) []byte {
	dst = append(dst, f.Sync1, f.Sync2, f.Class, f.SubID)
	dst = binary.LittleEndian.AppendUint16(dst, f.Length)
	dst = append(dst, f.Payload...)
	return append(dst, f.CheckA, f.CheckB)
}

// Bytes 序列化为线上字节
func (f *Frame) Bytes() []byte { return f.AppendBytes(make([]byte, 0, f.Size())) }

// MarshalBinary 实现 encoding.BinaryMarshaler
func (f *Frame) MarshalBinary() ([]byte, error) { return f.Bytes(), nil }

// UnmarshalBinary 从一段完整的线上字节解码，多余字节视为错误
func (f *Frame) UnmarshalBinary(b []byte) error {
	var d Decoder
	for i, c := range b {
		st, err := d.Step(c)
		if err != nil {
			return err
		}
		if st == StateDone {
			if i != len(b)-1 {
				return fmt.Errorf("ubx: %d trailing bytes after frame", len(b)-1-i)
			}
			*f = d.frame
			return nil
		}
	}
	return &ReadError{Err: io.ErrUnexpectedEOF}
}

// WriteTo 写出线上字节，实现 io.WriterTo
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// String 完整线上字节的小写十六进制
func (f *Frame) String() string { return hex.EncodeToString(f.Bytes()) }

// GoString 调试形式 "MON-VER: 4: 01020304"
func (f *Frame) GoString() string {
	return fmt.Sprintf("%s: %d: %s", f.ID(), f.Length, hex.EncodeToString(f.Payload))
}

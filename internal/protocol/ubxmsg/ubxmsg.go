// Package ubxmsg 解析少量常用 UBX 消息的载荷（应答、版本、MGA 应答）。
// 编解码层只把载荷当作字节串，这里按各消息的字段布局做最小解读。
package ubxmsg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

var (
	// ErrWrongMessage 帧身份与期望的消息不符
	ErrWrongMessage = errors.New("ubxmsg: unexpected message")
	// ErrShortPayload 载荷短于消息最小长度
	ErrShortPayload = errors.New("ubxmsg: payload too short")
)

const (
	monVerSWLen  = 30
	monVerHWLen  = 10
	monVerExtLen = 30
)

// Ack ACK-ACK / ACK-NAK
type Ack struct {
	Acked   bool   `json:"acked" yaml:"acked"`
	ClassID uint8  `json:"class_id" yaml:"class_id"`
	MsgID   uint8  `json:"msg_id" yaml:"msg_id"`
	Target  string `json:"target" yaml:"target"`
}

// ParseAck 解析应答帧
func ParseAck(f *ubx.Frame) (Ack, error) {
	id := f.ID()
	if id != ubx.AckACK && id != ubx.AckNAK {
		return Ack{}, fmt.Errorf("%w: %s", ErrWrongMessage, id)
	}
	if len(f.Payload) < 2 {
		return Ack{}, fmt.Errorf("%w: %s needs 2 bytes, got %d", ErrShortPayload, id, len(f.Payload))
	}
	return Ack{
		Acked:   id == ubx.AckACK,
		ClassID: f.Payload[0],
		MsgID:   f.Payload[1],
		Target:  ubx.IDOfBytes(f.Payload[0], f.Payload[1]).String(),
	}, nil
}

// MonVer MON-VER 版本信息
type MonVer struct {
	Software   string   `json:"software" yaml:"software"`
	Hardware   string   `json:"hardware" yaml:"hardware"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// ParseMonVer 解析 MON-VER：30 字节软件版本 + 10 字节硬件版本 + N×30 字节扩展串
func ParseMonVer(f *ubx.Frame) (MonVer, error) {
	if id := f.ID(); id != ubx.MonVER {
		return MonVer{}, fmt.Errorf("%w: %s", ErrWrongMessage, id)
	}
	p := f.Payload
	if len(p) < monVerSWLen+monVerHWLen {
		return MonVer{}, fmt.Errorf("%w: MON-VER needs %d bytes, got %d", ErrShortPayload, monVerSWLen+monVerHWLen, len(p))
	}
	v := MonVer{
		Software: cString(p[:monVerSWLen]),
		Hardware: cString(p[monVerSWLen : monVerSWLen+monVerHWLen]),
	}
	for ext := p[monVerSWLen+monVerHWLen:]; len(ext) > 0; {
		n := min(monVerExtLen, len(ext))
		if s := cString(ext[:n]); s != "" {
			v.Extensions = append(v.Extensions, s)
		}
		ext = ext[n:]
	}
	return v, nil
}

// MgaAck MGA-ACK-DATA0 辅助数据应答
type MgaAck struct {
	Used     bool   `json:"used" yaml:"used"`
	InfoCode uint8  `json:"info_code" yaml:"info_code"`
	MsgID    uint8  `json:"msg_id" yaml:"msg_id"`
	Count    uint32 `json:"count" yaml:"count"` // 被应答消息载荷的前 4 字节
}

// ParseMgaAck 解析 MGA-ACK-DATA0
func ParseMgaAck(f *ubx.Frame) (MgaAck, error) {
	if id := f.ID(); id != ubx.MgaACKDATA0 {
		return MgaAck{}, fmt.Errorf("%w: %s", ErrWrongMessage, id)
	}
	if len(f.Payload) < 8 {
		return MgaAck{}, fmt.Errorf("%w: MGA-ACK needs 8 bytes, got %d", ErrShortPayload, len(f.Payload))
	}
	p := f.Payload
	return MgaAck{
		Used:     p[0] != 0,
		InfoCode: p[2],
		MsgID:    p[3],
		Count:    binary.LittleEndian.Uint32(p[4:8]),
	}, nil
}

// Decoded 可解读消息的结构化结果，未识别时为 nil
func Decoded(f *ubx.Frame) any {
	switch f.ID() {
	case ubx.AckACK, ubx.AckNAK:
		if a, err := ParseAck(f); err == nil {
			return a
		}
	case ubx.MonVER:
		if v, err := ParseMonVer(f); err == nil {
			return v
		}
	case ubx.MgaACKDATA0:
		if m, err := ParseMgaAck(f); err == nil {
			return m
		}
	}
	return nil
}

// Summary 单帧的可读摘要（每行一条）。NAV 类不输出；无法解读的帧退回调试形式
func Summary(f *ubx.Frame) []string {
	if f.ClassTag() == ubx.ClassNAV {
		return nil
	}
	switch v := Decoded(f).(type) {
	case Ack:
		name := "ACK-NAK"
		if v.Acked {
			name = "ACK-ACK"
		}
		return []string{fmt.Sprintf("%s: class: %x, id: %x", name, v.ClassID, v.MsgID)}
	case MonVer:
		lines := []string{fmt.Sprintf("mon-ver: sw: %s, hw: %s", v.Software, v.Hardware)}
		for _, e := range v.Extensions {
			lines = append(lines, "mon-ver: "+e)
		}
		return lines
	case MgaAck:
		if !v.Used {
			return []string{fmt.Sprintf("MGA-ACK: not used: %x: %x", v.MsgID, v.InfoCode)}
		}
		return []string{fmt.Sprintf("MGA-ACK: used: %d: %d", v.MsgID, v.Count)}
	}
	return []string{f.GoString()}
}

// Poll 构造轮询帧（空载荷），接收机收到后回送对应消息
func Poll(id ubx.ID) ([]byte, error) { return ubx.Encode(id, nil) }

// PollAll 按名称批量构造轮询帧
func PollAll(names []string) ([][]byte, error) {
	out := make([][]byte, 0, len(names))
	for _, n := range names {
		id, ok := ubx.ParseID(n)
		if !ok {
			return nil, fmt.Errorf("ubxmsg: unknown poll message %q", n)
		}
		b, err := Poll(id)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}

package ubx

import (
	"errors"
	"io"
)

// State 解码状态机状态
type State uint8

const (
	StateSync1 State = iota
	StateSync2
	StateClass
	StateID
	StateLengthLow
	StateLengthHigh
	StatePayload
	StateCheckA
	StateCheckB
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSync1:
		return "Sync1"
	case StateSync2:
		return "Sync2"
	case StateClass:
		return "Class"
	case StateID:
		return "Id"
	case StateLengthLow:
		return "LengthLow"
	case StateLengthHigh:
		return "LengthHigh"
	case StatePayload:
		return "Payload"
	case StateCheckA:
		return "CheckA"
	case StateCheckB:
		return "CheckB"
	case StateDone:
		return "Done"
	}
	return "Invalid"
}

// Decoder 逐字节驱动的 UBX 解码状态机。
// 零值即可使用（初始状态 Sync1）。实例不可并发使用；每路字节流各自持有一个。
type Decoder struct {
	state State
	frame Frame
	err   error
}

// State 当前状态
func (d *Decoder) State() State { return d.state }

// Err 最近一次失败；非 nil 时需 Reset 后才能继续
func (d *Decoder) Err() error { return d.err }

// Reset 丢弃进行中的帧，回到 Sync1
func (d *Decoder) Reset() {
	d.state = StateSync1
	d.frame = Frame{}
	d.err = nil
}

// Frame 状态为 Done 时返回完整帧
func (d *Decoder) Frame() (*Frame, bool) {
	if d.state != StateDone {
		return nil, false
	}
	f := d.frame
	return &f, true
}

// Step 消费一个字节并推进一次状态。
// 失败后解码器保持在出错状态，后续调用直接返回同一错误。
// Done 为吸收态，继续喂入的字节被忽略。
func (d *Decoder) Step(c byte) (State, error) {
	if d.err != nil {
		return d.state, d.err
	}
	next, err := d.transition(c)
	if err != nil {
		d.err = err
		return d.state, err
	}
	d.state = next
	return next, nil
}

func (d *Decoder) transition(c byte) (State, error) {
	f := &d.frame
	switch d.state {
	case StateSync1:
		if c != Sync1 {
			return d.state, &SyncError{State: d.state, Expected: Sync1, Received: c}
		}
		f.Sync1 = c
		return StateSync2, nil

	case StateSync2:
		if c != Sync2 {
			return d.state, &SyncError{State: d.state, Expected: Sync2, Received: c}
		}
		f.Sync2 = c
		return StateClass, nil

	case StateClass:
		f.Class = c
		return StateID, nil

	case StateID:
		f.SubID = c
		return StateLengthLow, nil

	case StateLengthLow:
		f.Length = uint16(c)
		return StateLengthHigh, nil

	case StateLengthHigh:
		f.Length |= uint16(c) << 8
		f.Payload = make([]byte, 0, f.Length)
		// 零长度帧没有载荷，直接进入校验字节
		if f.Length == 0 {
			return StateCheckA, nil
		}
		return StatePayload, nil

	case StatePayload:
		f.Payload = append(f.Payload, c)
		if len(f.Payload) == int(f.Length) {
			return StateCheckA, nil
		}
		return StatePayload, nil

	case StateCheckA:
		f.CheckA = c
		return StateCheckB, nil

	case StateCheckB:
		f.CheckB = c
		if got, want := f.Checksum(), f.ComputeChecksum(); got != want {
			return d.state, &ChecksumError{Received: got, Computed: want}
		}
		return StateDone, nil

	case StateDone:
		return StateDone, nil
	}
	return d.state, errors.New("ubx: invalid decoder state")
}

// Decode 从字节源逐字节读取，直到得到一帧或失败。
// 读取失败以 *ReadError 返回（含 io.EOF），不返回部分结果。
func Decode(src io.ByteReader) (*Frame, error) {
	var d Decoder
	for {
		c, err := src.ReadByte()
		if err != nil {
			return nil, &ReadError{Err: err}
		}
		st, err := d.Step(c)
		if err != nil {
			return nil, err
		}
		if st == StateDone {
			f, _ := d.Frame()
			return f, nil
		}
	}
}

// ReadFrame 适配任意 io.Reader。
// 若 r 未实现 io.ByteReader，则按单字节读取，保证不会越过帧尾多读。
func ReadFrame(r io.Reader) (*Frame, error) {
	if br, ok := r.(io.ByteReader); ok {
		return Decode(br)
	}
	return Decode(&byteReader{r: r})
}

// byteReader 单字节读取适配器
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	for {
		n, err := b.r.Read(b.buf[:])
		if n == 1 {
			return b.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

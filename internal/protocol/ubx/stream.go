package ubx

import (
	"errors"

	"go.uber.org/zap"
)

// DefaultMaxPayload 流式解码默认载荷上限，实际接收机消息远小于 16 位上限
const DefaultMaxPayload = 8 * 1024

// StreamDecoder 处理半包/粘包的流式解码器。
// 内部复用同一个 Decoder 状态机；遇到校验失败或长度超限时丢弃候选帧首字节，
// 从下一个同步头重新扫描。
type StreamDecoder struct {
	buf        []byte
	pos        int // buf[:pos] 已喂入 dec
	dec        Decoder
	maxPayload int
	logger     *zap.Logger
	stats      StreamStats
}

// StreamStats 流式解码统计
type StreamStats struct {
	Frames         uint64 `json:"frames"`
	DiscardedBytes uint64 `json:"discarded_bytes"`
	ChecksumErrors uint64 `json:"checksum_errors"`
	OversizeFrames uint64 `json:"oversize_frames"`
}

// NewStreamDecoder 创建流式解码器，maxPayload<=0 时使用默认上限
func NewStreamDecoder(maxPayload int) *StreamDecoder {
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayload
	}
	if maxPayload > MaxPayloadLen {
		maxPayload = MaxPayloadLen
	}
	return &StreamDecoder{maxPayload: maxPayload, logger: zap.NewNop()}
}

// SetLogger 设置日志器
func (s *StreamDecoder) SetLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Stats 返回统计快照
func (s *StreamDecoder) Stats() StreamStats { return s.stats }

// Buffered 尚未组成完整帧的字节数
func (s *StreamDecoder) Buffered() int { return len(s.buf) }

// Feed 追加数据并尽可能解出多帧。
// 返回的 error 汇总了本次遇到的校验失败与超长帧，已解出的帧不受影响。
func (s *StreamDecoder) Feed(p []byte) ([]*Frame, error) {
	s.buf = append(s.buf, p...)
	var frames []*Frame
	var errs []error

	for {
		if s.pos == 0 {
			start := indexSync(s.buf)
			if start < 0 {
				s.discard(len(s.buf))
				break
			}
			s.discard(start)
		}
		if s.pos >= len(s.buf) {
			break
		}

		f, err := s.advance()
		if err != nil {
			var se *SyncError
			if errors.As(err, &se) {
				s.logger.Debug("ubx resync", zap.Error(err))
			} else {
				s.logger.Debug("ubx frame dropped", zap.Error(err))
				errs = append(errs, err)
			}
			s.dec.Reset()
			s.pos = 0
			s.discard(1)
			continue
		}
		if f == nil {
			// 半包，等待更多字节
			break
		}
		frames = append(frames, f)
		s.stats.Frames++
		s.buf = s.buf[s.pos:]
		s.pos = 0
		s.dec.Reset()
	}

	if len(s.buf) == 0 {
		s.buf = nil
	}
	return frames, errors.Join(errs...)
}

// advance 把 buf[pos:] 喂给状态机，直到出帧、出错或字节耗尽
func (s *StreamDecoder) advance() (*Frame, error) {
	for s.pos < len(s.buf) {
		st, err := s.dec.Step(s.buf[s.pos])
		s.pos++
		if err != nil {
			if errors.Is(err, ErrChecksumMismatch) {
				s.stats.ChecksumErrors++
			}
			return nil, err
		}
		// 候选帧总是从 buf[0] 开始，pos==HeaderLen 时长度字段刚好读完
		if s.pos == HeaderLen {
			if n := int(s.dec.frame.Length); n > s.maxPayload {
				s.stats.OversizeFrames++
				return nil, &SizeError{Size: n, Limit: s.maxPayload}
			}
		}
		if st == StateDone {
			f, _ := s.dec.Frame()
			return f, nil
		}
	}
	return nil, nil
}

func (s *StreamDecoder) discard(n int) {
	if n <= 0 {
		return
	}
	s.stats.DiscardedBytes += uint64(n)
	s.buf = s.buf[n:]
}

// indexSync 返回下一个同步头 (0xB5 0x62) 的位置；
// 末尾单独的 0xB5 也视为可能的同步头起点
func indexSync(b []byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] != Sync1 {
			continue
		}
		if i == len(b)-1 || b[i+1] == Sync2 {
			return i
		}
	}
	return -1
}

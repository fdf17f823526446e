package main

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

// dumper 把字节块送入流式解码器并输出解出的帧
type dumper struct {
	dec    *ubx.StreamDecoder
	out    *printer
	logger *zap.Logger
}

func newDumper(opts *options, out *printer) *dumper {
	dec := ubx.NewStreamDecoder(opts.maxPayload)
	dec.SetLogger(opts.logger)
	return &dumper{dec: dec, out: out, logger: opts.logger}
}

func (d *dumper) feed(p []byte) error {
	frames, err := d.dec.Feed(p)
	if err != nil {
		d.logger.Warn("frames dropped", zap.String("kind", ubx.ErrorKind(err)), zap.Error(err))
	}
	for _, f := range frames {
		if err := d.out.Print(f); err != nil {
			return err
		}
	}
	return nil
}

// copyFrom 读到 EOF
func (d *dumper) copyFrom(r io.Reader) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if perr := d.feed(buf[:n]); perr != nil {
				return perr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &ubx.ReadError{Err: err}
		}
	}
}

// finish 输出统计并提示末尾的残帧
func (d *dumper) finish() {
	st := d.dec.Stats()
	if n := d.dec.Buffered(); n > 0 {
		d.logger.Warn("trailing partial frame", zap.Int("bytes", n))
	}
	d.logger.Info("decode finished",
		zap.Uint64("frames", st.Frames),
		zap.Uint64("discarded_bytes", st.DiscardedBytes),
		zap.Uint64("checksum_errors", st.ChecksumErrors),
		zap.Uint64("oversize_frames", st.OversizeFrames),
	)
}

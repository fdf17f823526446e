package serialport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

// Port 串口抽象，便于测试替换
type Port interface {
	io.ReadWriteCloser
}

// Opener 打开串口
type Opener func(cfg cfgpkg.SerialConfig) (Port, error)

// Open 以 tarm/serial 打开本地串口
func Open(cfg cfgpkg.SerialConfig) (Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial device is empty")
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}
	return p, nil
}

// Reader 持续读取串口并把字节交给回调；串口断开后按退避重开
type Reader struct {
	cfg     cfgpkg.SerialConfig
	open    Opener
	logger  *zap.Logger
	backoff time.Duration

	onOpen  func(Port)
	onRead  func([]byte)
	onClose func()
}

// NewReader open 为 nil 时使用 Open
func NewReader(cfg cfgpkg.SerialConfig, open Opener, logger *zap.Logger) *Reader {
	if open == nil {
		open = Open
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{cfg: cfg, open: open, logger: logger, backoff: time.Second}
}

// Source 会话来源标识
func (r *Reader) Source() string { return "serial:" + r.cfg.Device }

// SetHandlers 安装回调；onOpen 每次(重新)打开串口后触发，可用于下发轮询帧
func (r *Reader) SetHandlers(onOpen func(Port), onRead func([]byte), onClose func()) {
	r.onOpen, r.onRead, r.onClose = onOpen, onRead, onClose
}

// Run 阻塞直至 ctx 结束
func (r *Reader) Run(ctx context.Context) error {
	for {
		err := r.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		r.logger.Warn("serial port closed, reopening",
			zap.String("device", r.cfg.Device),
			zap.Duration("backoff", r.backoff),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.backoff):
		}
	}
}

func (r *Reader) runOnce(ctx context.Context) error {
	port, err := r.open(r.cfg)
	if err != nil {
		return err
	}
	r.logger.Info("serial port opened", zap.String("device", r.cfg.Device), zap.Int("baud", r.cfg.Baud))
	if r.onOpen != nil {
		r.onOpen(port)
	}
	defer func() {
		_ = port.Close()
		if r.onClose != nil {
			r.onClose()
		}
	}()

	// ctx 取消时关闭串口以打断阻塞的 Read
	stop := context.AfterFunc(ctx, func() { _ = port.Close() })
	defer stop()

	buf := make([]byte, 4096)
	for {
		n, err := port.Read(buf)
		if n > 0 && r.onRead != nil {
			r.onRead(buf[:n])
		}
		if err != nil {
			// tarm/serial 读超时表现为 0 字节 + io.EOF
			if errors.Is(err, io.EOF) && n == 0 && ctx.Err() == nil && r.cfg.ReadTimeout > 0 {
				continue
			}
			return err
		}
	}
}

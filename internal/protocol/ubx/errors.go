package ubx

import (
	"errors"
	"fmt"
)

var (
	// ErrRead 字节源读取失败
	ErrRead = errors.New("ubx: source read failed")
	// ErrSyncMismatch 收到的字节不符合当前状态的语法（同步头错误）
	ErrSyncMismatch = errors.New("ubx: sync mismatch")
	// ErrChecksumMismatch 帧完整接收但校验失败
	ErrChecksumMismatch = errors.New("ubx: checksum mismatch")
	// ErrPayloadTooLarge 载荷超出 16 位长度字段可表示范围（或流式解码配置的上限）
	ErrPayloadTooLarge = errors.New("ubx: payload too large")
)

// ReadError 包装字节源返回的原始错误
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("ubx: read: %v", e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrRead }

// SyncError 同步字节不匹配
type SyncError struct {
	State    State
	Expected uint8
	Received uint8
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("ubx: sync mismatch in %s: expected 0x%02x, received 0x%02x", e.State, e.Expected, e.Received)
}

func (e *SyncError) Is(target error) bool { return target == ErrSyncMismatch }

// ChecksumError 校验不一致，同时给出收到的与重新计算的校验值
type ChecksumError struct {
	Received Checksum
	Computed Checksum
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("ubx: checksum mismatch: received %s, computed %s", e.Received, e.Computed)
}

func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }

// SizeError 载荷长度超限
type SizeError struct {
	Size  int
	Limit int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("ubx: payload too large: %d > %d", e.Size, e.Limit)
}

func (e *SizeError) Is(target error) bool { return target == ErrPayloadTooLarge }

// ErrorKind 错误分类标签，用于日志与指标
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRead):
		return "read"
	case errors.Is(err, ErrSyncMismatch):
		return "sync"
	case errors.Is(err, ErrChecksumMismatch):
		return "checksum"
	case errors.Is(err, ErrPayloadTooLarge):
		return "too_large"
	}
	return "other"
}

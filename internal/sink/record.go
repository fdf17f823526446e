package sink

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
)

// Record 一条已解码并附带来源信息的帧
type Record struct {
	SessionID  string
	Source     string // tcp:<remote> | serial:<device>
	ReceivedAt time.Time
	Frame      *ubx.Frame
}

// Store 帧存储后端
type Store interface {
	Name() string
	Save(ctx context.Context, rec Record) error
}

// View 帧的 JSON/YAML 展示形式，供缓存、实时推送、HTTP 与命令行共用
type View struct {
	ID         string     `json:"id" yaml:"id"`
	Class      string     `json:"class" yaml:"class"`
	ClassByte  uint8      `json:"class_byte" yaml:"class_byte"`
	IDByte     uint8      `json:"id_byte" yaml:"id_byte"`
	Length     uint16     `json:"length" yaml:"length"`
	Payload    string     `json:"payload" yaml:"payload"`
	Checksum   string     `json:"checksum" yaml:"checksum"`
	Wire       string     `json:"wire" yaml:"wire"`
	SessionID  string     `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
	ReceivedAt *time.Time `json:"received_at,omitempty" yaml:"received_at,omitempty"`
}

// ViewOf 仅由帧本身构造展示形式
func ViewOf(f *ubx.Frame) View {
	return View{
		ID:        f.ID().String(),
		Class:     f.ClassTag().String(),
		ClassByte: f.Class,
		IDByte:    f.SubID,
		Length:    f.Length,
		Payload:   hex.EncodeToString(f.Payload),
		Checksum:  f.Checksum().String(),
		Wire:      f.String(),
	}
}

// View 附带会话与接收时间的展示形式
func (r Record) View() View {
	v := ViewOf(r.Frame)
	v.SessionID = r.SessionID
	v.Source = r.Source
	if !r.ReceivedAt.IsZero() {
		at := r.ReceivedAt
		v.ReceivedAt = &at
	}
	return v
}

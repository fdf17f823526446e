package models

import (
	"time"
)

// 注意：
// - 与 db/migrations/0002_receivers_up.sql 保持一致
// - 不使用 gorm.Model，显式声明每个字段

// Receiver 映射 receivers 表：每个接入会话（TCP 连接或串口打开）一行
type Receiver struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// 会话 ID（uuid）
	SessionID string `gorm:"column:session_id;type:text;not null;uniqueIndex"`
	// tcp:<remote> | serial:<device>
	Source     string  `gorm:"column:source;type:text;not null"`
	RemoteAddr *string `gorm:"column:remote_addr;type:text"`
	// MON-VER 上报的版本串，可空
	Software *string `gorm:"column:software;type:text"`
	Hardware *string `gorm:"column:hardware;type:text"`
	// 累计帧数与帧级错误数
	FrameCount  int64      `gorm:"column:frame_count;not null;default:0"`
	ErrorCount  int64      `gorm:"column:error_count;not null;default:0"`
	FirstSeenAt time.Time  `gorm:"column:first_seen_at;not null"`
	LastSeenAt  time.Time  `gorm:"column:last_seen_at;not null"`
	ClosedAt    *time.Time `gorm:"column:closed_at"`
	// 审计字段
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Receiver) TableName() string { return "receivers" }

// Online 会话尚未关闭
func (r Receiver) Online() bool { return r.ClosedAt == nil }

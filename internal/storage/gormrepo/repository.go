package gormrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taoyao-code/ubx-gateway/internal/storage/models"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Open 复用 pgx 连接池打开 GORM
func Open(pool *pgxpool.Pool) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// ReceiverRepo receivers 表读写
type ReceiverRepo struct {
	db *gorm.DB
}

func NewReceiverRepo(db *gorm.DB) *ReceiverRepo { return &ReceiverRepo{db: db} }

// SessionStart 会话开始时登记，重复登记只刷新 last_seen_at
func (r *ReceiverRepo) SessionStart(ctx context.Context, sessionID, source, remote string, at time.Time) error {
	return sessionStartQuery(r.db.WithContext(ctx), sessionID, source, remote, at).Error
}

func sessionStartQuery(db *gorm.DB, sessionID, source, remote string, at time.Time) *gorm.DB {
	rec := &models.Receiver{
		SessionID:   sessionID,
		Source:      source,
		FirstSeenAt: at,
		LastSeenAt:  at,
	}
	if remote != "" {
		rec.RemoteAddr = &remote
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_seen_at": gorm.Expr("excluded.last_seen_at"),
			"updated_at":   gorm.Expr("NOW()"),
		}),
	}).Create(rec)
}

// Touch 累加帧/错误计数并刷新 last_seen_at
func (r *ReceiverRepo) Touch(ctx context.Context, sessionID string, frames, errs int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Receiver{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"frame_count":  gorm.Expr("frame_count + ?", frames),
			"error_count":  gorm.Expr("error_count + ?", errs),
			"last_seen_at": at,
		}).Error
}

// SetVersion 记录 MON-VER 版本串
func (r *ReceiverRepo) SetVersion(ctx context.Context, sessionID, software, hardware string) error {
	return r.db.WithContext(ctx).
		Model(&models.Receiver{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{"software": software, "hardware": hardware}).Error
}

// SessionEnd 标记会话关闭
func (r *ReceiverRepo) SessionEnd(ctx context.Context, sessionID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Receiver{}).
		Where("session_id = ? AND closed_at IS NULL", sessionID).
		Updates(map[string]any{"closed_at": at, "last_seen_at": at}).Error
}

// Get 按会话查询
func (r *ReceiverRepo) Get(ctx context.Context, sessionID string) (*models.Receiver, error) {
	var rec models.Receiver
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List 按最近活跃倒序；onlineOnly 只返回未关闭的会话
func (r *ReceiverRepo) List(ctx context.Context, onlineOnly bool, limit, offset int) ([]models.Receiver, error) {
	var out []models.Receiver
	if err := listQuery(r.db.WithContext(ctx), onlineOnly, limit, offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func listQuery(db *gorm.DB, onlineOnly bool, limit, offset int) *gorm.DB {
	q := db.Model(&models.Receiver{}).Order("last_seen_at DESC")
	if onlineOnly {
		q = q.Where("closed_at IS NULL")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

// FrameRepo ubx_frames 追加日志
type FrameRepo struct {
	Pool *pgxpool.Pool
}

// FrameRow ubx_frames 一行
type FrameRow struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Source     string    `json:"source"`
	Identity   string    `json:"identity"`
	ClassByte  uint8     `json:"class_byte"`
	IDByte     uint8     `json:"id_byte"`
	Length     uint16    `json:"length"`
	Payload    []byte    `json:"payload"`
	CheckA     uint8     `json:"check_a"`
	CheckB     uint8     `json:"check_b"`
	ReceivedAt time.Time `json:"received_at"`
}

// Frame 按入库时的原始字节还原为帧，未识别的 class/id 字节原样保留。
// 存储的长度或校验值与载荷不一致时返回错误。
func (r FrameRow) Frame() (*ubx.Frame, error) {
	f := &ubx.Frame{
		Sync1:   ubx.Sync1,
		Sync2:   ubx.Sync2,
		Class:   r.ClassByte,
		SubID:   r.IDByte,
		Length:  r.Length,
		Payload: r.Payload,
		CheckA:  r.CheckA,
		CheckB:  r.CheckB,
	}
	if err := f.Verify(); err != nil {
		return nil, fmt.Errorf("frame row %d: %w", r.ID, err)
	}
	return f, nil
}

// FrameQuery 查询条件，零值字段不参与过滤
type FrameQuery struct {
	Identity  string
	SessionID string
	Since     time.Time
	Limit     int
}

// Name 实现 sink.Store
func (r *FrameRepo) Name() string { return "postgres" }

// Save 插入一帧
func (r *FrameRepo) Save(ctx context.Context, rec sink.Record) error {
	const q = `INSERT INTO ubx_frames (session_id, source, identity, class_byte, id_byte, length, payload, check_a, check_b, received_at)
               VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	f := rec.Frame
	at := rec.ReceivedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.Pool.Exec(ctx, q,
		rec.SessionID, rec.Source, f.ID().String(),
		int16(f.Class), int16(f.SubID), int32(f.Length), f.Payload,
		int16(f.CheckA), int16(f.CheckB), at,
	)
	if err != nil {
		return fmt.Errorf("insert ubx frame: %w", err)
	}
	return nil
}

// List 按条件倒序查询
func (r *FrameRepo) List(ctx context.Context, fq FrameQuery) ([]FrameRow, error) {
	q, args := buildListQuery(fq)
	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (FrameRow, error) {
		var fr FrameRow
		var class, id, ckA, ckB int16
		var length int32
		err := row.Scan(&fr.ID, &fr.SessionID, &fr.Source, &fr.Identity, &class, &id, &length, &fr.Payload, &ckA, &ckB, &fr.ReceivedAt)
		fr.ClassByte, fr.IDByte, fr.Length = uint8(class), uint8(id), uint16(length)
		fr.CheckA, fr.CheckB = uint8(ckA), uint8(ckB)
		return fr, err
	})
}

func buildListQuery(fq FrameQuery) (string, []any) {
	q := `SELECT id, session_id, source, identity, class_byte, id_byte, length, payload, check_a, check_b, received_at FROM ubx_frames WHERE 1=1`
	var args []any
	if fq.Identity != "" {
		args = append(args, fq.Identity)
		q += fmt.Sprintf(" AND identity = $%d", len(args))
	}
	if fq.SessionID != "" {
		args = append(args, fq.SessionID)
		q += fmt.Sprintf(" AND session_id = $%d", len(args))
	}
	if !fq.Since.IsZero() {
		args = append(args, fq.Since)
		q += fmt.Sprintf(" AND received_at >= $%d", len(args))
	}
	limit := fq.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args))
	return q, args
}

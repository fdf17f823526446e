package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

// ErrNotFound 没有该身份的缓存帧
var ErrNotFound = errors.New("frame not found")

// FrameStore 最新帧缓存与发布：
//
//	<prefix>latest  Hash  身份 -> 帧 JSON
//	<prefix>count   Hash  身份 -> 累计帧数
//	<channel>       PubSub 每帧一条 JSON
type FrameStore struct {
	client  *Client
	prefix  string
	channel string
	ttl     time.Duration
}

func NewFrameStore(client *Client, prefix, channel string, ttl time.Duration) *FrameStore {
	if prefix == "" {
		prefix = "ubx:"
	}
	if channel == "" {
		channel = prefix + "frames"
	}
	return &FrameStore{client: client, prefix: prefix, channel: channel, ttl: ttl}
}

func (s *FrameStore) latestKey() string { return s.prefix + "latest" }
func (s *FrameStore) countKey() string  { return s.prefix + "count" }

// Channel 发布频道
func (s *FrameStore) Channel() string { return s.channel }

// Name 实现 sink.Store
func (s *FrameStore) Name() string { return "redis" }

// Save 写入最新帧、累加计数并发布
func (s *FrameStore) Save(ctx context.Context, rec sink.Record) error {
	v := rec.View()
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame view: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.latestKey(), v.ID, data)
	pipe.HIncrBy(ctx, s.countKey(), v.ID, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.latestKey(), s.ttl)
	}
	pipe.Publish(ctx, s.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save frame: %w", err)
	}
	return nil
}

// Latest 某身份的最新帧
func (s *FrameStore) Latest(ctx context.Context, id string) (*sink.View, error) {
	data, err := s.client.HGet(ctx, s.latestKey(), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var v sink.View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal frame view: %w", err)
	}
	return &v, nil
}

// Counts 各身份累计帧数
func (s *FrameStore) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, s.countKey()).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}

// Subscribe 订阅帧发布，ctx 结束时关闭返回的通道
func (s *FrameStore) Subscribe(ctx context.Context) <-chan sink.View {
	out := make(chan sink.View, 64)
	sub := s.client.Subscribe(ctx, s.channel)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var v sink.View
				if err := json.Unmarshal([]byte(msg.Payload), &v); err != nil {
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

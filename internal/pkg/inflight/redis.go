package inflight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	lockKeyPrefix  = "adslot:inflight:"
	stateKeyPrefix = "adslot:state:"
	failedStateTTL = 10 * time.Minute
)

// RedisTracker 多实例共享的操作锁。锁带 TTL，进程崩溃后自动释放
type RedisTracker struct {
	rdb     *redis.Client
	lockTTL time.Duration
}

func NewRedisTracker(rdb *redis.Client, lockTTL time.Duration) *RedisTracker {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &RedisTracker{rdb: rdb, lockTTL: lockTTL}
}

func lockKey(id int64) string {
	return fmt.Sprintf("%s%d", lockKeyPrefix, id)
}

func stateKey(id int64) string {
	return fmt.Sprintf("%s%d", stateKeyPrefix, id)
}

func (t *RedisTracker) Begin(ctx context.Context, id int64, action string) error {
	data, err := json.Marshal(Pending(action))
	if err != nil {
		return err
	}

	ok, err := t.rdb.SetNX(ctx, lockKey(id), data, t.lockTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire action lock: %w", err)
	}
	if !ok {
		return ErrInFlight
	}

	// 新操作开始后清掉上一次的失败状态
	t.rdb.Del(ctx, stateKey(id))
	return nil
}

func (t *RedisTracker) Succeed(ctx context.Context, id int64) error {
	return t.rdb.Del(ctx, lockKey(id), stateKey(id)).Err()
}

func (t *RedisTracker) Fail(ctx context.Context, id int64, action string, cause error) error {
	data, err := json.Marshal(Failed(action, cause))
	if err != nil {
		return err
	}

	pipe := t.rdb.TxPipeline()
	pipe.Set(ctx, stateKey(id), data, failedStateTTL)
	pipe.Del(ctx, lockKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (t *RedisTracker) Get(ctx context.Context, id int64) (State, error) {
	if s, ok, err := t.read(ctx, lockKey(id)); err != nil || ok {
		return s, err
	}
	if s, ok, err := t.read(ctx, stateKey(id)); err != nil || ok {
		return s, err
	}
	return Idle(), nil
}

func (t *RedisTracker) read(ctx context.Context, key string) (State, bool, error) {
	raw, err := t.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return State{}, false, nil
		}
		return State{}, false, err
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, false, fmt.Errorf("failed to decode action state: %w", err)
	}
	return s, true, nil
}

package contracts

import (
	"context"
	"time"
)

// RedisRepository holds the primitives the distributed lock is built on.
type RedisRepository interface {
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// CompareAndDelete removes key only while it still holds value.
	CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error)
	// CompareAndExpire extends key only while it still holds value.
	CompareAndExpire(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}

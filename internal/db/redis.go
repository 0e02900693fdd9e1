package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func (s Storage) SetCache(key string, value interface{}, exp time.Duration) {
	if s.rds == nil {
		return
	}
	s.rds.Set(context.Background(), key, value, exp)
}

func (s Storage) GetCache(key string) *redis.StringCmd {
	if s.rds == nil {
		return redis.NewStringResult("", redis.Nil)
	}
	return s.rds.Get(context.Background(), key)
}

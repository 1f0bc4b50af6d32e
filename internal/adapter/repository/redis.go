package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/internal/model"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "resume:document:"

// RedisRepo stores document blobs in Redis without expiry; documents live
// until the user deletes them.
type RedisRepo struct {
	client *redis.Client
}

func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}
	return rdb, nil
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

func (r *RedisRepo) Load(ctx context.Context, id string) (*model.Document, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

func (r *RedisRepo) Save(ctx context.Context, id string, doc *model.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+id, raw, 0).Err()
}

func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}

package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/jtejido/sourceafis"
	"github.com/jtejido/sourceafis/config"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"
)

// RedisStore keeps serialized templates in one Redis hash, field per ID.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// OpenRedis connects to the server named by c and checks it is reachable.
func OpenRedis(ctx context.Context, c config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", c.Addr, err)
	}
	return NewRedisStore(client, c.Key), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Put(ctx context.Context, id string, template *sourceafis.Template) error {
	if err := checkPut(id, template); err != nil {
		return err
	}
	data, err := template.Serialize()
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key, id, data).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*sourceafis.Template, error) {
	data, err := s.client.HGet(ctx, s.key, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sourceafis.DeserializeTemplate(data)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.HDel(ctx, s.key, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]sourceafis.Candidate, error) {
	entries, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	candidates := make([]sourceafis.Candidate, 0, len(entries))
	for id, data := range entries {
		template, err := sourceafis.DeserializeTemplate([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("gallery entry %s: %w", id, err)
		}
		candidates = append(candidates, sourceafis.Candidate{ID: id, Template: template})
	}
	slices.SortFunc(candidates, func(a, b sourceafis.Candidate) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return candidates, nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, s.key).Result()
	return int(n), err
}

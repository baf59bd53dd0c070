package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"studyquiz/internal/logger"
	"studyquiz/internal/store"
)

// Config contains connection details for the redis session store.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// Storage keeps sessions as JSON values under KeyPrefix+ID with an optional TTL.
type Storage struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewStorage connects and pings redis before returning.
func NewStorage(cfg Config, log *logger.Logger) (*Storage, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "studyquiz:session:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Storage{
		log:    log.With("service", "RedisQuizStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (s *Storage) key(id string) string { return s.prefix + id }

func (s *Storage) Save(ctx context.Context, sess store.Session) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis quiz store not initialized")
	}
	if sess.ID == "" {
		return errors.New("session id required")
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.rdb.Set(ctx, s.key(sess.ID), raw, s.ttl).Err()
}

func (s *Storage) Get(ctx context.Context, id string) (store.Session, error) {
	if s == nil || s.rdb == nil {
		return store.Session{}, fmt.Errorf("redis quiz store not initialized")
	}
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return store.Session{}, store.ErrNotFound
	}
	if err != nil {
		return store.Session{}, err
	}
	var sess store.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn("bad redis session payload", "id", id, "error", err)
		return store.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sess, nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis quiz store not initialized")
	}
	n, err := s.rdb.Del(ctx, s.key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Storage) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

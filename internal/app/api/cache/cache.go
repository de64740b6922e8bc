// Package cache memoises transcripts in Redis so repeated runs over the same
// recording do not pay for a second upload.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"audio2text/internal/app/api"
	"audio2text/internal/app/util/files"
)

const keyPrefix = "a2t:transcript"

// Scope is every request setting that changes what the backend returns for
// the same audio. Two scopes never share cache entries.
type Scope struct {
	Provider string
	Model    string
	Language string
	Prompt   string
}

func (s Scope) key() string {
	lang := s.Language
	if lang == "" {
		lang = "auto"
	}
	prompt := "-"
	if s.Prompt != "" {
		sum := sha256.Sum256([]byte(s.Prompt))
		prompt = hex.EncodeToString(sum[:6])
	}
	return fmt.Sprintf("%s:%s:%s:%s", s.Provider, s.Model, lang, prompt)
}

// Transcriber wraps another Transcriber with a Redis lookup keyed by the
// audio content hash and the request scope. Redis failures are logged and the
// call falls through to the wrapped transcriber.
type Transcriber struct {
	next   api.Transcriber
	rdb    redis.Cmdable
	scope  Scope
	ttl    time.Duration
	logger *zap.Logger
}

func New(next api.Transcriber, rdb redis.Cmdable, scope Scope, ttl time.Duration, logger *zap.Logger) *Transcriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scope.Model == "" {
		scope.Model = "default"
	}
	return &Transcriber{
		next:   next,
		rdb:    rdb,
		scope:  scope,
		ttl:    ttl,
		logger: logger,
	}
}

// NewClient parses a redis:// URL.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Key returns the cache key for a file hash.
func (t *Transcriber) Key(hash string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, t.scope.key(), hash)
}

func (t *Transcriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	hash, err := files.CalculateFileHash(inputFilePath)
	if err != nil {
		t.logger.Warn("cache bypassed, could not hash audio", zap.String("file", inputFilePath), zap.Error(err))
		return t.next.Transcript(ctx, inputFilePath)
	}
	key := t.Key(hash)

	cached, err := t.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		t.logger.Debug("transcript cache hit", zap.String("file", inputFilePath))
		return cached, nil
	case errors.Is(err, redis.Nil):
	default:
		t.logger.Warn("transcript cache lookup failed", zap.Error(err))
	}

	text, err := t.next.Transcript(ctx, inputFilePath)
	if err != nil {
		return "", err
	}
	if err := t.rdb.Set(ctx, key, text, t.ttl).Err(); err != nil {
		t.logger.Warn("transcript cache store failed", zap.Error(err))
	}
	return text, nil
}

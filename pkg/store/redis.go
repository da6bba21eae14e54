package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "docforge:documents"

// RedisStore persists documents in Redis: one JSON value per document plus a
// set indexing the known ids.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ DocumentStore = (*RedisStore)(nil)

// NewRedisStore wraps an existing client. Prefix defaults when empty.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":index"
}

// Save implements DocumentStore.
func (s *RedisStore) Save(ctx context.Context, doc Document) (string, error) {
	now := s.now().UTC()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
		doc.CreatedAt = now
	} else if existing, err := s.Get(ctx, doc.ID); err == nil {
		doc.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrDocumentNotFound) {
		return "", err
	} else {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("store: marshal document: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(doc.ID), payload, 0)
	pipe.SAdd(ctx, s.indexKey(), doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store: save document %s: %w", doc.ID, err)
	}
	return doc.ID, nil
}

// Get implements DocumentStore.
func (s *RedisStore) Get(ctx context.Context, id string) (Document, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("store: get document %s: %w", id, err)
	}
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Document{}, fmt.Errorf("store: decode document %s: %w", id, err)
	}
	return doc, nil
}

// List implements DocumentStore.
func (s *RedisStore) List(ctx context.Context) ([]Document, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}

	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.Get(ctx, id)
		if errors.Is(err, ErrDocumentNotFound) {
			// Index entry without a value: expired or deleted out-of-band.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Delete implements DocumentStore.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("store: delete document %s: %w", id, err)
	}
	if err := s.client.SRem(ctx, s.indexKey(), id).Err(); err != nil {
		return fmt.Errorf("store: unindex document %s: %w", id, err)
	}
	if removed == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

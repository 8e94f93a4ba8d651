// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/learnpath/internal/platform/constants"
)

// CachedRepository decorates a [Repository] with a Redis read-through cache of whole aggregates.
//
// Only FindByID is cached. Each entry is a hash holding the revision next to the
// encoded aggregate. Writes delete the entry and raise a per-path revision floor,
// and a fill below the floor or below the cached revision is dropped, so a reader
// that loaded before a commit cannot put the older copy back. Writes that fail
// still delete the entry. Cache failures are logged and the store is used directly.
type CachedRepository struct {
	Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a cache whose entries expire after ttl.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		Repository: next,
		client:     client,
		ttl:        ttl,
		logger:     logger,
	}
}

// The hash tag keeps an entry and its floor in one cluster slot.
func cacheKey(id int64) string {
	return fmt.Sprintf("%s{%d}", constants.RedisPrefixLearningPath, id)
}

func floorKey(id int64) string {
	return cacheKey(id) + ":floor"
}

// KEYS: entry, floor. ARGV: revision, encoded aggregate, ttl in ms.
var fillScript = redis.NewScript(`
local floor = tonumber(redis.call('GET', KEYS[2]) or '0')
local revision = tonumber(ARGV[1])
if revision < floor then
	return 0
end
local cached = tonumber(redis.call('HGET', KEYS[1], 'revision') or '0')
if cached > revision then
	return 0
end
redis.call('HSET', KEYS[1], 'revision', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// KEYS: entry, floor. ARGV: lowest revision a later fill may carry (0 leaves the floor), ttl in ms.
var evictScript = redis.NewScript(`
redis.call('DEL', KEYS[1])
local floor = tonumber(ARGV[1])
if floor > tonumber(redis.call('GET', KEYS[2]) or '0') then
	redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
end
return 1
`)

/*
FindByID returns the cached aggregate or loads and caches it.

Returns:
  - *LearningPath: A private copy the caller may mutate
  - error: Errors of the underlying store
*/
func (repository *CachedRepository) FindByID(context context.Context, id int64) (*LearningPath, error) {
	key := cacheKey(id)

	raw, err := repository.client.HGet(context, key, "data").Bytes()
	switch {
	case err == nil:
		var path LearningPath
		if jsonErr := json.Unmarshal(raw, &path); jsonErr == nil {
			return &path, nil
		}
		repository.logger.WarnContext(context, "learningpath_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		repository.logger.WarnContext(context, "learningpath_cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	path, err := repository.Repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	repository.fill(context, path)
	return path, nil
}

// Update writes through and evicts the cached aggregate, also when the store rejects the write.
func (repository *CachedRepository) Update(context context.Context, path *LearningPath, priorRevision int) error {
	if err := repository.Repository.Update(context, path, priorRevision); err != nil {
		repository.evict(context, path.ID, 0)
		return err
	}
	repository.evict(context, path.ID, path.Revision)
	return nil
}

// Delete removes the aggregate and evicts the cached copy, also when the store rejects the delete.
func (repository *CachedRepository) Delete(context context.Context, id int64, priorRevision int) error {
	if err := repository.Repository.Delete(context, id, priorRevision); err != nil {
		repository.evict(context, id, 0)
		return err
	}
	repository.evict(context, id, priorRevision+1)
	return nil
}

func (repository *CachedRepository) fill(context context.Context, path *LearningPath) {
	data, err := json.Marshal(path)
	if err != nil {
		return
	}

	keys := []string{cacheKey(path.ID), floorKey(path.ID)}
	if err := fillScript.Run(context, repository.client, keys, path.Revision, data, repository.ttl.Milliseconds()).Err(); err != nil {
		repository.logger.WarnContext(context, "learningpath_cache_write_failed", slog.Int64("id", path.ID), slog.Any("error", err))
	}
}

func (repository *CachedRepository) evict(context context.Context, id int64, floor int) {
	keys := []string{cacheKey(id), floorKey(id)}
	if err := evictScript.Run(context, repository.client, keys, floor, repository.ttl.Milliseconds()).Err(); err != nil {
		repository.logger.WarnContext(context, "learningpath_cache_evict_failed", slog.Int64("id", id), slog.Any("error", err))
	}
}

package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/loader"
	"github.com/huangsam/paleoreel/schema"
)

// currentCacheVersion defines the version of the cached table encoding
const currentCacheVersion = 1

// cacheMaxAge is how long a cached table stays usable.
const cacheMaxAge = 7 * 24 * time.Hour

// LoadSeries returns the parsed time series for cfg.DataPath, consulting the
// table cache first. Cache problems never fail the load.
func LoadSeries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.TimeSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetTableStore()
	}
	if store == nil {
		// Fallback to direct parsing
		return loader.LoadTimeSeries(cfg.DataPath, cfg.TimeColumn)
	}

	key, err := generateCacheKey(cfg)
	if err != nil {
		contract.LogWarn("Skipping table cache", err)
		return loader.LoadTimeSeries(cfg.DataPath, cfg.TimeColumn)
	}

	if ts := checkCacheHit(store, key); ts != nil {
		contract.Log().CacheLogger(cfg.DataPath, true, ts.Len(), time.Since(start))
		return ts, nil
	}

	ts, err := computeAndStore(cfg, store, key)
	if err != nil {
		return nil, err
	}
	contract.Log().CacheLogger(cfg.DataPath, false, ts.Len(), time.Since(start))
	return ts, nil
}

// checkCacheHit attempts to retrieve and validate a cached table
func checkCacheHit(store contract.CacheStore, key string) *schema.TimeSeries {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheMaxAge {
		return nil // Stale or version mismatch
	}

	var result schema.TimeSeries
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&result); err != nil {
		contract.LogWarn("Ignoring unreadable cache entry", err)
		return nil
	}
	return &result
}

// computeAndStore parses the table and stores it in the cache
func computeAndStore(cfg *contract.Config, store contract.CacheStore, key string) (*schema.TimeSeries, error) {
	result, err := loader.LoadTimeSeries(cfg.DataPath, cfg.TimeColumn)
	if err != nil {
		return nil, err
	}

	// gob keeps NaN cells intact, which JSON cannot
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(result); err != nil {
		contract.LogWarn("Cannot encode table for cache", err)
		return result, nil
	}
	if err := store.Set(key, buf.Bytes(), currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Cannot write table cache", err)
	}
	return result, nil
}

// generateCacheKey fingerprints the data file so edits invalidate the entry
func generateCacheKey(cfg *contract.Config) (string, error) {
	info, err := os.Stat(cfg.DataPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", cfg.DataPath, err)
	}
	key := fmt.Sprintf("%s:%d:%d:%s", cfg.DataPath, info.Size(), info.ModTime().UnixNano(), cfg.TimeColumn)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}

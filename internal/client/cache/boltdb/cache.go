// Package boltdb persists the last successfully fetched lot snapshot so
// a fresh session has a frame to show before its first poll completes.
package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/lotops/parkview/pkg/api"
)

var (
	bucketSnapshot = []byte("snapshot")

	keyState     = []byte("state")
	keyFetchedAt = []byte("fetched_at")
)

// ErrNoSnapshot is returned when nothing has been cached yet.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Cache is a BoltDB-backed snapshot cache.
type Cache struct {
	db *bbolt.DB
}

// New opens (or creates) the cache database at dbPath.
func New(ctx context.Context, dbPath string) (*Cache, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshot)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// SaveSnapshot replaces the cached snapshot wholesale.
func (c *Cache) SaveSnapshot(ctx context.Context, resp *api.StatusResponse, fetchedAt time.Time) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	ts, err := fetchedAt.UTC().MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal fetch time: %w", err)
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshot)
		if err := b.Put(keyState, data); err != nil {
			return err
		}
		return b.Put(keyFetchedAt, ts)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached snapshot and when it was fetched.
func (c *Cache) LoadSnapshot(ctx context.Context) (*api.StatusResponse, time.Time, error) {
	var (
		resp      api.StatusResponse
		fetchedAt time.Time
		found     bool
	)

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshot)
		data := b.Get(keyState)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("failed to decode cached snapshot: %w", err)
		}
		if ts := b.Get(keyFetchedAt); ts != nil {
			if err := fetchedAt.UnmarshalBinary(ts); err != nil {
				return fmt.Errorf("failed to decode fetch time: %w", err)
			}
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	if !found {
		return nil, time.Time{}, ErrNoSnapshot
	}
	return &resp, fetchedAt, nil
}

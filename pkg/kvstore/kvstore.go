// Package kvstore provides the opaque key-value persistence boundary used
// by every repository: JSON-encoded values stored under named string keys.
// Drivers are interchangeable; callers never see anything below Get/Set/Delete.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// ErrKeyNotFound is returned by Get when the key has never been written
// or has been deleted. Callers treat it as "collection absent".
var ErrKeyNotFound = errString("kvstore: key not found")

type errString string

func (e errString) Error() string { return string(e) }

// Store is the generic key-value contract. Set fully replaces the value
// under key; there is no partial write.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Supported driver names, selected via configuration.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

func marshalValue(value interface{}, key string) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value for %s: %w", key, err)
	}
	return raw, nil
}

func unmarshalValue(raw []byte, key string, dest interface{}) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal value for %s: %w", key, err)
	}
	return nil
}

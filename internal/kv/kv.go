// Package kv implements the durable key-value backing store the repository
// snapshots its collections into. Every driver satisfies Store; decorators
// (Prefixed, Instrument, WithBreaker) wrap any driver.
package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store is the backing store contract. Both calls may block on I/O and may
// fail; an absent key is reported as ok=false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Driver names a Store implementation selectable from configuration.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverRedis    Driver = "redis"
	DriverMongo    Driver = "mongo"
	DriverS3       Driver = "s3"
)

// Drivers lists every supported driver.
var Drivers = []Driver{DriverMemory, DriverFile, DriverSQLite, DriverPostgres, DriverRedis, DriverMongo, DriverS3}

// Config selects and parameterises a driver for Open.
type Config struct {
	Driver        Driver
	DataDir       string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDatabase string
	S3            S3Config
}

// ErrUnknownDriver is returned by Open for a driver name it does not know.
var ErrUnknownDriver = errors.New("kv: unknown driver")

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// Open constructs the configured driver. The returned io.Closer releases
// connections and must be called once the store is no longer used.
func Open(ctx context.Context, cfg Config) (Store, io.Closer, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nopCloser, nil
	case DriverFile:
		s, err := NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser, nil
	case DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverPostgres:
		s, pool, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, closerFunc(func() error { pool.Close(); return nil }), nil
	case DriverRedis:
		s, err := OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverMongo:
		s, client, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return s, closerFunc(func() error { return client.Disconnect(context.Background()) }), nil
	case DriverS3:
		s, err := OpenS3(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// ensureDir creates the parent directory of path if it is missing.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create dirs: %w", err)
	}
	return nil
}

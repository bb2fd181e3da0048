// Package storage persists the quote collection and its companion slots.
//
// Every slot is a JSON document under a fixed key in a small key-value
// backend: badger by default, sqlite as an alternative. The session slot
// always lives in an in-memory badger instance so it is gone after restart.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrKeyNotFound is returned by a KV when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Slot keys.
const (
	KeyQuotes     = "quotes"
	KeyFilter     = "selectedCategory"
	KeyTombstones = "tombstones"
	KeyLastViewed = "lastViewedQuote"
)

// Drivers accepted by Open.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// KV is the minimal contract a storage backend satisfies.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

// Options selects and configures the durable backend.
type Options struct {
	Driver     string
	Path       string
	SQLitePath string
	InMemory   bool
	Logger     *slog.Logger
}

// OpenKV opens the durable backend named by opts.Driver.
func OpenKV(opts Options) (KV, error) {
	switch opts.Driver {
	case "", DriverBadger:
		path := opts.Path
		if path == "" && !opts.InMemory {
			path = DefaultPath()
		}

		return OpenBadger(BadgerOptions{Path: path, InMemory: opts.InMemory, Logger: opts.Logger})
	case DriverSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = DefaultSQLitePath()
		}

		if opts.InMemory {
			path = ":memory:"
		}

		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

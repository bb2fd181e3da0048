package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

// AppName names the application data directory.
const AppName = "quotesync"

// DefaultPath returns the badger directory under the XDG data home.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// DefaultSQLitePath returns the sqlite file under the XDG data home.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, AppName, "quotes.db")
}

// BadgerOptions configures a badger key-value backend.
type BadgerOptions struct {
	// Path is the database directory. Empty means in-memory.
	Path string

	// InMemory forces in-memory mode regardless of Path.
	InMemory bool

	Logger *slog.Logger
}

// BadgerKV is a KV backed by badger.
type BadgerKV struct {
	db       *badger.DB
	inMemory bool
}

// OpenBadger opens or creates a badger database.
func OpenBadger(opts BadgerOptions) (*BadgerKV, error) {
	var bo badger.Options

	inMemory := opts.InMemory || opts.Path == ""
	if inMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, fmt.Errorf("creating badger directory: %w", err)
		}

		bo = badger.DefaultOptions(opts.Path)
	}

	bo = bo.WithLoggingLevel(badger.ERROR)
	if opts.Logger != nil {
		bo = bo.WithLogger(&badgerLogger{logger: opts.Logger.With("component", "badger")})
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}

	return &BadgerKV{db: db, inMemory: inMemory}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (b *BadgerKV) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}

			return err
		}

		out, err = item.ValueCopy(nil)

		return err
	})

	return out, err
}

// Set stores value under key.
func (b *BadgerKV) Set(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Ping reports whether the database still accepts reads.
func (b *BadgerKV) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger is closed")
	}

	return b.db.View(func(*badger.Txn) error { return nil })
}

// Close closes the database. Closing twice is a no-op.
func (b *BadgerKV) Close() error {
	if b.db.IsClosed() {
		return nil
	}

	return b.db.Close()
}

// Driver names the backend for logs and health output.
func (b *BadgerKV) Driver() string {
	if b.inMemory {
		return "badger-memory"
	}

	return "badger"
}

// badgerLogger routes badger's printf-style logging into slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(line(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(line(format, args))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(line(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(line(format, args))
}

func line(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

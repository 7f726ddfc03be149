package persist

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gelopine/realm/internal/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("stored value is corrupt")
)

// KVStore is a small string-keyed blob store. Get returns ErrNotFound for a
// missing key and ErrCorrupt when the stored bytes cannot be trusted.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (KVStore, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.Path, log)
	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		return NewPGStore(db), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// digest is the hex blake2b-256 of value, stored beside it in SQL backends.
func digest(value []byte) string {
	sum := blake2b.Sum256(value)
	return hex.EncodeToString(sum[:])
}

func verify(key string, value []byte, want string) ([]byte, error) {
	if digest(value) != want {
		return nil, fmt.Errorf("%s: %w: digest mismatch", key, ErrCorrupt)
	}
	return value, nil
}

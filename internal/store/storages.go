package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// Storages bundles the storage collaborators handed to the service layer.
type Storages struct {
	VaultStorage VaultStorage
	SaltStorage  SaltStorage

	closer func() error
}

// Close releases the underlying connection, if any.
func (s *Storages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// NewStorages connects the backend selected by cfg.DB.Driver and applies
// migrations for SQL backends.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory storage; data will not survive a restart")
		mem := NewMemoryStorage()
		return &Storages{VaultStorage: mem, SaltStorage: mem}, nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		VaultStorage: NewVaultRepository(db),
		SaltStorage:  NewSaltRepository(db),
		closer:       db.Close,
	}, nil
}

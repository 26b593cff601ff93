// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the merged server configuration is usable at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return cfg.Storage.DB.validate()
}

func (db DB) validate() error {
	switch db.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres, DriverSQLite:
		if db.DSN == "" {
			return fmt.Errorf("%w: %s driver needs a DSN", ErrInvalidStorageConfigs, db.Driver)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, db.Driver)
	}
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.Adapter.HTTPAddress)
	if err != nil || u.Scheme == "" || u.Host == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.KDFTimeout <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

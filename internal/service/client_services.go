package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// ClientServices groups what the CLI needs: the vault itself and the raw
// server adapter for calls that involve no record key.
type ClientServices struct {
	VaultService VaultClientService
	Server       adapter.ServerAdapter
}

func NewClientServices(serverAdapter adapter.ServerAdapter, cfg config.ClientApp, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		VaultService: NewClientVaultService(
			serverAdapter,
			crypto.NewKeyDeriver(),
			crypto.NewRecordCipher(),
			cfg.KDFTimeout,
			logger,
		),
		Server: serverAdapter,
	}
}

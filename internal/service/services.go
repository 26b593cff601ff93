package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	SaltService    SaltService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	authService := NewAuthService(cfg, logger)

	appInfoService, err := NewAppInfoService(cfg, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: authService,
		VaultService: NewVaultService(
			authService,
			storages.VaultStorage,
			validators.NewVaultItemValidator(),
			utils.NewUUIDGenerator(),
			logger,
		),
		SaltService:    NewSaltService(authService, storages.SaltStorage, crypto.NewKeyDeriver(), logger),
		AppInfoService: appInfoService,
	}, nil
}

package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type appInfoService struct {
	appVersion string
	buildInfo  models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports cfg.Version, falling back to the linker-embedded
// build version. At least one of them must be set.
func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	version := cfg.Version
	if version == "" && buildInfo.BuildVersion() != models.NotAvailable {
		version = buildInfo.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: version,
		buildInfo:  buildInfo,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}

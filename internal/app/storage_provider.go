package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/wardrobe-backend/internal/platform/gcp"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

var newImageBucket = gcp.NewImageBucket

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidConfig StorageProviderBootstrapErrorCode = "invalid_config"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code   StorageProviderBootstrapErrorCode
	Mode   string
	Bucket string
	Cause  error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf("object storage bootstrap failed (code=%s mode=%q bucket=%q): %v", e.Code, e.Mode, e.Bucket, e.Cause)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveImageBucket returns a nil bucket when object storage is not configured.
func resolveImageBucket(ctx context.Context, log *logger.Logger, cfg Config) (gcp.ImageBucket, error) {
	storageCfg := cfg.ObjectStorage
	mode, err := gcp.ParseStorageMode(cfg.ObjectStorageMode, storageCfg.EmulatorHost)
	if err != nil {
		return nil, storageBootstrapError(storageCfg, cfg.ObjectStorageMode, err)
	}
	storageCfg.Mode = mode
	if !storageCfg.Enabled() {
		log.Info("Object storage disabled; item photo upload unavailable")
		return nil, nil
	}

	log.Info("Selecting object storage provider",
		"mode", storageCfg.Mode,
		"bucket", storageCfg.Bucket,
		"emulator_host", storageCfg.EmulatorHost,
	)
	bucket, err := newImageBucket(ctx, log, storageCfg)
	if err != nil {
		classified := storageBootstrapError(storageCfg, string(storageCfg.Mode), err)
		log.Error("Object storage provider bootstrap failed",
			"mode", storageCfg.Mode,
			"bucket", storageCfg.Bucket,
			"error_code", classified.Code,
			"error", err,
		)
		return nil, classified
	}
	return bucket, nil
}

func storageBootstrapError(cfg gcp.StorageConfig, mode string, err error) *StorageProviderBootstrapError {
	code := StorageProviderBootstrapErrorConnectFailed
	var cfgErr *gcp.StorageConfigError
	if errors.As(err, &cfgErr) {
		code = StorageProviderBootstrapErrorInvalidConfig
	}
	return &StorageProviderBootstrapError{Code: code, Mode: mode, Bucket: cfg.Bucket, Cause: err}
}

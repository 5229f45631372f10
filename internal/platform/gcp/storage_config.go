package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type StorageMode string

const (
	// StorageModeDisabled turns item photo upload off.
	StorageModeDisabled StorageMode = ""
	StorageModeGCS      StorageMode = "gcs"
	StorageModeEmulator StorageMode = "gcs_emulator"
)

// StorageConfig selects where item photos go.
type StorageConfig struct {
	Mode   StorageMode
	Bucket string
	// EmulatorHost is the fake-gcs base URL, e.g. http://fake-gcs:4443.
	EmulatorHost string
	// PublicBaseURL overrides the host used in photo URLs.
	PublicBaseURL string
	CDNDomain     string
	// Credentials is a service account JSON document or a path to one.
	// Empty uses application default credentials.
	Credentials string
}

// ParseStorageMode accepts the OBJECT_STORAGE_MODE spellings. An emulator
// host with no explicit mode selects the emulator.
func ParseStorageMode(raw, emulatorHost string) (StorageMode, error) {
	switch mode := StorageMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case StorageModeDisabled:
		if strings.TrimSpace(emulatorHost) != "" {
			return StorageModeEmulator, nil
		}
		return StorageModeDisabled, nil
	case "off", "none", "disabled":
		return StorageModeDisabled, nil
	case StorageModeGCS, StorageModeEmulator:
		return mode, nil
	default:
		return StorageModeDisabled, &StorageConfigError{Code: StorageConfigErrorInvalidMode, Value: raw}
	}
}

func (c StorageConfig) Enabled() bool { return c.Mode != StorageModeDisabled }

func (c StorageConfig) Validate() error {
	switch c.Mode {
	case StorageModeDisabled:
		return nil
	case StorageModeGCS, StorageModeEmulator:
	default:
		return &StorageConfigError{Code: StorageConfigErrorInvalidMode, Value: string(c.Mode)}
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return &StorageConfigError{Code: StorageConfigErrorMissingBucket}
	}
	if c.Mode == StorageModeEmulator {
		if strings.TrimSpace(c.EmulatorHost) == "" {
			return &StorageConfigError{Code: StorageConfigErrorMissingEmulatorHost}
		}
		if !absoluteURL(c.EmulatorHost) {
			return &StorageConfigError{Code: StorageConfigErrorInvalidURL, Value: c.EmulatorHost}
		}
	}
	if c.PublicBaseURL != "" && !absoluteURL(c.PublicBaseURL) {
		return &StorageConfigError{Code: StorageConfigErrorInvalidURL, Value: c.PublicBaseURL}
	}
	return nil
}

type StorageConfigErrorCode string

const (
	StorageConfigErrorInvalidMode         StorageConfigErrorCode = "invalid_mode"
	StorageConfigErrorMissingBucket       StorageConfigErrorCode = "missing_bucket"
	StorageConfigErrorMissingEmulatorHost StorageConfigErrorCode = "missing_emulator_host"
	StorageConfigErrorInvalidURL          StorageConfigErrorCode = "invalid_url"
)

type StorageConfigError struct {
	Code  StorageConfigErrorCode
	Value string
}

func (e *StorageConfigError) Error() string {
	switch e.Code {
	case StorageConfigErrorInvalidMode:
		return fmt.Sprintf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q or empty)", e.Value, StorageModeGCS, StorageModeEmulator)
	case StorageConfigErrorMissingBucket:
		return "object storage needs ITEM_IMAGE_BUCKET"
	case StorageConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", StorageModeEmulator)
	case StorageConfigErrorInvalidURL:
		return fmt.Sprintf("invalid storage URL %q; expected absolute URL like http://fake-gcs:4443", e.Value)
	default:
		return "invalid object storage config"
	}
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && u.Scheme != "" && u.Host != ""
}

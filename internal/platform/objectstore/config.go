package objectstore

import (
	"fmt"
	"net/url"
	"strings"
)

type Mode string

const (
	ModeLocal       Mode = "local"
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
)

func IsSupportedMode(mode Mode) bool {
	switch mode {
	case ModeLocal, ModeGCS, ModeGCSEmulator:
		return true
	default:
		return false
	}
}

type Config struct {
	Mode Mode
	// LocalDir is the filesystem root for ModeLocal.
	LocalDir string
	// Bucket is the GCS bucket for ModeGCS and ModeGCSEmulator.
	Bucket       string
	EmulatorHost string
	// Credentials is either an inline JSON service-account key or a path to one.
	Credentials string
	// PublicBaseURL prefixes keys in public URLs. Local mode defaults to /media.
	PublicBaseURL string
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidMode         ConfigErrorCode = "invalid_mode"
	ConfigErrorMissingLocalDir     ConfigErrorCode = "missing_local_dir"
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorMissingEmulatorHost ConfigErrorCode = "missing_emulator_host"
	ConfigErrorInvalidBaseURL      ConfigErrorCode = "invalid_public_base_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	switch e.Code {
	case ConfigErrorInvalidMode:
		return fmt.Sprintf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q, %q)", e.Value, ModeLocal, ModeGCS, ModeGCSEmulator)
	case ConfigErrorMissingLocalDir:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires LOCAL_MEDIA_DIR", ModeLocal)
	case ConfigErrorMissingBucket:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires RECIPE_IMAGE_GCS_BUCKET", e.Value)
	case ConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", ModeGCSEmulator)
	case ConfigErrorInvalidBaseURL:
		return fmt.Sprintf("invalid PUBLIC_MEDIA_BASE_URL=%q; expected an absolute URL or a path starting with /", e.Value)
	default:
		return "invalid object storage config"
	}
}

// Normalize fills defaults and validates cfg.
func (cfg Config) Normalize() (Config, error) {
	cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	if cfg.Mode == "" {
		cfg.Mode = ModeLocal
	}
	if !IsSupportedMode(cfg.Mode) {
		return cfg, &ConfigError{Code: ConfigErrorInvalidMode, Value: string(cfg.Mode)}
	}
	cfg.LocalDir = strings.TrimSpace(cfg.LocalDir)
	cfg.Bucket = strings.TrimSpace(cfg.Bucket)
	cfg.EmulatorHost = strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")

	switch cfg.Mode {
	case ModeLocal:
		if cfg.LocalDir == "" {
			return cfg, &ConfigError{Code: ConfigErrorMissingLocalDir}
		}
		if cfg.PublicBaseURL == "" {
			cfg.PublicBaseURL = "/media"
		}
	case ModeGCS, ModeGCSEmulator:
		if cfg.Bucket == "" {
			return cfg, &ConfigError{Code: ConfigErrorMissingBucket, Value: string(cfg.Mode)}
		}
		if cfg.Mode == ModeGCSEmulator && cfg.EmulatorHost == "" {
			return cfg, &ConfigError{Code: ConfigErrorMissingEmulatorHost}
		}
	}
	if cfg.PublicBaseURL != "" && !strings.HasPrefix(cfg.PublicBaseURL, "/") {
		u, err := url.Parse(cfg.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, &ConfigError{Code: ConfigErrorInvalidBaseURL, Value: cfg.PublicBaseURL}
		}
	}
	return cfg, nil
}

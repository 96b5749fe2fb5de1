// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive sentinel error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendMemory:
	case BackendPostgres, BackendSQLite:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendRedis:
		if cfg.Storage.Redis.Addr == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.App.SessionWindow <= 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.App.XPPerLevel <= 0 || cfg.App.XPPerSec < 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.App.CookieName == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

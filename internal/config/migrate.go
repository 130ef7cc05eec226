package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns an error if the config version is newer than what this binary
// supports.
func migrate(cfg *Config) error {
	// Files written before the schema was versioned carry no version key.
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade todo)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}

	// Apply migrations sequentially: v1→v2, v2→v3, etc.
	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next
// version. The migration function must increment cfg.Version on success.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 adds the git integration keys (auto_commit, auto_sync).
// Unmarshaling over the defaults already supplies true for files that lack
// the keys, so this migration only bumps the version.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	cfg.Version = 2
	return nil
}

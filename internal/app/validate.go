package app

import (
	"fmt"

	"fedisync/pkg/config"
	"fedisync/pkg/models"
)

// validateConfig performs quick, fail-fast validation of the effective
// configuration before starting long-running services. Keep checks light
// and focused so callers can surface user-friendly errors.
func validateConfig(cfg *config.Config, dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("database path is empty: set --db flag, FEDISYNC_DB_PATH env, or storage.db_path in config")
	}
	if cfg.Remote.RPS < 0 {
		return fmt.Errorf("remote.rps must be >= 0")
	}
	if cfg.Remote.Burst < 0 {
		return fmt.Errorf("remote.burst must be >= 0")
	}

	seen := map[string]bool{}
	for i, acct := range cfg.Accounts {
		if acct.Instance == "" {
			return fmt.Errorf("accounts[%d]: instance is required", i)
		}
		id := models.AccountScope{Instance: acct.Instance, Username: acct.Username}.ID()
		if seen[id] {
			return fmt.Errorf("accounts[%d]: duplicate scope %s", i, id)
		}
		seen[id] = true
	}
	return nil
}

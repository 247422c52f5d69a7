package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `status:
  address: 127.0.0.1
  port: 9000
storage:
  db_path: /tmp/fedisync-cache
remote:
  rps: 1.5
  burst: 3
  page_size: 25
accounts:
  - instance: lemmy.ml
    username: alice
    token_env: FEDISYNC_TOKEN_ALICE
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
	if cfg.Storage.DBPath != "/tmp/fedisync-cache" {
		t.Fatalf("db path = %q", cfg.Storage.DBPath)
	}
	if cfg.Remote.RPS != 1.5 || cfg.Remote.Burst != 3 || cfg.Remote.PageSize != 25 {
		t.Fatalf("remote block mismatch: %+v", cfg.Remote)
	}
	if len(cfg.Accounts) != 1 || cfg.Accounts[0].TokenEnv != "FEDISYNC_TOKEN_ALICE" {
		t.Fatalf("accounts mismatch: %+v", cfg.Accounts)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging mismatch: %+v", cfg.Logging)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FEDISYNC_ADDR", "0.0.0.0:9100")
	t.Setenv("FEDISYNC_DB_PATH", "/tmp/override")
	t.Setenv("FEDISYNC_RATE_RPS", "4.5")
	t.Setenv("FEDISYNC_RATE_BURST", "9")
	t.Setenv("FEDISYNC_PAGE_SIZE", "50")

	cfg := &Config{}
	if !LoadEnvOverrides(cfg) {
		t.Fatalf("env overrides not detected")
	}
	if cfg.Status.Address != "0.0.0.0" || cfg.Status.Port != 9100 {
		t.Fatalf("addr override failed: %+v", cfg.Status)
	}
	if cfg.Storage.DBPath != "/tmp/override" {
		t.Fatalf("db path override failed: %q", cfg.Storage.DBPath)
	}
	if cfg.Remote.RPS != 4.5 || cfg.Remote.Burst != 9 || cfg.Remote.PageSize != 50 {
		t.Fatalf("remote overrides failed: %+v", cfg.Remote)
	}
}

func TestLoadEnvOverrides_BadValuesIgnored(t *testing.T) {
	t.Setenv("FEDISYNC_RATE_RPS", "not-a-number")
	cfg := &Config{}
	cfg.Remote.RPS = 2
	LoadEnvOverrides(cfg)
	if cfg.Remote.RPS != 2 {
		t.Fatalf("bad env value clobbered config: %v", cfg.Remote.RPS)
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("/flag/path.yaml", true); got != "/flag/path.yaml" {
		t.Fatalf("flag should win: %q", got)
	}
	t.Setenv("FEDISYNC_CONFIG", "/env/path.yaml")
	if got := ResolveConfigPath("/flag/path.yaml", false); got != "/env/path.yaml" {
		t.Fatalf("env should win over unset flag: %q", got)
	}
}

func TestAccountToken(t *testing.T) {
	t.Setenv("FEDISYNC_TOKEN_ALICE", "jwt-here")
	a := Account{Instance: "lemmy.ml", Username: "alice", TokenEnv: "FEDISYNC_TOKEN_ALICE"}
	if a.Token() != "jwt-here" {
		t.Fatalf("token = %q", a.Token())
	}
	if (Account{Instance: "lemmy.ml"}).Token() != "" {
		t.Fatalf("account without token_env should be anonymous")
	}
}

func TestAddr_Defaults(t *testing.T) {
	cfg := &Config{}
	if cfg.Addr() != "127.0.0.1:8321" {
		t.Fatalf("default addr = %q", cfg.Addr())
	}
}

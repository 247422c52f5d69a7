package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Account declares one account scope. The bearer token is never stored
// in the file; TokenEnv names the environment variable that carries it.
type Account struct {
	Instance string `yaml:"instance"`
	Username string `yaml:"username"`
	TokenEnv string `yaml:"token_env"`
}

// Token resolves the account's bearer token from the environment.
// Empty means the scope runs signed out.
func (a Account) Token() string {
	if a.TokenEnv == "" {
		return ""
	}
	return os.Getenv(a.TokenEnv)
}

type Config struct {
	Status struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"status"`
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	Remote struct {
		RPS             float64 `yaml:"rps"`
		Burst           int     `yaml:"burst"`
		PageSize        int     `yaml:"page_size"`
		MaxCommentDepth int     `yaml:"max_comment_depth"`
		SiteTTLSeconds  int     `yaml:"site_ttl_seconds"`
	} `yaml:"remote"`
	Queue struct {
		Capacity int `yaml:"capacity"`
	} `yaml:"queue"`
	Accounts []Account `yaml:"accounts"`
	Logging  struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text|json
	} `yaml:"logging"`
}

// Addr returns host:port for the status HTTP server.
func (c *Config) Addr() string {
	addr := c.Status.Address
	if addr == "" {
		addr = "127.0.0.1"
	}
	p := c.Status.Port
	if p == 0 {
		p = 8321
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseCommandFlags defines and parses command-line flags and returns
// their values along with a map indicating which flags were explicitly
// set.
func ParseCommandFlags() (addr string, dbPath string, cfgPath string, setFlags map[string]bool) {
	addrPtr := flag.String("addr", "127.0.0.1:8321", "status HTTP listen address")
	dbPtr := flag.String("db", "./.cache", "Pebble DB path")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	setFlags = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return *addrPtr, *dbPtr, *cfgPtr, setFlags
}

// LoadEnvOverrides applies environment overrides onto the provided cfg
// and reports whether any env vars were used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false

	if v := os.Getenv("FEDISYNC_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Status.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Status.Port = pi
			}
		} else {
			cfg.Status.Address = v
		}
	} else {
		if host := os.Getenv("FEDISYNC_ADDRESS"); host != "" {
			envUsed = true
			cfg.Status.Address = host
		}
		if port := os.Getenv("FEDISYNC_PORT"); port != "" {
			envUsed = true
			if pi, err := strconv.Atoi(port); err == nil {
				cfg.Status.Port = pi
			}
		}
	}

	if v := os.Getenv("FEDISYNC_DB_PATH"); v != "" {
		envUsed = true
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FEDISYNC_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			envUsed = true
			cfg.Remote.RPS = f
		}
	}
	if v := os.Getenv("FEDISYNC_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Remote.Burst = n
		}
	}
	if v := os.Getenv("FEDISYNC_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Remote.PageSize = n
		}
	}
	if v := os.Getenv("FEDISYNC_MAX_COMMENT_DEPTH"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Remote.MaxCommentDepth = n
		}
	}
	if v := os.Getenv("FEDISYNC_SITE_TTL"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Remote.SiteTTLSeconds = n
		}
	}
	if v := os.Getenv("FEDISYNC_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Queue.Capacity = n
		}
	}
	return envUsed
}

// LoadEffective loads config from the given path (file) and applies
// environment overrides. A missing file is not an error; env and flag
// values stand alone.
func LoadEffective(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}
	envUsed := LoadEnvOverrides(cfg)
	return cfg, envUsed, nil
}

// ResolveConfigPath decides the config file path using the flag-provided
// value and the environment variable `FEDISYNC_CONFIG` when the flag was
// not set.
func ResolveConfigPath(flagPath string, flagSet bool) string {
	if flagSet {
		return flagPath
	}
	if p := os.Getenv("FEDISYNC_CONFIG"); p != "" {
		return p
	}
	return flagPath
}

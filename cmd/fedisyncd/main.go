package main

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"fedisync/internal/app"
	"fedisync/pkg/config"
	"fedisync/pkg/logger"
	"fedisync/pkg/remote"
	"fedisync/pkg/shutdown"
)

// build metadata - set via ldflags during build/release
var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load(".env")
	addrVal, dbVal, cfgVal, setFlags := config.ParseCommandFlags()

	// Resolve config path (file flag wins over env)
	cfgPath := config.ResolveConfigPath(cfgVal, setFlags["config"])

	cfg, envUsed, err := config.LoadEffective(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Flags explicitly set win over env/config.
	addr := addrVal
	if !setFlags["addr"] {
		addr = cfg.Addr()
	}
	dbPath := dbVal
	if !setFlags["db"] && cfg.Storage.DBPath != "" {
		dbPath = cfg.Storage.DBPath
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync()

	var srcs []string
	if len(setFlags) > 0 {
		srcs = append(srcs, "flags")
	}
	if envUsed {
		srcs = append(srcs, "env")
	}
	if _, err := config.Load(cfgPath); err == nil {
		srcs = append(srcs, "config")
	}

	verStr := version
	if commit != "none" {
		verStr += " (" + commit + ")"
	}

	// The daemon exposes the operational surface only; callers that need
	// live data embed the engine with a real transport.
	a, err := app.New(cfg, addr, dbPath, strings.Join(srcs, ", "), verStr, remote.Unavailable{})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()

	if err := a.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"SearchQL/internal/config"
	"SearchQL/internal/db"
	"SearchQL/internal/graph"
	"SearchQL/internal/logger"
	"SearchQL/internal/router"
)

func main() {
	debugFlag := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	cfg := config.LoadConfig()
	if err := logger.Init("."); err != nil {
		fmt.Fprintf(os.Stderr, "log init failed: %v\n", err)
		os.Exit(1)
	}
	logger.SetDebug(*debugFlag)

	// PostgreSQL
	if err := db.InitPostgres(cfg.PostgresDSN); err != nil {
		logger.Error("postgres_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	logger.Info("postgres_connected", nil)

	// Redis опционален: без него карты алиасов строятся локально
	db.InitRedis(cfg.RedisAddr)
	if err := db.PingRedis(); err != nil {
		logger.Warn("redis_unreachable", map[string]any{"error": err.Error()})
	}

	// Инициализируем граф сущностей
	if err := graph.InitRegistry(cfg.ModelsDir); err != nil {
		logger.Error("registry_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	graph.SetAliasCacheMaxBytes(cfg.AliasCache.MaxBytes)
	logger.Info("graph_initialized", map[string]any{"models": len(graph.Registry)})

	// Initialize routes
	if err := router.InitRoutes(cfg); err != nil {
		logger.Error("router_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Start HTTP server
	logger.Info("server_start", map[string]any{"port": cfg.Port})
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		logger.Error("server_error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

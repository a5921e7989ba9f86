// @title Frame Thumbnail API
// @version 1.0
// @description API for probing videos and extracting resized frame thumbnails.
// @host localhost:8080
// @BasePath /
package main

//go:generate swag init --dir ../../ --generalInfo cmd/daemon/main.go --output ../../internal/docs --outputTypes go

import (
	"log"
	"net/http"

	"framethumb/internal/capture"
	"framethumb/internal/config"
	"framethumb/internal/daemon"
	_ "framethumb/internal/docs"
	"framethumb/internal/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	opener, _ := capture.Default(logger)
	server := daemon.NewServer(cfg, opener, logger)

	logger.Info("starting server",
		zap.String("addr", cfg.Addr),
		zap.String("backend", capture.Backend),
		zap.String("output_dir", cfg.OutputDir),
	)
	if err := http.ListenAndServe(cfg.Addr, server.Routes()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

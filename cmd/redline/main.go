package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/redline/internal/config"
	"github.com/aleister1102/redline/internal/gateway"
	"github.com/aleister1102/redline/internal/logger"
	"github.com/aleister1102/redline/internal/tasklog"
	"github.com/aleister1102/redline/internal/textaction"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	if flags.ListenAddr != "" {
		gCfg.GatewayConfig.ListenAddr = flags.ListenAddr
	}
	if flags.Endpoint != "" {
		gCfg.ClientConfig.Endpoint = flags.Endpoint
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	taskLog, err := tasklog.NewStore(gCfg.TaskLogConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize task log")
	}
	defer taskLog.Close()

	clientBuilder := textaction.NewClientBuilder(zLogger).WithConfig(gCfg.ClientConfig)
	if token := os.Getenv("REDLINE_API_TOKEN"); token != "" {
		clientBuilder = clientBuilder.WithCredentialProvider(textaction.StaticCredential(token))
	} else {
		zLogger.Warn().Msg("REDLINE_API_TOKEN not set, text actions will fail the credential precheck")
	}

	client, err := clientBuilder.Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build text action client")
	}

	server := gateway.NewServer(gCfg.GatewayConfig, gCfg.DiffConfig, client, taskLog, zLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, initiating graceful shutdown...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		zLogger.Fatal().Err(err).Msg("Gateway terminated with error")
	}
	zLogger.Info().Msg("Application finished.")
}

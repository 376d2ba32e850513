package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/clubhub/club-api/cmd/server/seeder/cmds"
	"github.com/clubhub/club-api/internal/logger"
	otelclubapi "github.com/clubhub/club-api/internal/otel"
)

func runApp(ctx context.Context) int {
	useOTLP, err := strconv.ParseBool(os.Getenv("USE_OTLP"))
	if err != nil {
		useOTLP = false
	}

	shutdown, err := otelclubapi.SetupOTelSDK(ctx, useOTLP)
	if err != nil {
		logger.Logger.Warn("failed to setup otel sdk")
	}
	defer func() {
		fail := shutdown(ctx)
		if fail != nil {
			logger.Logger.Warn("no clean shutdown for otel", "error", fail)
		}
	}()

	err = cmds.Execute(ctx)
	if err != nil {
		logger.Logger.Error("error executing subcommands", "error", err)
		return 1
	}

	return 0
}

func main() {
	logger.LogLevel.Set(slog.LevelDebug)
	logger.InitSlog()

	ctx := context.Background()

	os.Exit(runApp(ctx))
}

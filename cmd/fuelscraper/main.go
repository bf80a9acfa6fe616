package main

import (
	"context"
	"fuelscraper/cmd/fuelscraper/commands"
	"fuelscraper/internal/components/telemetry"
	"log/slog"
	"os"
	"time"
)

func main() {
	ctx := context.Background()

	otel, err := telemetry.SetupFromEnv(ctx, "fuelscraper")
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := otel.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

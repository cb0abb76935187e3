package main

import (
	"context"
	"os"

	_ "embed"

	"go.uber.org/fx"

	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// embeddedConfig holds the application's YAML configuration.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// main is the application entry point.
// It serves until SIGINT or SIGTERM and exits with the code fx reports for the shutdown.
func main() {
	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	fxApp := fx.New(GetApplicationOptions(os.Args[1:], envFilePath, embeddedConfig)...)

	startCtx, cancelStart := context.WithTimeout(context.Background(), fxApp.StartTimeout())
	if err := fxApp.Start(startCtx); err != nil {
		cancelStart()
		logger.Fatalf("Application failed to start: %v", err)
	}
	cancelStart()

	// fx listens for SIGINT and SIGTERM itself.
	sig := <-fxApp.Wait()
	if sig.Signal != nil {
		logger.Warnf("Received signal '%v'. Shutting down...", sig.Signal)
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), fxApp.StopTimeout())
	err := fxApp.Stop(stopCtx)
	cancelStop()
	if err != nil {
		logger.Errorf("Application failed to stop cleanly: %v", err)
		os.Exit(1)
	}
	os.Exit(sig.ExitCode)
}

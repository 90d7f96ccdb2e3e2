package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "embed"

	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	"go.uber.org/fx"
)

// embeddedConfig holds the content of the application's YAML configuration
// file.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// embeddedJob holds the content of the payroll job definition XML.
//
//go:embed resources/payroll-job.xml
var embeddedJob []byte

// main is the entry point of the payroll example application.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handling (Ctrl+C and service stop).
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v'. Attempting to stop the run...", sig)
		cancel()
	}()

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	fxApp := fx.New(GetApplicationOptions(ctx, envFilePath, embeddedConfig, embeddedJob)...)
	fxApp.Run()
	if fxApp.Err() != nil {
		logger.Fatalf("Application run failed: %v", fxApp.Err())
	}
	os.Exit(0)
}

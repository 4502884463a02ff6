// Command lcsynth synthesises survey-realistic multi-filter light curves.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/lcsynth/internal/adapters/driven/cadence"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/output"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/rawcurves"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/watcher"
	"github.com/custodia-labs/lcsynth/internal/adapters/driving/cli"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/services"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	env, err := file.ParseEnv()
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	settingsService := services.NewSettingsService(openConfigStore())
	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("load settings: %v", err)
		return 1
	}
	if env.Verbose || settings.Verbose {
		logger.SetVerbose(true)
	}
	if env.DataDir != "" {
		settings.DataDir = env.DataDir
	}

	// The ledger is optional; runs still work without history.
	var ledger driven.RunLedger
	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		logger.Warn("run ledger unavailable: %v", err)
	} else {
		defer store.Close()
		ledger = store.RunLedger()
	}

	loader := file.NewSurveyLoader(env)
	reader := cadence.NewFileReader()
	outputs := output.NewFactory()
	pipeline := services.NewPipelineService(loader, reader, rawcurves.NewFactory(), outputs, ledger, *settings)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Pipeline: pipeline,
		Watcher:  services.NewWatchService(loader, watcher.New(watcher.DefaultDebounce), pipeline),
		Survey:   services.NewSurveyService(loader, reader),
		Inspect:  services.NewInspectService(loader, outputs),
		History:  services.NewRunHistoryService(ledger),
		Settings: settingsService,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// openConfigStore falls back to in-memory settings when ~/.lcsynth is not
// writable.
func openConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("settings unavailable, using defaults: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

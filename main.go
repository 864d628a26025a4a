package main

import (
	"context"
	"faqbot/app/api"
	"faqbot/app/config"
	"faqbot/app/service/chat"
	"faqbot/app/service/interaction"
	"faqbot/app/service/knowledge"
	"faqbot/app/service/queue"
	"faqbot/app/service/recorder"
	"faqbot/app/service/resolver"
	"faqbot/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, knowledge.New)
	do.Provide(di, resolver.New)
	do.Provide(di, interaction.New)
	do.Provide(di, queue.New)
	do.Provide(di, recorder.New)
	do.Provide(di, chat.New)
	do.Provide(di, api.New)

	// Fail fast on a broken knowledge base before accepting traffic.
	kb := do.MustInvoke[*knowledge.Base](di)

	slog.Info("Service started",
		"listen", cfg.HTTP.Listen,
		"entries", kb.Len(),
		"fuzzy", !cfg.Matcher.DisableFuzzy,
		"analytics", !cfg.Analytics.Disabled)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if !cfg.Analytics.Disabled {
		recorderSvc := do.MustInvoke[*recorder.Service](di)
		done := make(chan struct{})
		go func() {
			defer close(done)
			recorderSvc.Run(appCtx)
		}()
		defer func() { <-done }()
	}

	go do.MustInvoke[*chat.Service](di).RunCleanupLoop(appCtx)

	go func() {
		if err := do.MustInvoke[*api.Server](di).Run(appCtx); err != nil {
			slog.Error("HTTP server failed", "error", err)
		}

		cancel()
	}()

	<-appCtx.Done()
}

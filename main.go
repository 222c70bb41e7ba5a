package main

import (
	"careerchat/app/client/pushover"
	"careerchat/app/config"
	"careerchat/app/server"
	"careerchat/app/service/chat"
	"careerchat/app/service/knowledge"
	"careerchat/app/service/leads"
	"careerchat/app/service/mcpserver"
	"careerchat/app/service/tools"
	"careerchat/app/util/mylog"
	"context"
	"log/slog"
	"os"
	"os/signal"

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

	do.Provide(di, pushover.NewClient)
	do.Provide(di, knowledge.New)
	do.Provide(di, leads.New)
	do.Provide(di, tools.New)
	do.Provide(di, chat.New)
	do.Provide(di, server.New)
	do.Provide(di, mcpserver.New)

	// Grounding documents are required, fail before serving anything.
	srv, err := do.Invoke[*server.Service](di)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	slog.Info("Service started", "candidate", cfg.Candidate.Name)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if cfg.MCP.Enabled {
		go do.MustInvoke[*mcpserver.Service](di).Run(appCtx)
	}

	go srv.Run(appCtx)

	<-appCtx.Done()
}

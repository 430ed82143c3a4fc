package main

import (
	"fmt"

	_ "github.com/cashfold/checking/docs"
	"github.com/cashfold/checking/infra/initializer"
	"github.com/cashfold/checking/pkg/config"
	"github.com/cashfold/checking/webapi"
	log "github.com/charmbracelet/log"
)

// @title Checking Account API
// @version 1.0.0
// @description Withdrawal authorization and ledger API
// @contact.name API Support
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	var idem webapi.IdempotencyStore
	if deps.Idempotency != nil {
		idem = deps.Idempotency
	}
	fiberApp := webapi.SetupApp(deps.Accounts, deps.Withdrawals, deps.Auth, idem, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)
	return fiberApp.Listen(addr)
}

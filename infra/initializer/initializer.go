// Package initializer wires the application dependencies explicitly: stores,
// event sink, idempotency guard, and services. There is no global container;
// everything flows through constructors.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/cashfold/checking/infra/database"
	infraevents "github.com/cashfold/checking/infra/events"
	"github.com/cashfold/checking/infra/idempotency"
	accountrepo "github.com/cashfold/checking/infra/repository/account"
	limitrepo "github.com/cashfold/checking/infra/repository/limit"
	transactionrepo "github.com/cashfold/checking/infra/repository/transaction"
	"github.com/cashfold/checking/pkg/config"
	"github.com/cashfold/checking/pkg/eventbus"
	accountsvc "github.com/cashfold/checking/pkg/service/account"
	authsvc "github.com/cashfold/checking/pkg/service/auth"
	withdrawalsvc "github.com/cashfold/checking/pkg/service/withdrawal"
	"gorm.io/gorm"
)

// Deps holds the wired application dependencies.
type Deps struct {
	Logger      *slog.Logger
	DB          *gorm.DB
	Bus         eventbus.Publisher
	Accounts    *accountsvc.Service
	Withdrawals *withdrawalsvc.Service
	Auth        *authsvc.Service
	Idempotency *idempotency.Store
}

// New initializes all application dependencies from the configuration.
func New(cfg *config.App) (*Deps, error) {
	deps := &Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := database.New(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	deps.DB = db

	var bus eventbus.Publisher
	if cfg.Nats.Url != "" {
		natsBus, err := infraevents.NewNatsPublisher(cfg.Nats.Url, cfg.Nats.SubjectPrefix, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize event sink: %w", err)
		}
		bus = natsBus
		logger.Info("publishing events to NATS", "url", cfg.Nats.Url, "prefix", cfg.Nats.SubjectPrefix)
	} else {
		bus = eventbus.NewSimpleEventBus()
		logger.Warn("NATS not configured, using in-memory event bus")
	}
	deps.Bus = bus

	if cfg.Redis.Url != "" {
		store, err := idempotency.New(cfg.Redis.Url, cfg.Redis.IdempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("initialize idempotency store: %w", err)
		}
		deps.Idempotency = store
	} else {
		logger.Warn("Redis not configured, idempotency middleware disabled")
	}

	accounts := accountrepo.New(db)
	transactions := transactionrepo.New(db)
	limits := limitrepo.New(db)

	deps.Accounts = accountsvc.New(accounts, transactions, bus, logger)
	deps.Withdrawals = withdrawalsvc.New(accounts, transactions, limits, bus, logger)
	deps.Auth = authsvc.New(cfg.Jwt, logger)

	return deps, nil
}

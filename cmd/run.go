package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"minicasino/config"
	"minicasino/database"
	"minicasino/events"
	"minicasino/games"
	"minicasino/repository"
	"minicasino/rng"
	"minicasino/service"
)

// Services bundles the wired application services.
type Services struct {
	Accounts service.AccountService
	Ledger   service.LedgerService
	Rounds   service.RoundService
}

// Run initializes the application and blocks until the context is cancelled
func Run(ctx context.Context) error {
	// A missing .env file is fine, the environment may be set directly
	_ = godotenv.Load()

	cfg := config.Get()
	setupLogging(cfg)

	log.Info("Starting casino service...")

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	eventBus := events.NewBus()
	subscribeAuditHandlers(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	catalog, err := games.NewCatalog(cfg.ScratchCardCost)
	if err != nil {
		return fmt.Errorf("failed to build game catalog: %w", err)
	}
	log.WithField("games", len(catalog.Types())).Info("Game catalog ready")

	app := &application{
		db: db,
		services: Services{
			Accounts: service.NewAccountService(uowFactory, cfg.StartingBalance),
			Ledger:   service.NewLedgerService(uowFactory),
			Rounds:   service.NewRoundService(uowFactory, catalog, rng.NewSource()),
		},
	}

	log.WithField("environment", cfg.Environment).Info("Casino service is running")
	return app.wait(ctx)
}

// application holds the wired components for the lifetime of the process.
type application struct {
	db       *database.DB
	services Services
}

func (a *application) wait(ctx context.Context) error {
	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// subscribeAuditHandlers attaches logging observers to the committed-event
// stream. Events arrive only after their transaction has committed.
func subscribeAuditHandlers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, event events.Event) {
		e := event.(events.AccountCreatedEvent)
		log.WithFields(log.Fields{
			"accountID": e.AccountID,
			"balance":   e.InitialBalance.String(),
		}).Info("Account created")
	})

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		e := event.(events.BalanceChangeEvent)
		log.WithFields(log.Fields{
			"accountID": e.AccountID,
			"kind":      e.Kind,
			"amount":    e.ChangeAmount.String(),
			"before":    e.OldBalance.String(),
			"after":     e.NewBalance.String(),
		}).Debug("Balance changed")
	})

	bus.Subscribe(events.EventTypeRoundPlayed, func(ctx context.Context, event events.Event) {
		e := event.(events.RoundPlayedEvent)
		log.WithFields(log.Fields{
			"accountID": e.AccountID,
			"sessionID": e.SessionID,
			"gameType":  e.GameType,
			"net":       e.NetResult.String(),
		}).Info("Round played")
	})
}

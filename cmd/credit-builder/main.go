package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	gcppubsub "cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"

	"credverify/internal/app/router"
	"credverify/internal/pkg/assets"
	"credverify/internal/pkg/cleanup"
	"credverify/internal/pkg/config"
	"credverify/internal/pkg/consts"
	mongodb "credverify/internal/pkg/db/mongo"
	redisdb "credverify/internal/pkg/db/redis"
	"credverify/internal/pkg/kafka/producer"
	"credverify/internal/pkg/logger"
	"credverify/internal/pkg/otel"
	"credverify/internal/pkg/pubsub"
	"credverify/internal/pkg/store/impl/archived_loans"
	"credverify/internal/pkg/store/impl/collateral"
	"credverify/internal/pkg/store/impl/loans"
	"credverify/internal/pkg/store/impl/payment_guard"
	"credverify/internal/pkg/store/impl/scores"
	"credverify/internal/service/escrow"
	"credverify/internal/service/events"
	"credverify/internal/service/ledger"
	"credverify/internal/service/payments"
	"credverify/internal/service/platform"
	"credverify/internal/service/scoring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logger.Init("info")

	cfg, err := config.LoadFromConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logging.LogLevel)

	otelShutdown, err := otel.Setup(ctx, router.ServiceName, otel.Config{
		Enabled:        cfg.Tracing.Enabled,
		CollectorURL:   cfg.Tracing.CollectorURL,
		UseTLS:         cfg.Tracing.UseTLS,
		SampleRatio:    cfg.Tracing.SampleRatio,
		ConnectTimeout: cfg.Tracing.ConnectTimeout,
	})
	if err != nil {
		logger.CtxWarn(ctx, "Tracing setup failed, continuing without it")
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.ConnectToMongoDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Connect to Redis
	redisClient, err := redisdb.ConnectToRedis(ctx, cfg.Redis, nil)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Brokers are optional: the publisher drops events for any client that
	// failed to come up, so the loan flow itself keeps working.
	lifecycleClient := initPubSubClient(ctx, cfg.PubSub.ProjectID, cfg.PubSub.LifecycleTopic, "(1/2)")
	achievementClient := initPubSubClient(ctx, cfg.PubSub.ProjectID, cfg.PubSub.AchievementTopic, "(2/2)")

	kafkaProducer, err := producer.NewKafkaProducer(cfg.Kafka)
	if err != nil {
		logger.CtxWarn(ctx, "Kafka producer unavailable, settlement events disabled",
			slog.String("server", cfg.Kafka.Server))
		kafkaProducer = nil
	}

	var lifecycle, achievement events.LifecyclePublisher
	if lifecycleClient != nil {
		lifecycle = lifecycleClient
	}
	if achievementClient != nil {
		achievement = achievementClient
	}
	var settlement events.SettlementPublisher
	if kafkaProducer != nil {
		settlement = kafkaProducer
	}
	publisher := events.NewPublisher(lifecycle, achievement, settlement)

	platformSvc := buildPlatform(cfg, publisher, mongoClient, redisClient)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router.SetupRouter(platformSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.CtxInfo(ctx, "Server starting", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxError(ctx, "Failed to start server", err)
			stop()
		}
	}()

	<-ctx.Done()

	cleanup.CleanupResources(context.Background(), server,
		func() {
			if kafkaProducer != nil {
				kafkaProducer.Flush(5000)
				kafkaProducer.Close()
			}
		},
		func() {
			if lifecycleClient != nil {
				lifecycleClient.Close()
			}
			if achievementClient != nil {
				achievementClient.Close()
			}
		},
		func() {
			if err := redisdb.Disconnect(redisClient.Client); err != nil {
				logger.Error("Failed to close Redis client", err)
			}
		},
		func() {
			if err := mongodb.Disconnect(mongoClient.Client); err != nil {
				logger.Error("Failed to close MongoDB client", err)
			}
		},
		func() {
			if otelShutdown != nil {
				if err := otelShutdown(context.Background()); err != nil {
					logger.Error("Failed to shutdown tracing", err)
				}
			}
		},
	)
}

// buildPlatform constructs the four components, wires their collaborators
// and wraps them in the transactional façade.
func buildPlatform(
	cfg *config.AppConfig,
	publisher *events.Publisher,
	mongoClient *mongodb.MongoClient,
	redisClient *redisdb.RedisClient,
) *platform.Platform {
	assetLedger := assets.NewLedger()

	collateralRepo := collateral.NewCollateralRepository()
	loansRepo := loans.NewLoanRepository()
	scoresRepo := scores.NewScoreRepository()
	archiveRepo := archived_loans.NewArchivedLoansRepository(mongoClient)
	guardRepo := payment_guard.NewPaymentGuardRepository(redisClient.Client)

	escrowSvc := escrow.NewEscrowService(
		consts.CollateralEscrowIdentity, cfg.Loan.AdminIdentity, collateralRepo, assetLedger, publisher)
	for _, asset := range cfg.Loan.SupportedAssets {
		escrowSvc.AddSupportedAsset(asset)
	}

	terms := ledger.Terms{
		AnnualRateBps:          cfg.Loan.AnnualRateBps,
		TermPeriods:            cfg.Loan.TermPeriods,
		PeriodLength:           time.Duration(cfg.Loan.PeriodDays) * 24 * time.Hour,
		GracePeriod:            time.Duration(cfg.Loan.GracePeriodDays) * 24 * time.Hour,
		EarlyTerminationFeeBps: cfg.Loan.EarlyTerminationFeeBps,
	}
	ledgerSvc := ledger.NewLedgerService(
		consts.LoanLedgerIdentity, loansRepo, terms, cfg.Loan.PlatformTreasury, publisher)

	paymentsSvc := payments.NewPaymentService(
		consts.PaymentProcessorIdentity, cfg.Loan.PaymentAsset, cfg.Loan.TreasuryIdentity, assetLedger, publisher)

	scoresSvc := scoring.NewScoreService(consts.CreditScoreEngineIdentity, scoresRepo, publisher)

	escrowSvc.RegisterLoanLedger(consts.LoanLedgerIdentity, ledgerSvc)
	ledgerSvc.RegisterCollaborators(
		consts.CollateralEscrowIdentity, escrowSvc,
		consts.PaymentProcessorIdentity, paymentsSvc,
		scoresSvc, publisher, archiveRepo)
	paymentsSvc.RegisterCollaborators(ledgerSvc, scoresSvc)
	scoresSvc.RegisterCollaborators(consts.LoanLedgerIdentity, consts.PaymentProcessorIdentity)

	return platform.NewPlatform(
		escrowSvc, ledgerSvc, paymentsSvc, scoresSvc,
		assetLedger, guardRepo, time.Duration(cfg.Loan.GuardTTLSeconds)*time.Second,
		cfg.Loan.AdminIdentity)
}

func initPubSubClient(ctx context.Context, projectID, topic, label string) *pubsub.PubSubClient {
	client, err := pubsub.NewPubSubClient(ctx, projectID, topic, gcppubsub.NewClient)
	if err != nil {
		logger.CtxWarn(ctx, "Pub/Sub client unavailable "+label,
			slog.String("pubsub_topic", topic))
		return nil
	}

	logger.Info("successful pubsub client creation "+label,
		slog.String("pubsub_topic", topic))

	return client
}

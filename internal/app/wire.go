//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dispatch/internal/pkg/config"
	deliveryService "dispatch/internal/service/delivery"
	dispatchService "dispatch/internal/service/dispatch"
	earningService "dispatch/internal/service/earning"
	eventsService "dispatch/internal/service/events"
	issueService "dispatch/internal/service/issue"
	pushTokenService "dispatch/internal/service/pushtoken"
	"dispatch/pkg/logger"
	"firebase.google.com/go/v4/messaging"
	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// coreSet реестр доставок со всеми побочными эффектами переходов.
var coreSet = wire.NewSet(
	provideTxManager,
	provideQuerier,
	provideHTTPClient,

	provideDeliveryRepository,
	provideEarningConfigRepository,
	providePushTokenRepository,
	provideDriverStatsRepository,

	provideGeoResolver,
	provideEarningPolicy,
	provideNotifier,

	providePushGateway,
	provideWebhookGateway,
	provideRewardGateway,
	provideLifecyclePublisher,

	provideEventDispatcher,
	provideServiceDelivery,
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	fcm *messaging.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		coreSet,

		provideDeliveryIssueRepository,
		provideDriverLocationRepository,
		provideSMSGateway,

		provideMatcher,
		provideIssueService,
		providePushTokenService,
		provideAuthenticator,

		provideDeliveryExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceDispatch), new(*dispatchService.Matcher)),
		wire.Bind(new(ServiceEarning), new(*earningService.Policy)),
		wire.Bind(new(ServiceEvents), new(*eventsService.Dispatcher)),
		wire.Bind(new(ServiceIssue), new(*issueService.Service)),
		wire.Bind(new(ServicePushToken), new(*pushTokenService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-delivery-requested)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	fcm *messaging.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		coreSet,
		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

// InitializeCLIApp для админской утилиты (cmd/dispatchctl)
func InitializeCLIApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	fcm *messaging.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*CLIApp, error) {
	wire.Build(
		coreSet,
		wire.Struct(new(CLIApp), "*"),
	)
	return nil, nil
}

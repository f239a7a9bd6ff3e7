package app

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/firebase/push"
	"dispatch/internal/gateway/geo/google"
	"dispatch/internal/gateway/geo/osm"
	"dispatch/internal/gateway/http/reward"
	"dispatch/internal/gateway/http/sms"
	"dispatch/internal/gateway/http/webhook"
	lifecyclePublisher "dispatch/internal/gateway/kafka/lifecycle"
	"dispatch/internal/handlers/tasks/delivery_expiry"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/httpclient"
	"dispatch/internal/pkg/middlewares/auth"
	deliveryRepo "dispatch/internal/repository/delivery"
	deliveryIssueRepo "dispatch/internal/repository/delivery_issue"
	driverLocationRepo "dispatch/internal/repository/driver_location"
	driverStatsRepo "dispatch/internal/repository/driver_stats"
	earningConfigRepo "dispatch/internal/repository/earning_config"
	pushTokenRepo "dispatch/internal/repository/push_token"
	deliveryService "dispatch/internal/service/delivery"
	dispatchService "dispatch/internal/service/dispatch"
	earningService "dispatch/internal/service/earning"
	eventsService "dispatch/internal/service/events"
	geoService "dispatch/internal/service/geo"
	issueService "dispatch/internal/service/issue"
	lifecycleService "dispatch/internal/service/lifecycle"
	pushTokenService "dispatch/internal/service/pushtoken"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
	"firebase.google.com/go/v4/messaging"
	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideEarningConfigRepository(querier *querier.Querier) *earningConfigRepo.Repository {
	return earningConfigRepo.New(querier)
}

func providePushTokenRepository(querier *querier.Querier) *pushTokenRepo.Repository {
	return pushTokenRepo.New(querier)
}

func provideDriverStatsRepository(querier *querier.Querier) *driverStatsRepo.Repository {
	return driverStatsRepo.New(querier)
}

func provideDeliveryIssueRepository(querier *querier.Querier) *deliveryIssueRepo.Repository {
	return deliveryIssueRepo.New(querier)
}

func provideDriverLocationRepository(client *goredis.Client, cfg *config.Config) *driverLocationRepo.Repository {
	return driverLocationRepo.New(client, cfg.Dispatch.LocationTTL)
}

func provideHTTPClient(cfg *config.Config) *httpclient.Client {
	return httpclient.New(cfg.Dispatch.HTTPTimeout)
}

// provideGeoResolver google подключается только при наличии ключа API.
func provideGeoResolver(cfg *config.Config, client *httpclient.Client) (*geoService.Resolver, error) {
	providers := map[entities.GeoProvider]geoService.Provider{}

	if cfg.Maps.NominatimURL != "" {
		providers[entities.GeoProviderOSM] = osm.New(client, osm.Config{
			NominatimURL: cfg.Maps.NominatimURL,
			OSRMURL:      cfg.Maps.OSRMURL,
		})
	}

	if cfg.Maps.GoogleAPIKey != "" {
		mapsClient, err := google.NewClient(cfg.Maps.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		providers[entities.GeoProviderGoogle] = google.New(mapsClient)
	}

	return geoService.New(cfg.Maps.Timeout, providers), nil
}

func provideEarningPolicy(repository *earningConfigRepo.Repository) *earningService.Policy {
	return earningService.New(repository)
}

func provideNotifier() *lifecycleService.Notifier {
	return lifecycleService.New()
}

func providePushGateway(client *messaging.Client) *push.Gateway {
	return push.New(client)
}

func provideWebhookGateway(client *httpclient.Client, cfg *config.Config) *webhook.Gateway {
	return webhook.New(client, cfg.Notifications.WebhookURL)
}

func provideRewardGateway(client *httpclient.Client, cfg *config.Config) *reward.Gateway {
	return reward.New(client, cfg.Notifications.RewardURL)
}

func provideSMSGateway(client *httpclient.Client, cfg *config.Config) *sms.Gateway {
	return sms.New(client, cfg.Notifications.SMSURL, cfg.Notifications.SMSAPIKey)
}

func provideLifecyclePublisher(producer sarama.SyncProducer, cfg *config.Config) *lifecyclePublisher.Publisher {
	return lifecyclePublisher.New(producer, cfg.Kafka.Topics.StatusChanged)
}

func provideEventDispatcher(
	log logger.Logger,
	cfg *config.Config,
	notifier *lifecycleService.Notifier,
	tokens *pushTokenRepo.Repository,
	pushGateway *push.Gateway,
	webhookGateway *webhook.Gateway,
	rewardGateway *reward.Gateway,
	stats *driverStatsRepo.Repository,
	publisher *lifecyclePublisher.Publisher,
) *eventsService.Dispatcher {
	return eventsService.New(log, eventsService.Deps{
		Notifier:  notifier,
		Tokens:    tokens,
		Push:      pushGateway,
		Webhook:   webhookGateway,
		Rewards:   rewardGateway,
		Stats:     stats,
		Publisher: publisher,
	}, cfg.Dispatch.EffectsTimeout)
}

func provideServiceDelivery(
	repository *deliveryRepo.Repository,
	geo *geoService.Resolver,
	earning *earningService.Policy,
	dispatcher *eventsService.Dispatcher,
	txManager *tx.Manager,
	cfg *config.Config,
) *deliveryService.Delivery {
	return deliveryService.New(
		repository,
		geo,
		earning,
		dispatcher,
		txManager,
		deliveryService.Settings{
			MaxDistanceKm: cfg.Dispatch.MaxDistanceKm,
			ExpireAfter:   cfg.Dispatch.ExpireAfter,
		},
	)
}

func provideMatcher(
	repository *deliveryRepo.Repository,
	locations *driverLocationRepo.Repository,
	cfg *config.Config,
) *dispatchService.Matcher {
	return dispatchService.New(repository, locations, dispatchService.Settings{
		WaitingWindow:   cfg.Dispatch.WaitingWindow,
		DefaultRadiusKm: cfg.Dispatch.NearbyRadiusKm,
		MaxRadiusKm:     cfg.Dispatch.MaxRadiusKm,
	})
}

func provideIssueService(
	log logger.Logger,
	repository *deliveryIssueRepo.Repository,
	deliveries *deliveryService.Delivery,
	smsGateway *sms.Gateway,
	cfg *config.Config,
) *issueService.Service {
	return issueService.New(log, repository, deliveries, smsGateway, cfg.Dispatch.OperatorNumbers)
}

func providePushTokenService(repository *pushTokenRepo.Repository) *pushTokenService.Service {
	return pushTokenService.New(repository)
}

func provideAuthenticator(log logger.Logger, cfg *config.Config) *auth.Authenticator {
	return auth.New(log, cfg.Auth.JWTSecret)
}

func provideDeliveryExpiryTask(
	log logger.Logger,
	deliveries *deliveryService.Delivery,
	cfg *config.Config,
) *delivery_expiry.DeliveryExpiry {
	return delivery_expiry.NewDeliveryExpiry(log, deliveries, cfg.Tasks.DeliveryExpiryInterval)
}

func provideTaskList(
	deliveryExpiryTask *delivery_expiry.DeliveryExpiry,
) []background.Task {
	return []background.Task{
		deliveryExpiryTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

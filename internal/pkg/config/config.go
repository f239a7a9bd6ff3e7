package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		DeliveryExpiryInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		MaxConns int32
		MinConns int32
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Maps struct {
		GoogleAPIKey string
		NominatimURL string
		OSRMURL      string
		Timeout      time.Duration
	}

	Dispatch struct {
		MaxDistanceKm   float64
		ExpireAfter     time.Duration
		WaitingWindow   time.Duration
		NearbyRadiusKm  float64
		MaxRadiusKm     float64
		LocationTTL     time.Duration
		EffectsTimeout  time.Duration // побочные эффекты перехода статуса
		HTTPTimeout     time.Duration // исходящие http-шлюзы
		OperatorNumbers []string
	}

	Firebase struct {
		CredentialsFile string
	}

	Notifications struct {
		WebhookURL string
		RewardURL  string
		SMSURL     string
		SMSAPIKey  string
	}

	Auth struct {
		JWTSecret string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		ConsumerGroup   string
		Topics          KafkaTopics
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	KafkaTopics struct {
		DeliveryRequested string
		StatusChanged     string
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DeliveryRequested DeliveryRequested
	}

	DeliveryRequested struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks         Tasks
		Server        HTTPServer
		Database      Database
		Redis         Redis
		Maps          Maps
		Dispatch      Dispatch
		Firebase      Firebase
		Notifications Notifications
		Auth          Auth
		Kafka         Kafka
	}
)

const (
	defaultExpiryInterval = time.Minute
	defaultMapsTimeout    = 10 * time.Second
	defaultMaxDistanceKm  = 15
	defaultExpireAfter    = 30 * time.Minute
	defaultWaitingWindow  = 3 * time.Hour
	defaultNearbyRadiusKm = 3
	defaultMaxRadiusKm    = 50
	defaultLocationTTL    = 10 * time.Minute
	defaultEffectsTimeout = 10 * time.Second
	defaultHTTPTimeout    = 5 * time.Second
	defaultDBMaxConns     = 10
	defaultDBMinConns     = 2
	defaultNominatimURL   = "https://nominatim.openstreetmap.org"
	defaultOSRMURL        = "https://router.project-osrm.org"
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadWorker конфиг kafka-воркера: без http-сервера и фоновых задач.
func LoadWorker() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateCommon(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	if err := validateKafka(cfg, true); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadCLI конфиг админской утилиты: только хранилища и внешние интеграции.
func LoadCLI() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateCommon(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	if err := validateKafka(cfg, false); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	expiryInterval, err := osGetEnvDuration("BACKGROUND_DELIVERY_EXPIRY_INTERVAL", defaultExpiryInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	deliveryRequestedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DELIVERY_REQUESTED_PROCESS_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMaxConns, err := osGetInt("POSTGRES_MAX_CONNS", defaultDBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMinConns, err := osGetInt("POSTGRES_MIN_CONNS", defaultDBMinConns)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	mapsTimeout, err := osGetEnvDuration("MAPS_TIMEOUT", defaultMapsTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatch, err := loadDispatch()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			DeliveryExpiryInterval: expiryInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: int32(dbMaxConns), //nolint:gosec // проверяется в validateCommon
			MinConns: int32(dbMinConns), //nolint:gosec // проверяется в validateCommon
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Maps: Maps{
			GoogleAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
			NominatimURL: osGetString("OSM_NOMINATIM_URL", defaultNominatimURL),
			OSRMURL:      osGetString("OSM_OSRM_URL", defaultOSRMURL),
			Timeout:      mapsTimeout,
		},
		Dispatch: dispatch,
		Firebase: Firebase{
			CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		},
		Notifications: Notifications{
			WebhookURL: os.Getenv("PLATFORM_WEBHOOK_URL"),
			RewardURL:  os.Getenv("REWARD_API_URL"),
			SMSURL:     os.Getenv("SMS_API_URL"),
			SMSAPIKey:  os.Getenv("SMS_API_KEY"),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Topics: KafkaTopics{
				DeliveryRequested: os.Getenv("KAFKA_DELIVERY_REQUESTED_TOPIC"),
				StatusChanged:     os.Getenv("KAFKA_STATUS_CHANGED_TOPIC"),
			},
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DeliveryRequested: DeliveryRequested{
					ProcessTimeout: deliveryRequestedTimeout,
				},
			},
		},
	}, nil
}

func loadDispatch() (Dispatch, error) {
	maxDistance, err := osGetFloat("DISPATCH_MAX_DISTANCE_KM", defaultMaxDistanceKm)
	if err != nil {
		return Dispatch{}, err
	}
	expireAfter, err := osGetEnvDuration("DISPATCH_EXPIRE_AFTER", defaultExpireAfter)
	if err != nil {
		return Dispatch{}, err
	}
	window, err := osGetEnvDuration("DISPATCH_WAITING_WINDOW", defaultWaitingWindow)
	if err != nil {
		return Dispatch{}, err
	}
	radius, err := osGetFloat("DISPATCH_NEARBY_RADIUS_KM", defaultNearbyRadiusKm)
	if err != nil {
		return Dispatch{}, err
	}
	maxRadius, err := osGetFloat("DISPATCH_MAX_RADIUS_KM", defaultMaxRadiusKm)
	if err != nil {
		return Dispatch{}, err
	}
	locationTTL, err := osGetEnvDuration("DISPATCH_DRIVER_LOCATION_TTL", defaultLocationTTL)
	if err != nil {
		return Dispatch{}, err
	}
	effectsTimeout, err := osGetEnvDuration("DISPATCH_EFFECTS_TIMEOUT", defaultEffectsTimeout)
	if err != nil {
		return Dispatch{}, err
	}
	httpTimeout, err := osGetEnvDuration("DISPATCH_HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return Dispatch{}, err
	}

	return Dispatch{
		MaxDistanceKm:   maxDistance,
		ExpireAfter:     expireAfter,
		WaitingWindow:   window,
		NearbyRadiusKm:  radius,
		MaxRadiusKm:     maxRadius,
		LocationTTL:     locationTTL,
		EffectsTimeout:  effectsTimeout,
		HTTPTimeout:     httpTimeout,
		OperatorNumbers: osGetList("DISPATCH_OPERATOR_NUMBERS"),
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	if err := validateCommon(cfg); err != nil {
		return err
	}

	return validateKafka(cfg, false)
}

// validateCommon общее для http-сервиса, воркера и cli.
func validateCommon(cfg *Config) error {
	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.Database.MaxConns <= 0 || cfg.Database.MaxConns > 1000 {
		return errors.New("POSTGRES_MAX_CONNS must be in (0, 1000]")
	}
	if cfg.Database.MinConns < 0 || cfg.Database.MinConns > cfg.Database.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must be in [0, POSTGRES_MAX_CONNS]")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	if cfg.Maps.GoogleAPIKey == "" && cfg.Maps.NominatimURL == "" {
		return errors.New("GOOGLE_MAPS_API_KEY or OSM_NOMINATIM_URL is required")
	}

	if cfg.Tasks.DeliveryExpiryInterval <= 0 {
		return errors.New("BACKGROUND_DELIVERY_EXPIRY_INTERVAL must be positive")
	}
	if cfg.Dispatch.MaxDistanceKm <= 0 {
		return errors.New("DISPATCH_MAX_DISTANCE_KM must be positive")
	}
	if cfg.Dispatch.NearbyRadiusKm <= 0 || cfg.Dispatch.NearbyRadiusKm > cfg.Dispatch.MaxRadiusKm {
		return errors.New("DISPATCH_NEARBY_RADIUS_KM must be positive and not above DISPATCH_MAX_RADIUS_KM")
	}

	return nil
}

func validateKafka(cfg *Config, consumer bool) error {
	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topics.StatusChanged == "" {
		return errors.New("KAFKA_STATUS_CHANGED_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if !consumer {
		return nil
	}

	if cfg.Kafka.Topics.DeliveryRequested == "" {
		return errors.New("KAFKA_DELIVERY_REQUESTED_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Handlers.DeliveryRequested.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_DELIVERY_REQUESTED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetString(s, def string) string {
	val := os.Getenv(s)
	if val == "" {
		return def
	}
	return val
}

func osGetList(s string) []string {
	val := os.Getenv(s)
	if val == "" {
		return nil
	}

	parts := strings.Split(val, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func osGetInt(s string, def int) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string, def float64) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

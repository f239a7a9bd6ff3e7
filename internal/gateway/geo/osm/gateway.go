package osm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/httpclient"
	"dispatch/internal/pkg/metrics"
	"dispatch/internal/service/geo"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "osm"
	userAgent   = "dispatch-service/1.0"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type Config struct {
	NominatimURL string
	OSRMURL      string
}

// Gateway геокодинг через Nominatim и маршрут через OSRM.
type Gateway struct {
	client  client
	retrier retrier
	cfg     Config
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

func New(client client, cfg Config) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     httpclient.IsRetryable,
	}

	cfg.NominatimURL = strings.TrimRight(cfg.NominatimURL, "/")
	cfg.OSRMURL = strings.TrimRight(cfg.OSRMURL, "/")

	return &Gateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		cfg:     cfg,
	}
}

func (g *Gateway) Geocode(ctx context.Context, address string) (*entities.Point, error) {
	query := url.Values{
		"q":      {address},
		"format": {"json"},
		"limit":  {"1"},
	}

	var places []nominatimPlace
	err := g.executeWithMetrics(ctx, "Search", func(ctx context.Context) error {
		places = nil
		return g.client.GetJSON(ctx, g.cfg.NominatimURL+"/search", query, headers(), &places)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway osm, search: %w", err)
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("gateway osm, search %q: %w", address, geo.ErrAddressNotFound)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("gateway osm, search: malformed lat %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("gateway osm, search: malformed lon %q: %w", places[0].Lon, err)
	}

	return &entities.Point{Lat: lat, Lng: lng}, nil
}

func (g *Gateway) RouteDistanceKm(ctx context.Context, from, to entities.Point) (float64, error) {
	// OSRM принимает координаты в порядке lng,lat
	coords := fmt.Sprintf("%f,%f;%f,%f", from.Lng, from.Lat, to.Lng, to.Lat)
	query := url.Values{"overview": {"false"}}

	var resp osrmResponse
	err := g.executeWithMetrics(ctx, "Route", func(ctx context.Context) error {
		resp = osrmResponse{}
		return g.client.GetJSON(ctx, g.cfg.OSRMURL+"/route/v1/driving/"+coords, query, headers(), &resp)
	})
	if err != nil {
		return 0, fmt.Errorf("gateway osm, route: %w", err)
	}

	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return 0, fmt.Errorf("gateway osm, route code %q: %w", resp.Code, geo.ErrAddressNotFound)
	}

	return resp.Routes[0].Distance / 1000, nil
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	metrics.ObserveGateway(serviceName, method, httpclient.Code(err), start, attempt)
	return err
}

func headers() map[string]string {
	// Nominatim требует осмысленный User-Agent
	return map[string]string{"User-Agent": userAgent}
}

package google

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
	"dispatch/internal/service/geo"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"googlemaps.github.io/maps"
)

const (
	serviceName = "google-maps"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// статусы ответа Maps API, которые означают пустой результат
var notFoundStatuses = []string{"ZERO_RESULTS", "NOT_FOUND"}

var retryableStatuses = []string{"OVER_QUERY_LIMIT", "UNKNOWN_ERROR"}

type Gateway struct {
	client  client
	retrier retrier
}

func NewClient(apiKey string) (*maps.Client, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return c, nil
}

func New(client client) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

func (g *Gateway) Geocode(ctx context.Context, address string) (*entities.Point, error) {
	req := &maps.GeocodingRequest{
		Address: address,
	}

	var results []maps.GeocodingResult
	err := g.executeWithMetrics(ctx, "Geocode", func(ctx context.Context) error {
		var err error
		results, err = g.client.Geocode(ctx, req)
		return err
	})
	if err != nil {
		if hasStatus(err, notFoundStatuses) {
			return nil, fmt.Errorf("gateway google, geocode: %w", geo.ErrAddressNotFound)
		}
		return nil, fmt.Errorf("gateway google, geocode: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("gateway google, geocode %q: %w", address, geo.ErrAddressNotFound)
	}

	loc := results[0].Geometry.Location
	return &entities.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func (g *Gateway) RouteDistanceKm(ctx context.Context, from, to entities.Point) (float64, error) {
	req := &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
	}

	var routes []maps.Route
	err := g.executeWithMetrics(ctx, "Directions", func(ctx context.Context) error {
		var err error
		routes, _, err = g.client.Directions(ctx, req)
		return err
	})
	if err != nil {
		if hasStatus(err, notFoundStatuses) {
			return 0, fmt.Errorf("gateway google, directions: %w", geo.ErrAddressNotFound)
		}
		return 0, fmt.Errorf("gateway google, directions: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("gateway google, directions: %w", geo.ErrAddressNotFound)
	}

	var meters int
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return float64(meters) / 1000, nil
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	metrics.ObserveGateway(serviceName, method, statusCode(err), start, attempt)
	return err
}

func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if hasStatus(err, retryableStatuses) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func statusCode(err error) string {
	if err == nil {
		return "OK"
	}
	for _, group := range [][]string{notFoundStatuses, retryableStatuses} {
		for _, s := range group {
			if strings.Contains(err.Error(), s) {
				return s
			}
		}
	}
	return "UNKNOWN"
}

func hasStatus(err error, statuses []string) bool {
	msg := err.Error()
	for _, s := range statuses {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func latLng(p entities.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

// Package maps looks up road distances with the Google Directions API.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	gmaps "googlemaps.github.io/maps"
)

type directionsClient interface {
	Directions(ctx context.Context, r *gmaps.DirectionsRequest) ([]gmaps.Route, []gmaps.GeocodedWaypoint, error)
}

// DirectionsDistanceProvider measures the driving route between two places.
type DirectionsDistanceProvider struct {
	client  directionsClient
	timeout time.Duration
}

// NewDirectionsDistanceProvider builds a provider authenticated with apiKey.
// Every lookup is bounded by timeout.
func NewDirectionsDistanceProvider(apiKey string, timeout time.Duration) (*DirectionsDistanceProvider, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}
	return &DirectionsDistanceProvider{client: client, timeout: timeout}, nil
}

var _ portssvc.DistanceProvider = (*DirectionsDistanceProvider)(nil)

// GetOneWayRoadDistanceKm returns the length of the first driving route, in kilometres.
func (p *DirectionsDistanceProvider) GetOneWayRoadDistanceKm(ctx context.Context, origin, destination string) (decimal.Decimal, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	routes, _, err := p.client.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        gmaps.TravelModeDriving,
		Region:      "br",
		Language:    "pt-BR",
	})
	if err != nil {
		if isNoRoute(err) {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrRouteNotFound, destination)
		}
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrRouteNotFound, destination)
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return decimal.NewFromInt(int64(meters)).Div(decimal.NewFromInt(1000)), nil
}

// isNoRoute recognises the API statuses meaning the places exist but no route joins them,
// or a place could not be geocoded.
func isNoRoute(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "ZERO_RESULTS") || strings.Contains(msg, "NOT_FOUND")
}

// UnavailableDistanceProvider is used when no API key is configured.
type UnavailableDistanceProvider struct{}

var _ portssvc.DistanceProvider = UnavailableDistanceProvider{}

func (UnavailableDistanceProvider) GetOneWayRoadDistanceKm(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return decimal.Zero, fmt.Errorf("%w: no google maps api key configured", apperrors.ErrProviderUnavailable)
}

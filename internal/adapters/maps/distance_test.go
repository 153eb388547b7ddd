package maps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmaps "googlemaps.github.io/maps"
)

type fakeDirections struct {
	routes []gmaps.Route
	err    error
	got    *gmaps.DirectionsRequest
	block  bool
}

func (f *fakeDirections) Directions(ctx context.Context, r *gmaps.DirectionsRequest) ([]gmaps.Route, []gmaps.GeocodedWaypoint, error) {
	f.got = r
	if f.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return f.routes, nil, f.err
}

func routeOf(meters ...int) []gmaps.Route {
	legs := make([]*gmaps.Leg, 0, len(meters))
	for _, m := range meters {
		legs = append(legs, &gmaps.Leg{Distance: gmaps.Distance{Meters: m}})
	}
	return []gmaps.Route{{Legs: legs}}
}

func TestDirectionsDistanceProvider(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeDirections
		want    decimal.Decimal
		wantErr error
	}{
		{name: "single leg", fake: &fakeDirections{routes: routeOf(118400)}, want: decimal.RequireFromString("118.4")},
		{name: "legs add up", fake: &fakeDirections{routes: routeOf(1000, 2500)}, want: decimal.RequireFromString("3.5")},
		{name: "no routes", fake: &fakeDirections{}, wantErr: apperrors.ErrRouteNotFound},
		{name: "zero results", fake: &fakeDirections{err: errors.New("maps: ZERO_RESULTS - ")}, wantErr: apperrors.ErrRouteNotFound},
		{name: "place not found", fake: &fakeDirections{err: errors.New("maps: NOT_FOUND - ")}, wantErr: apperrors.ErrRouteNotFound},
		{name: "quota", fake: &fakeDirections{err: errors.New("maps: OVER_QUERY_LIMIT - ")}, wantErr: apperrors.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &DirectionsDistanceProvider{client: tt.fake, timeout: time.Second}
			got, err := p.GetOneWayRoadDistanceKm(context.Background(), "Itapoá, SC", "Curitiba, PR")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, gmaps.TravelModeDriving, tt.fake.got.Mode)
			assert.Equal(t, "Curitiba, PR", tt.fake.got.Destination)
		})
	}
}

func TestDirectionsDistanceProvider_Timeout(t *testing.T) {
	p := &DirectionsDistanceProvider{client: &fakeDirections{block: true}, timeout: 10 * time.Millisecond}
	_, err := p.GetOneWayRoadDistanceKm(context.Background(), "a", "b")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestUnavailableDistanceProvider(t *testing.T) {
	_, err := UnavailableDistanceProvider{}.GetOneWayRoadDistanceKm(context.Background(), "a", "b")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

package geocode

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
)

// Resolver maps free text to a canonical location key.
type Resolver interface {
	Resolve(text string) (string, bool)
}

// ReverseGeocoder returns address candidates for a coordinate pair.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) ([]Result, error)
}

// Locator turns coordinates into a known location key by scanning the
// geocoded address components for aliases.
type Locator struct {
	geocoder ReverseGeocoder
	resolver Resolver
	logger   *slog.Logger
}

// NewLocator creates a Locator. A nil logger discards output.
func NewLocator(geocoder ReverseGeocoder, resolver Resolver, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Locator{geocoder: geocoder, resolver: resolver, logger: logger}
}

// Locate returns the first location whose alias appears in a result's
// address components, checking results in order. Lookup failures are logged
// and reported as no match.
func (l *Locator) Locate(ctx context.Context, lat, lng float64) (string, bool) {
	if l == nil || l.geocoder == nil || l.resolver == nil {
		return "", false
	}

	results, err := l.geocoder.ReverseGeocode(ctx, lat, lng)
	if errors.Is(err, domerrors.ErrNotConfigured) {
		l.logger.DebugContext(ctx, "Reverse geocoding skipped: no API key")
		return "", false
	}
	if err != nil {
		l.logger.WarnContext(ctx, "Reverse geocoding failed",
			"latitude", lat,
			"longitude", lng,
			"error", err,
		)
		return "", false
	}

	for _, r := range results {
		if loc, ok := l.resolver.Resolve(componentText(r.AddressComponents)); ok {
			return loc, true
		}
	}
	return "", false
}

// componentText flattens address components into one lowercase string.
func componentText(components []AddressComponent) string {
	var b strings.Builder
	for _, c := range components {
		b.WriteString(c.LongName)
		b.WriteByte(' ')
		b.WriteString(c.ShortName)
		for _, t := range c.Types {
			b.WriteByte(' ')
			b.WriteString(t)
		}
		b.WriteByte('\n')
	}
	return strings.ToLower(b.String())
}
